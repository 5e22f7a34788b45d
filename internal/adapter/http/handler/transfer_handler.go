package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests. Requests address
// accounts by number; the handler resolves them and enforces that the caller
// owns the source account before touching the ledger.
type TransferHandler struct {
	accountUC  *usecase.AccountUseCase
	transferUC *usecase.TransferUseCase
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler. Metrics may be nil.
func NewTransferHandler(accountUC *usecase.AccountUseCase, transferUC *usecase.TransferUseCase, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{
		accountUC:  accountUC,
		transferUC: transferUC,
		metrics:    m,
	}
}

// Transfer moves money between two accounts.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	from, err := h.accountUC.GetAccountByNumber(r.Context(), req.FromAccountNumber)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "source account not found", err.Error())

		return
	}

	if from.OwnerID != userID {
		writeError(w, http.StatusForbidden, "account does not belong to the caller", "")
		return
	}

	to, err := h.accountUC.GetAccountByNumber(r.Context(), req.ToAccountNumber)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "destination account not found", err.Error())

		return
	}

	start := time.Now()

	transfer, err := h.transferUC.ExecuteTransfer(r.Context(), usecase.ExecuteTransferInput{
		FromAccountID:  from.ID,
		ToAccountID:    to.ID,
		Amount:         req.Amount,
		Description:    req.Description,
		IdempotencyKey: r.Header.Get(middleware.IdempotencyKeyHeader),
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransferErrors.WithLabelValues(transferErrorLabel(err)).Inc()
		}

		status := mapDomainError(err)
		writeError(w, status, "failed to execute transfer", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCompleted.Inc()
		h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		h.metrics.TransferAmount.Observe(transfer.Amount.InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer, from.AccountNumber, to.AccountNumber))
}

// transferErrorLabel keeps the error_type label cardinality fixed.
func transferErrorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrDuplicateTransfer):
		return "duplicate"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrEmptyDescription):
		return "validation"
	default:
		return "internal"
	}
}
