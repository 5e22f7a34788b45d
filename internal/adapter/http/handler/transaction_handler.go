package handler

import (
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/usecase"
)

// TransactionHandler serves the per-account activity feed.
type TransactionHandler struct {
	accountUC *usecase.AccountUseCase
	historyUC *usecase.HistoryUseCase
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(accountUC *usecase.AccountUseCase, historyUC *usecase.HistoryUseCase) *TransactionHandler {
	return &TransactionHandler{
		accountUC: accountUC,
		historyUC: historyUC,
	}
}

// List returns the activity feed for one of the caller's accounts.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	number := r.URL.Query().Get("account_number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account_number", "")
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), number)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "account not found", err.Error())

		return
	}

	if account.OwnerID != userID {
		writeError(w, http.StatusForbidden, "account does not belong to the caller", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.historyUC.ProjectHistory(r.Context(), account, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(entries))
}
