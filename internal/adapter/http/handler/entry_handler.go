package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// EntryHandler exposes the raw ledger rows of an account.
type EntryHandler struct {
	accountUC *usecase.AccountUseCase
	entryUC   *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(accountUC *usecase.AccountUseCase, entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{
		accountUC: accountUC,
		entryUC:   entryUC,
	}
}

// entryResponse represents a ledger entry in API responses.
type entryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	TransferID  *string         `json:"transfer_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func entriesFromDomain(entries []*domain.Entry) []*entryResponse {
	result := make([]*entryResponse, len(entries))
	for i, e := range entries {
		result[i] = &entryResponse{
			ID:          e.ID,
			AccountID:   e.AccountID,
			TransferID:  e.TransferID,
			Amount:      e.Amount,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		}
	}
	return result
}

// ListByAccount lists ledger entries for one of the caller's accounts.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), accountID)
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

	entries, err := h.entryUC.ListEntriesByAccount(r.Context(), usecase.ListEntriesByAccountInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entriesFromDomain(entries))
}
