package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
	metrics   *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler. Metrics may be nil.
func NewAccountHandler(accountUC *usecase.AccountUseCase, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, metrics: m}
}

// Open opens a new account for the authenticated user.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to open account", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.AccountsOpened.Inc()
		h.metrics.AccountOperations.WithLabelValues("open").Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// List lists the authenticated user's accounts with fresh balances.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accounts, err := h.accountUC.ListAccountsByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountOperations.WithLabelValues("list").Inc()
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
