package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
)

func TestAccountHandler_Open(t *testing.T) {
	env := newTestEnv()

	body, _ := json.Marshal(dto.OpenAccountRequest{
		DisplayName:    "Savings",
		InitialDeposit: decimal.RequireFromString("250.00"),
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	env.accountHandler.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.AccountNumber) != 12 {
		t.Errorf("expected 12-digit account number, got %q", resp.AccountNumber)
	}

	if !resp.Balance.Equal(decimal.RequireFromString("250")) {
		t.Errorf("expected balance 250, got %s", resp.Balance)
	}
}

func TestAccountHandler_Open_NegativeDeposit(t *testing.T) {
	env := newTestEnv()

	body, _ := json.Marshal(dto.OpenAccountRequest{
		DisplayName:    "Bad",
		InitialDeposit: decimal.RequireFromString("-5.00"),
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	env.accountHandler.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_Unauthenticated(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	env.accountHandler.Open(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	env := newTestEnv()
	env.openAccount(t, "user-1", "100.00")
	env.openAccount(t, "user-1", "50.00")
	env.openAccount(t, "user-2", "75.00")

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil), "user-1")
	rec := httptest.NewRecorder()

	env.accountHandler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total != 2 || len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts for user-1, got %d", len(resp.Accounts))
	}
}
