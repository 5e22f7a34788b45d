package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
)

func TestAccountHandler_Open_RecordsMetrics(t *testing.T) {
	env := newTestEnv()

	body, _ := json.Marshal(dto.OpenAccountRequest{
		DisplayName:    "Checking",
		InitialDeposit: decimal.Zero,
	})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	env.accountHandler.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if got := testutil.ToFloat64(env.metrics.AccountsOpened); got != 1 {
		t.Fatalf("expected accounts opened counter to be 1, got %v", got)
	}

	if got := testutil.ToFloat64(env.metrics.AccountOperations.WithLabelValues("open")); got != 1 {
		t.Fatalf("expected open operation counter to be 1, got %v", got)
	}
}

func TestTransferHandler_Transfer_RecordsMetrics(t *testing.T) {
	env := newTestEnv()
	from := env.openAccount(t, "user-1", "100.00")
	to := env.openAccount(t, "user-2", "0.00")

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/accounts/transfer",
		transferBody(t, from.AccountNumber, to.AccountNumber, "25.00")), "user-1")
	rec := httptest.NewRecorder()

	env.transferHandler.Transfer(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if got := testutil.ToFloat64(env.metrics.TransfersCompleted); got != 1 {
		t.Fatalf("expected completed counter to be 1, got %v", got)
	}
}

func TestTransferHandler_Transfer_RecordsErrorMetric(t *testing.T) {
	env := newTestEnv()
	from := env.openAccount(t, "user-1", "10.00")
	to := env.openAccount(t, "user-2", "0.00")

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/accounts/transfer",
		transferBody(t, from.AccountNumber, to.AccountNumber, "500.00")), "user-1")
	rec := httptest.NewRecorder()

	env.transferHandler.Transfer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	if got := testutil.ToFloat64(env.metrics.TransferErrors.WithLabelValues("insufficient_funds")); got != 1 {
		t.Fatalf("expected insufficient funds error counter to be 1, got %v", got)
	}

	if got := testutil.ToFloat64(env.metrics.TransfersCompleted); got != 0 {
		t.Fatalf("failed transfer must not count as completed, got %v", got)
	}
}
