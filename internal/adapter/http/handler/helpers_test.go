package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

// testEnv wires the handlers to in-memory state for httptest-driven tests.
type testEnv struct {
	authHandler        *AuthHandler
	accountHandler     *AccountHandler
	transferHandler    *TransferHandler
	transactionHandler *TransactionHandler

	userUC      *usecase.UserUseCase
	accountUC   *usecase.AccountUseCase
	transferUC  *usecase.TransferUseCase
	historyRepo *mocks.MockHistoryRepository
	entryRepo   *mocks.MockEntryRepository
	metrics     *metrics.Metrics
}

func newTestEnv() *testEnv {
	txManager := mocks.NewMockTransactionManager()
	accountRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	transferRepo := mocks.NewMockTransferRepository()
	historyRepo := mocks.NewMockHistoryRepository()
	userRepo := mocks.NewMockUserRepository()
	idGen := mocks.NewMockIDGenerator()

	userUC := usecase.NewUserUseCase(userRepo, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, idGen, mocks.NewMockNumberGenerator())
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, entryRepo, idGen, mocks.NewMockRetrier())
	historyUC := usecase.NewHistoryUseCase(historyRepo)

	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	m := metrics.NewWith(prometheus.NewRegistry())

	return &testEnv{
		authHandler:        NewAuthHandler(userUC, jwtManager, m),
		accountHandler:     NewAccountHandler(accountUC, m),
		transferHandler:    NewTransferHandler(accountUC, transferUC, m),
		transactionHandler: NewTransactionHandler(accountUC, historyUC),
		userUC:             userUC,
		accountUC:          accountUC,
		transferUC:         transferUC,
		historyRepo:        historyRepo,
		entryRepo:          entryRepo,
		metrics:            m,
	}
}

// openAccount opens a funded account for the user and returns it.
func (e *testEnv) openAccount(t *testing.T, ownerID, balance string) *domain.Account {
	t.Helper()

	account, err := e.accountUC.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID:        ownerID,
		DisplayName:    "Checking",
		InitialDeposit: decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}

	return account
}

// asUser attaches an authenticated user ID to the request context.
func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDContextKey, userID)
	return r.WithContext(ctx)
}
