package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

func seedEntries(t *testing.T, repo *mocks.MockEntryRepository, accountID string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), nil, &domain.Entry{
			ID:        fmt.Sprintf("e-%d", i),
			AccountID: accountID,
			Amount:    decimal.RequireFromString("10.00"),
		})
		if err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
}

func TestEntryUseCase_ListEntriesByAccount(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(repo)

	seedEntries(t, repo, "acc-1", 3)
	seedEntries(t, repo, "acc-2", 1)

	entries, err := uc.ListEntriesByAccount(context.Background(), usecase.ListEntriesByAccountInput{
		AccountID: "acc-1",
	})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for _, e := range entries {
		if e.AccountID != "acc-1" {
			t.Fatalf("entry for wrong account: %s", e.AccountID)
		}
	}
}

func TestEntryUseCase_ListEntriesByAccount_Pagination(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(repo)

	seedEntries(t, repo, "acc-1", 5)

	entries, err := uc.ListEntriesByAccount(context.Background(), usecase.ListEntriesByAccountInput{
		AccountID: "acc-1",
		Limit:     2,
		Offset:    4,
	})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry past offset 4, got %d", len(entries))
	}
}

func TestEntryUseCase_ListEntriesByAccount_ClampsLimit(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(repo)

	seedEntries(t, repo, "acc-1", 2)

	// Negative limit falls back to the default page size.
	entries, err := uc.ListEntriesByAccount(context.Background(), usecase.ListEntriesByAccountInput{
		AccountID: "acc-1",
		Limit:     -1,
		Offset:    -5,
	})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}
