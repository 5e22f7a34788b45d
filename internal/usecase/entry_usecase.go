package usecase

import (
	"context"

	"github.com/iho/gobank/internal/domain"
)

// EntryUseCase handles ledger read operations.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// ListEntriesByAccountInput represents input for listing entries.
type ListEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntriesByAccount lists ledger entries for an account, newest first.
func (uc *EntryUseCase) ListEntriesByAccount(ctx context.Context, input ListEntriesByAccountInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
