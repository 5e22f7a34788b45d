package usecase

import (
	"context"

	"github.com/iho/gobank/internal/domain"
)

// HistoryUseCase projects the per-account activity feed from the ledger and
// transfer records. Entries with no transfer attached (initial deposits) are
// excluded by the join itself.
type HistoryUseCase struct {
	historyRepo HistoryRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(historyRepo HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{
		historyRepo: historyRepo,
	}
}

// ProjectHistory returns the account's activity feed, newest first. Each item
// carries a direction, the counterparty's account number, and the entry
// amount as an absolute value.
func (uc *HistoryUseCase) ProjectHistory(ctx context.Context, account *domain.Account, limit, offset int) ([]*domain.TransactionEntry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := uc.historyRepo.ListByAccount(ctx, account.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.TransactionEntry, 0, len(rows))
	for _, row := range rows {
		direction := domain.DirectionIncoming
		counterparty := row.FromAccountNumber

		if row.FromAccountID == account.ID {
			direction = domain.DirectionOutgoing
			counterparty = row.ToAccountNumber
		}

		entries = append(entries, &domain.TransactionEntry{
			TransferID:                row.TransferID,
			Direction:                 direction,
			CounterpartyAccountNumber: counterparty,
			Amount:                    row.Amount.Abs(),
			Description:               row.Description,
			Status:                    row.Status,
			OccurredAt:                row.OccurredAt,
		})
	}

	return entries, nil
}
