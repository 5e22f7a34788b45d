package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
)

// HistoryRepository reads the joined ledger and transfer view that backs the
// per-account activity feed. Entries without a transfer (initial deposits)
// fall out of the inner join.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// ListByAccount retrieves the account's transfer-backed ledger rows, newest
// first, with both sides' account numbers resolved.
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerTransferRow, error) {
	query := `
		SELECT
			e.id, e.account_id, e.amount, e.description, e.created_at,
			t.id, t.from_account_id, t.to_account_id, t.status,
			src.account_number, dst.account_number
		FROM ledger_entries e
		JOIN transfers t ON t.id = e.transfer_id
		JOIN accounts src ON src.id = t.from_account_id
		JOIN accounts dst ON dst.id = t.to_account_id
		WHERE e.account_id = $1
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LedgerTransferRow
	for rows.Next() {
		var (
			row        domain.LedgerTransferRow
			amount     pgtype.Numeric
			occurredAt pgtype.Timestamptz
			status     string
		)

		err := rows.Scan(
			&row.EntryID,
			&row.EntryAccountID,
			&amount,
			&row.Description,
			&occurredAt,
			&row.TransferID,
			&row.FromAccountID,
			&row.ToAccountID,
			&status,
			&row.FromAccountNumber,
			&row.ToAccountNumber,
		)
		if err != nil {
			return nil, err
		}

		row.Amount = numericToDecimal(amount)
		row.OccurredAt = occurredAt.Time
		row.Status = domain.TransferStatus(status)
		out = append(out, &row)
	}

	return out, rows.Err()
}
