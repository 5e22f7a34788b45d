package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Ledger entries are
// insert-only; there is no update or delete path.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends a ledger entry inside the given transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	query := `
		INSERT INTO ledger_entries (id, account_id, transfer_id, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.TransferID,
		decimalToNumeric(entry.Amount),
		entry.Description,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

const sumByAccountQuery = `
	SELECT COALESCE(SUM(amount), 0)
	FROM ledger_entries
	WHERE account_id = $1
`

// SumByAccount computes the authoritative balance from the ledger.
func (r *EntryRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, sumByAccountQuery, accountID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// SumByAccountTx computes the balance inside the given transaction, seeing
// rows locked by it.
func (r *EntryRepository) SumByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	if err := tx.(*Tx).PgxTx().QueryRow(ctx, sumByAccountQuery, accountID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// ListByAccount retrieves ledger entries for an account, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT id, account_id, transfer_id, amount, description, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var (
			entry     domain.Entry
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.TransferID,
			&amount,
			&entry.Description,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
