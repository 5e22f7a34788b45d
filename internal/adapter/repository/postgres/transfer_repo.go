package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferColumns = `id, idempotency_key, from_account_id, to_account_id, amount, description, status, created_at, completed_at`

// Create inserts a transfer inside the given transaction. The unique index
// on idempotency_key is the real duplicate enforcement; a violation there
// surfaces as ErrDuplicateTransfer.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, idempotency_key, from_account_id, to_account_id, amount, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		transfer.ID,
		transfer.IdempotencyKey,
		transfer.FromAccountID,
		transfer.ToAccountID,
		decimalToNumeric(transfer.Amount),
		transfer.Description,
		string(transfer.Status),
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicateTransfer
	}

	return err
}

// MarkCompleted flips the transfer to completed inside the given transaction.
func (r *TransferRepository) MarkCompleted(ctx context.Context, tx usecase.Transaction, id string, completedAt time.Time) error {
	query := `UPDATE transfers SET status = $2, completed_at = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		id,
		string(domain.TransferStatusCompleted),
		timeToPgTimestamptz(completedAt),
	)

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`

	return r.scanTransfer(r.pool.QueryRow(ctx, query, id))
}

// GetByIdempotencyKey retrieves a transfer by its idempotency key.
func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE idempotency_key = $1`

	return r.scanTransfer(r.pool.QueryRow(ctx, query, key))
}

// ListByAccount retrieves transfers where the account is either side, newest
// first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransferRow(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func (r *TransferRepository) scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	transfer, err := scanTransferRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransferNotFound
	}
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

func scanTransferRow(row pgx.Row) (*domain.Transfer, error) {
	var (
		transfer    domain.Transfer
		status      string
		amount      pgtype.Numeric
		createdAt   pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&transfer.ID,
		&transfer.IdempotencyKey,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&amount,
		&transfer.Description,
		&status,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.Status = domain.TransferStatus(status)
	transfer.CreatedAt = createdAt.Time
	if completedAt.Valid {
		t := completedAt.Time
		transfer.CompletedAt = &t
	}

	return &transfer, nil
}
