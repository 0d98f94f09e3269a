package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for ledger entries.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (sender_id, receiver_id, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		txn.SenderID,
		txn.ReceiverID,
		txn.Amount,
		txn.Description,
		txn.CreatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, txnID int64) (*domain.Transaction, error) {
	query := `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transactions
		WHERE id = $1;
	`
	var txn domain.Transaction
	err := r.pool.QueryRow(ctx, query, txnID).Scan(
		&txn.ID,
		&txn.SenderID,
		&txn.ReceiverID,
		&txn.Amount,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", txnID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionsBySender(ctx context.Context, senderID int64) ([]domain.Transaction, error) {
	query := `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transactions
		WHERE sender_id = $1
		ORDER BY id;
	`
	return r.queryTransactions(ctx, query, senderID)
}

func (r *PgxTransactionRepository) FindTransactionsByReceiver(ctx context.Context, receiverID int64) ([]domain.Transaction, error) {
	query := `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transactions
		WHERE receiver_id = $1
		ORDER BY id;
	`
	return r.queryTransactions(ctx, query, receiverID)
}

func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transactions
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`
	return r.queryTransactions(ctx, query, limit, offset)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.SenderID,
			&txn.ReceiverID,
			&txn.Amount,
			&txn.Description,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, nil
}

func (r *PgxTransactionRepository) ReplaceTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET sender_id = $2, receiver_id = $3, amount = $4, description = $5
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.ID,
		txn.SenderID,
		txn.ReceiverID,
		txn.Amount,
		txn.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to replace transaction %d: %w", txn.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txnID int64) error {
	query := `DELETE FROM transactions WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, query, txnID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
