package repositories

import (
	"context"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, txnID int64) (*domain.Transaction, error)

	// FindTransactionsBySender retrieves all transactions sent by a user, in id order.
	FindTransactionsBySender(ctx context.Context, senderID int64) ([]domain.Transaction, error)

	// FindTransactionsByReceiver retrieves all transactions received by a user, in id order.
	FindTransactionsByReceiver(ctx context.Context, receiverID int64) ([]domain.Transaction, error)

	// FindTransactions retrieves a paginated list of transactions.
	FindTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and returns it with the assigned id.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// ReplaceTransaction overwrites the full record for an existing id.
	ReplaceTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction by id.
	DeleteTransaction(ctx context.Context, txnID int64) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
