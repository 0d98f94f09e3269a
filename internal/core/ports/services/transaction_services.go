package services

import (
	"context"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
	"github.com/friendpay/friendpay_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for ledger entries
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction by ID.
	GetTransactionByID(ctx context.Context, txnID int64) (*domain.Transaction, error)

	// ListTransactionsBySender retrieves transactions sent by a user. An
	// unmatched query yields an empty slice, not an error.
	ListTransactionsBySender(ctx context.Context, senderID int64) ([]domain.Transaction, error)

	// ListTransactionsByReceiver retrieves transactions received by a user.
	ListTransactionsByReceiver(ctx context.Context, receiverID int64) ([]domain.Transaction, error)

	// ListTransactions retrieves a paginated list of all transactions.
	ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for ledger entries
type TransactionWriterSvc interface {
	// RecordTransaction commits an accepted transfer as an immutable record.
	// It must only be called after the validator accepted the transfer; the
	// connection check is not re-run here.
	RecordTransaction(ctx context.Context, sender, receiver domain.User, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// ReplaceTransaction is an administrative full-record update. It bypasses
	// the connection check; callers wanting invariant protection must
	// re-validate themselves.
	ReplaceTransaction(ctx context.Context, txnID int64, req dto.ReplaceTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction by id, signalling ErrNotFound
	// for an absent id so the caller can choose to treat that as success.
	DeleteTransaction(ctx context.Context, txnID int64) error
}

// TransferSvc is the business transfer operation: resolve the recipient,
// validate, and record in that order.
type TransferSvc interface {
	// Transfer validates a transfer from the sender to the account holding
	// receiverEmail and records it when accepted. The decision reports the
	// outcome; the transaction is non-nil only when the decision accepted.
	Transfer(ctx context.Context, senderID int64, receiverEmail string, amount decimal.Decimal, description string) (*domain.Transaction, domain.TransferDecision, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransferSvc
}
