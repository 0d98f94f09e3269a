package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade interface. Recording
// is kept separate from deciding: RecordTransaction persists without
// re-running the connection check, and Transfer is the only path that runs
// the validator before recording.
type transactionService struct {
	BaseService
	txnRepo   portsrepo.TransactionRepositoryFacade
	userRepo  portsrepo.UserReader
	validator portssvc.TransferValidatorSvc
}

// NewTransactionService creates a new transaction service with the provided dependencies
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	userRepo portsrepo.UserReader,
	validator portssvc.TransferValidatorSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:   txnRepo,
		userRepo:  userRepo,
		validator: validator,
	}
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// RecordTransaction commits an accepted transfer as an immutable record.
func (s *transactionService) RecordTransaction(ctx context.Context, sender, receiver domain.User, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	txn := domain.Transaction{
		SenderID:    sender.ID,
		ReceiverID:  receiver.ID,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.Int64("sender_id", sender.ID), slog.Int64("receiver_id", receiver.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.Int64("transaction_id", saved.ID),
		slog.Int64("sender_id", saved.SenderID),
		slog.Int64("receiver_id", saved.ReceiverID),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// Transfer resolves the recipient, validates, and records in that order. The
// returned decision carries the business outcome; the transaction is non-nil
// only when the decision accepted.
func (s *transactionService) Transfer(ctx context.Context, senderID int64, receiverEmail string, amount decimal.Decimal, description string) (*domain.Transaction, domain.TransferDecision, error) {
	sender, err := s.userRepo.FindUserByID(ctx, senderID)
	if err != nil {
		return nil, domain.TransferDecision{}, fmt.Errorf("failed to resolve sender %d: %w", senderID, err)
	}

	receiver, err := s.userRepo.FindUserByEmail(ctx, receiverEmail)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, domain.TransferDecision{}, fmt.Errorf("failed to resolve receiver: %w", err)
	}

	decision, err := s.validator.ValidateTransfer(ctx, sender, receiver, amount)
	if err != nil {
		return nil, domain.TransferDecision{}, err
	}
	if !decision.Accepted {
		s.LogInfo(ctx, "Transfer rejected",
			slog.Int64("sender_id", senderID),
			slog.String("reason", string(decision.Reason)))
		return nil, decision, nil
	}

	txn, err := s.RecordTransaction(ctx, *sender, *receiver, amount, description)
	if err != nil {
		return nil, domain.TransferDecision{}, err
	}
	return txn, decision, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, txnID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.Int64("transaction_id", txnID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactionsBySender retrieves transactions sent by a user.
func (s *transactionService) ListTransactionsBySender(ctx context.Context, senderID int64) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsBySender(ctx, senderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by sender", slog.Int64("sender_id", senderID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// ListTransactionsByReceiver retrieves transactions received by a user.
func (s *transactionService) ListTransactionsByReceiver(ctx context.Context, receiverID int64) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsByReceiver(ctx, receiverID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by receiver", slog.Int64("receiver_id", receiverID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// ListTransactions retrieves a paginated list of all transactions.
func (s *transactionService) ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactions(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// ReplaceTransaction is the administrative full-record update. It bypasses
// the connection check by design; only basic referential sanity is enforced.
func (s *transactionService) ReplaceTransaction(ctx context.Context, txnID int64, req dto.ReplaceTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return nil, err
	}

	if req.SenderID == req.ReceiverID {
		return nil, fmt.Errorf("%w: sender and receiver must differ", apperrors.ErrSelfReference)
	}

	txn := domain.Transaction{
		ID:          txnID,
		SenderID:    req.SenderID,
		ReceiverID:  req.ReceiverID,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.txnRepo.ReplaceTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to replace transaction", slog.Int64("transaction_id", txnID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction replaced", slog.Int64("transaction_id", txnID))
	return &txn, nil
}

// DeleteTransaction removes a transaction by id. An absent id surfaces as
// ErrNotFound so the caller can decide whether that counts as success.
func (s *transactionService) DeleteTransaction(ctx context.Context, txnID int64) error {
	if err := s.txnRepo.DeleteTransaction(ctx, txnID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", txnID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", txnID))
	return nil
}
