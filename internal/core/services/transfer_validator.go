package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// transferValidator implements the TransferValidatorSvc interface. It is a
// pure decision component: it reads the edge set and mutates nothing.
type transferValidator struct {
	BaseService
	connectionRepo portsrepo.ConnectionReader
}

// NewTransferValidator creates a new transfer validator over the given edge reader
func NewTransferValidator(connectionRepo portsrepo.ConnectionReader) portssvc.TransferValidatorSvc {
	return &transferValidator{connectionRepo: connectionRepo}
}

// Ensure transferValidator implements the TransferValidatorSvc interface
var _ portssvc.TransferValidatorSvc = (*transferValidator)(nil)

// ValidateTransfer runs the transfer checks in a fixed order; the first
// failure wins so the caller can render a specific message. The self-transfer
// check does not lean on graph structure even though a self edge can never
// exist. The error return is reserved for edge-store failure.
func (s *transferValidator) ValidateTransfer(ctx context.Context, sender *domain.User, receiver *domain.User, amount decimal.Decimal) (domain.TransferDecision, error) {
	if receiver == nil {
		return domain.Reject(domain.RejectionRecipientNotFound), nil
	}

	if sender.ID == receiver.ID {
		return domain.Reject(domain.RejectionSelfTransfer), nil
	}

	a, b := domain.CanonicalPair(sender.ID, receiver.ID)
	connected, err := s.connectionRepo.EdgeExists(ctx, a, b)
	if err != nil {
		s.LogError(ctx, err, "Failed to query connection edge",
			slog.Int64("sender_id", sender.ID), slog.Int64("receiver_id", receiver.ID))
		return domain.TransferDecision{}, fmt.Errorf("failed to query connection edge: %w", err)
	}
	if !connected {
		return domain.Reject(domain.RejectionNotConnected), nil
	}

	if amount.LessThan(domain.MinTransferAmount) {
		return domain.Reject(domain.RejectionInvalidAmount), nil
	}

	return domain.Accept(), nil
}
