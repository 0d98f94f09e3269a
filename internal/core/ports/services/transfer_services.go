package services

import (
	"context"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferValidatorSvc decides whether a proposed transfer may happen. It never
// mutates state and never surfaces a business rejection through the error
// return: the decision value carries it. A non-nil error means the edge store
// itself failed.
type TransferValidatorSvc interface {
	// ValidateTransfer runs the ordered transfer checks. The receiver may be
	// nil when recipient resolution failed upstream.
	ValidateTransfer(ctx context.Context, sender *domain.User, receiver *domain.User, amount decimal.Decimal) (domain.TransferDecision, error)
}
