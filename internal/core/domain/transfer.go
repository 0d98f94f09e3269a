package domain

import "github.com/shopspring/decimal"

// MinTransferAmount is the smallest amount a transfer may carry.
var MinTransferAmount = decimal.NewFromFloat(0.01)

// RejectionReason identifies why a transfer was refused. Rejection is an
// expected business outcome surfaced to the end user, not a programming error.
type RejectionReason string

const (
	RejectionNone              RejectionReason = ""
	RejectionRecipientNotFound RejectionReason = "RECIPIENT_NOT_FOUND"
	RejectionSelfTransfer      RejectionReason = "SELF_TRANSFER"
	RejectionNotConnected      RejectionReason = "NOT_CONNECTED"
	RejectionInvalidAmount     RejectionReason = "INVALID_AMOUNT"
)

// TransferDecision is the outcome of validating a proposed transfer.
type TransferDecision struct {
	Accepted bool            `json:"accepted"`
	Reason   RejectionReason `json:"reason,omitempty"`
}

// Accept returns an accepting decision.
func Accept() TransferDecision {
	return TransferDecision{Accepted: true}
}

// Reject returns a rejecting decision carrying the given reason.
func Reject(reason RejectionReason) TransferDecision {
	return TransferDecision{Accepted: false, Reason: reason}
}

// Message renders the user-facing message for a rejection.
func (d TransferDecision) Message() string {
	switch d.Reason {
	case RejectionRecipientNotFound:
		return "Recipient not found"
	case RejectionSelfTransfer:
		return "You cannot send money to yourself"
	case RejectionNotConnected:
		return "You can only send money to your connections."
	case RejectionInvalidAmount:
		return "Amount must be at least 0.01"
	}
	return ""
}
