package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry recording a validated transfer.
// Creation order is implied by the id. There is no pending/settled lifecycle;
// a transaction exists exactly as recorded until an administrative replace or
// delete removes it.
type Transaction struct {
	ID          int64           `json:"id"` // Primary key, assigned by the database
	SenderID    int64           `json:"senderID"`
	ReceiverID  int64           `json:"receiverID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
