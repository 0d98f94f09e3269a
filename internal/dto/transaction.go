package dto

import (
	"time"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest is the business transfer payload: the recipient is addressed
// by email, the way the sender knows them.
type TransferRequest struct {
	ConnectionEmail string          `json:"connectionEmail" binding:"required,email"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
}

// ReplaceTransactionRequest is the administrative full-record update. It
// bypasses transfer validation.
type ReplaceTransactionRequest struct {
	SenderID    int64           `json:"senderID" binding:"required"`
	ReceiverID  int64           `json:"receiverID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// TransactionResponse is the outward representation of a ledger entry.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	SenderID    int64           `json:"senderID"`
	ReceiverID  int64           `json:"receiverID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its outward form.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		SenderID:    txn.SenderID,
		ReceiverID:  txn.ReceiverID,
		Amount:      txn.Amount,
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
	}
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of transactions.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	resp := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(txns))}
	for i := range txns {
		resp.Transactions[i] = ToTransactionResponse(&txns[i])
	}
	return resp
}
