package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/internal/core/services"
	"github.com/friendpay/friendpay_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- In-memory ledger backed by a map, ids assigned in insert order ---
type fakeTransactionRepo struct {
	txns   map[int64]domain.Transaction
	nextID int64
}

var _ portsrepo.TransactionRepositoryFacade = (*fakeTransactionRepo)(nil)

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txns: map[int64]domain.Transaction{}, nextID: 1}
}

func (f *fakeTransactionRepo) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	txn.ID = f.nextID
	f.nextID++
	f.txns[txn.ID] = txn
	return &txn, nil
}

func (f *fakeTransactionRepo) FindTransactionByID(ctx context.Context, txnID int64) (*domain.Transaction, error) {
	if txn, ok := f.txns[txnID]; ok {
		return &txn, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTransactionRepo) FindTransactionsBySender(ctx context.Context, senderID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for id := int64(1); id < f.nextID; id++ {
		if txn, ok := f.txns[id]; ok && txn.SenderID == senderID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) FindTransactionsByReceiver(ctx context.Context, receiverID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for id := int64(1); id < f.nextID; id++ {
		if txn, ok := f.txns[id]; ok && txn.ReceiverID == receiverID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) FindTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for id := int64(1); id < f.nextID; id++ {
		if txn, ok := f.txns[id]; ok {
			out = append(out, txn)
		}
	}
	if offset >= len(out) {
		return []domain.Transaction{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTransactionRepo) ReplaceTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, ok := f.txns[txn.ID]; !ok {
		return apperrors.ErrNotFound
	}
	f.txns[txn.ID] = txn
	return nil
}

func (f *fakeTransactionRepo) DeleteTransaction(ctx context.Context, txnID int64) error {
	if _, ok := f.txns[txnID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.txns, txnID)
	return nil
}

// --- Test Suite ---
// The suite wires the real validator over the fake edge store, so Transfer
// runs the same decision path the handlers see.
type TransactionServiceTestSuite struct {
	suite.Suite
	userReader *fakeUserReader
	edges      *fakeEdgeRepo
	txnRepo    *fakeTransactionRepo
	service    portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.userReader = &fakeUserReader{users: map[int64]domain.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
		2: {ID: 2, Username: "bob", Email: "bob@example.com"},
	}}
	suite.edges = newFakeEdgeRepo()
	suite.edges.users = suite.userReader.users
	suite.txnRepo = newFakeTransactionRepo()
	validator := services.NewTransferValidator(suite.edges)
	suite.service = services.NewTransactionService(suite.txnRepo, suite.userReader, validator)
}

func (suite *TransactionServiceTestSuite) connect(a, b int64) {
	suite.Require().NoError(suite.edges.SaveEdge(context.Background(), a, b))
}

func (suite *TransactionServiceTestSuite) TestTransfer_NotConnectedRecordsNothing() {
	ctx := context.Background()

	txn, decision, err := suite.service.Transfer(ctx, 1, "bob@example.com", decimal.NewFromFloat(10.00), "lunch")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.False(decision.Accepted)
	suite.Equal(domain.RejectionNotConnected, decision.Reason)
	suite.Empty(suite.txnRepo.txns)
}

func (suite *TransactionServiceTestSuite) TestTransfer_AcceptedAfterConnecting() {
	ctx := context.Background()
	suite.connect(1, 2)

	txn, decision, err := suite.service.Transfer(ctx, 1, "bob@example.com", decimal.NewFromFloat(10.00), "lunch")

	suite.Require().NoError(err)
	suite.True(decision.Accepted)
	suite.Require().NotNil(txn)
	suite.Equal(int64(1), txn.ID)
	suite.Equal(int64(1), txn.SenderID)
	suite.Equal(int64(2), txn.ReceiverID)
	suite.True(txn.Amount.Equal(decimal.NewFromFloat(10.00)))
	suite.Equal("lunch", txn.Description)
	suite.False(txn.CreatedAt.IsZero())
}

func (suite *TransactionServiceTestSuite) TestTransfer_UnknownRecipientEmail() {
	ctx := context.Background()
	suite.connect(1, 2)

	txn, decision, err := suite.service.Transfer(ctx, 1, "ghost@example.com", decimal.NewFromFloat(10.00), "lunch")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.Equal(domain.RejectionRecipientNotFound, decision.Reason)
	suite.Empty(suite.txnRepo.txns)
}

func (suite *TransactionServiceTestSuite) TestTransfer_SelfRejected() {
	ctx := context.Background()
	suite.connect(1, 2)

	txn, decision, err := suite.service.Transfer(ctx, 1, "alice@example.com", decimal.NewFromFloat(10.00), "lunch")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.Equal(domain.RejectionSelfTransfer, decision.Reason)
}

func (suite *TransactionServiceTestSuite) TestTransfer_BelowMinimumRejected() {
	ctx := context.Background()
	suite.connect(1, 2)

	txn, decision, err := suite.service.Transfer(ctx, 1, "bob@example.com", decimal.Zero, "lunch")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.Equal(domain.RejectionInvalidAmount, decision.Reason)
	suite.Empty(suite.txnRepo.txns)
}

func (suite *TransactionServiceTestSuite) TestTransfer_UnknownSenderIsAnError() {
	ctx := context.Background()

	txn, _, err := suite.service.Transfer(ctx, 99, "bob@example.com", decimal.NewFromFloat(10.00), "lunch")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestTransfer_RecordedEntriesVisibleInBothLedgerViews() {
	ctx := context.Background()
	suite.connect(1, 2)

	_, _, err := suite.service.Transfer(ctx, 1, "bob@example.com", decimal.NewFromFloat(10.00), "lunch")
	suite.Require().NoError(err)
	_, _, err = suite.service.Transfer(ctx, 2, "alice@example.com", decimal.NewFromFloat(4.50), "coffee")
	suite.Require().NoError(err)

	sent, err := suite.service.ListTransactionsBySender(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(sent, 1)
	suite.Equal("lunch", sent[0].Description)

	received, err := suite.service.ListTransactionsByReceiver(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(received, 1)
	suite.Equal("coffee", received[0].Description)
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_SkipsConnectionCheck() {
	ctx := context.Background()
	// No edge between the accounts; recording is a trusted write.
	alice := suite.userReader.users[1]
	bob := suite.userReader.users[2]

	txn, err := suite.service.RecordTransaction(ctx, alice, bob, decimal.NewFromFloat(3.00), "refund")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(1), txn.ID)
}

func (suite *TransactionServiceTestSuite) TestReplaceTransaction_KeepsCreatedAt() {
	ctx := context.Background()
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	saved, err := suite.txnRepo.SaveTransaction(ctx, domain.Transaction{
		SenderID: 1, ReceiverID: 2,
		Amount:      decimal.NewFromFloat(10.00),
		Description: "lunch",
		CreatedAt:   created,
	})
	suite.Require().NoError(err)

	replaced, err := suite.service.ReplaceTransaction(ctx, saved.ID, dto.ReplaceTransactionRequest{
		SenderID: 2, ReceiverID: 1,
		Amount:      decimal.NewFromFloat(12.00),
		Description: "lunch (corrected)",
	})

	suite.Require().NoError(err)
	suite.Equal(int64(2), replaced.SenderID)
	suite.Equal(int64(1), replaced.ReceiverID)
	suite.Equal("lunch (corrected)", replaced.Description)
	suite.True(replaced.CreatedAt.Equal(created))
}

func (suite *TransactionServiceTestSuite) TestReplaceTransaction_SelfReferenceFails() {
	ctx := context.Background()
	saved, err := suite.txnRepo.SaveTransaction(ctx, domain.Transaction{
		SenderID: 1, ReceiverID: 2, Amount: decimal.NewFromFloat(10.00),
	})
	suite.Require().NoError(err)

	_, err = suite.service.ReplaceTransaction(ctx, saved.ID, dto.ReplaceTransactionRequest{
		SenderID: 1, ReceiverID: 1, Amount: decimal.NewFromFloat(10.00),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSelfReference)
}

func (suite *TransactionServiceTestSuite) TestReplaceTransaction_NotFound() {
	ctx := context.Background()

	_, err := suite.service.ReplaceTransaction(ctx, 99, dto.ReplaceTransactionRequest{
		SenderID: 1, ReceiverID: 2, Amount: decimal.NewFromFloat(10.00),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFoundPassesThrough() {
	ctx := context.Background()

	err := suite.service.DeleteTransaction(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_EmptyIsNotNil() {
	ctx := context.Background()

	txns, err := suite.service.ListTransactions(ctx, 10, 0)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
