package services_test

import (
	"context"
	"testing"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/internal/core/services"
	"github.com/stretchr/testify/suite"
)

// --- Fake UserReader backed by a map ---
type fakeUserReader struct {
	users map[int64]domain.User
}

var _ portsrepo.UserReader = (*fakeUserReader)(nil)

func (f *fakeUserReader) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if u, ok := f.users[userID]; ok {
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserReader) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserReader) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users := []domain.User{}
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

// --- Test Suite ---
type ConnectionServiceTestSuite struct {
	suite.Suite
	userReader *fakeUserReader
	edges      *fakeEdgeRepo
	service    portssvc.ConnectionSvcFacade
}

func (suite *ConnectionServiceTestSuite) SetupTest() {
	suite.userReader = &fakeUserReader{users: map[int64]domain.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
		2: {ID: 2, Username: "bob", Email: "bob@example.com"},
		3: {ID: 3, Username: "carol", Email: "carol@example.com"},
	}}
	suite.edges = newFakeEdgeRepo()
	suite.edges.users = suite.userReader.users
	suite.service = services.NewConnectionService(suite.userReader, suite.edges)
}

func (suite *ConnectionServiceTestSuite) TestConnect_EdgeVisibleFromBothSides() {
	ctx := context.Background()

	suite.Require().NoError(suite.service.Connect(ctx, 1, 2))

	ab, err := suite.service.AreConnected(ctx, 1, 2)
	suite.Require().NoError(err)
	ba, err := suite.service.AreConnected(ctx, 2, 1)
	suite.Require().NoError(err)
	suite.True(ab)
	suite.True(ba)
}

func (suite *ConnectionServiceTestSuite) TestConnect_Idempotent() {
	ctx := context.Background()

	suite.Require().NoError(suite.service.Connect(ctx, 1, 2))
	suite.Require().NoError(suite.service.Connect(ctx, 1, 2))
	suite.Require().NoError(suite.service.Connect(ctx, 2, 1))

	suite.Len(suite.edges.edges, 1)
}

func (suite *ConnectionServiceTestSuite) TestConnect_SelfFails() {
	ctx := context.Background()

	err := suite.service.Connect(ctx, 1, 1)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSelfReference)
	suite.Empty(suite.edges.edges)
}

func (suite *ConnectionServiceTestSuite) TestConnect_UnknownUserFails() {
	ctx := context.Background()

	err := suite.service.Connect(ctx, 1, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.edges.edges)
}

func (suite *ConnectionServiceTestSuite) TestDisconnect_RemovesBothDirections() {
	ctx := context.Background()
	suite.Require().NoError(suite.service.Connect(ctx, 1, 2))

	suite.Require().NoError(suite.service.Disconnect(ctx, 2, 1))

	ab, err := suite.service.AreConnected(ctx, 1, 2)
	suite.Require().NoError(err)
	ba, err := suite.service.AreConnected(ctx, 2, 1)
	suite.Require().NoError(err)
	suite.False(ab)
	suite.False(ba)
}

func (suite *ConnectionServiceTestSuite) TestDisconnect_AbsentEdgeIsNoop() {
	ctx := context.Background()

	suite.NoError(suite.service.Disconnect(ctx, 1, 2))
}

func (suite *ConnectionServiceTestSuite) TestAreConnected_SelfAlwaysFalse() {
	ctx := context.Background()

	connected, err := suite.service.AreConnected(ctx, 1, 1)

	suite.Require().NoError(err)
	suite.False(connected)
}

func (suite *ConnectionServiceTestSuite) TestRemoveAllConnectionsFor_LeavesNoDanglingPeers() {
	ctx := context.Background()
	suite.Require().NoError(suite.service.Connect(ctx, 1, 2))
	suite.Require().NoError(suite.service.Connect(ctx, 1, 3))
	suite.Require().NoError(suite.service.Connect(ctx, 2, 3))

	suite.Require().NoError(suite.service.RemoveAllConnectionsFor(ctx, 1))

	for _, peerID := range []int64{2, 3} {
		peers, err := suite.service.ListConnections(ctx, peerID)
		suite.Require().NoError(err)
		for _, p := range peers {
			suite.NotEqual(int64(1), p.ID)
		}
	}
	// The unrelated edge survives
	connected, err := suite.service.AreConnected(ctx, 2, 3)
	suite.Require().NoError(err)
	suite.True(connected)
}

func (suite *ConnectionServiceTestSuite) TestListConnections_EmptyIsNotAnError() {
	ctx := context.Background()

	peers, err := suite.service.ListConnections(ctx, 1)

	suite.Require().NoError(err)
	suite.NotNil(peers)
	suite.Empty(peers)
}

func (suite *ConnectionServiceTestSuite) TestListConnections_UnknownUserFails() {
	ctx := context.Background()

	_, err := suite.service.ListConnections(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestConnectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConnectionServiceTestSuite))
}
