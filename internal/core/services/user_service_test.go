package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/internal/core/services"
	"github.com/friendpay/friendpay_backend/internal/dto"
	"github.com/friendpay/friendpay_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ConnectionWriter ---
type MockConnectionWriter struct {
	mock.Mock
}

func (m *MockConnectionWriter) SaveEdge(ctx context.Context, a, b int64) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}

func (m *MockConnectionWriter) DeleteEdge(ctx context.Context, a, b int64) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}

func (m *MockConnectionWriter) DeleteEdgesFor(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo       *MockUserRepository
	mockConnectionRepo *MockConnectionWriter
	service            portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockConnectionRepo = new(MockConnectionWriter)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockConnectionRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("domain.User")).Once().
		Run(func(args mock.Arguments) {
			userArg := args.Get(1).(domain.User)
			suite.NotEqual(req.Password, userArg.PasswordHash)
			suite.True(utils.CheckPasswordHash(req.Password, userArg.PasswordHash))
		}).
		Return(&domain.User{ID: 1, Username: req.Username, Email: req.Email}, nil)

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(int64(1), user.ID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "alice", Email: "taken@example.com", Password: "secret123"}
	existing := &domain.User{ID: 7, Email: req.Email}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "alice", Email: "not-an-email", Password: "secret123"}

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTooLong() {
	ctx := context.Background()
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	req := dto.CreateUserRequest{Username: string(long), Email: "alice@example.com", Password: "secret123"}

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestUpdateUser_EmailConflict() {
	ctx := context.Background()
	newEmail := "taken@example.com"
	existing := &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	other := &domain.User{ID: 2, Email: newEmail}

	suite.mockUserRepo.On("FindUserByID", ctx, int64(1)).Return(existing, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, newEmail).Return(other, nil).Once()

	user, err := suite.service.UpdateUser(ctx, 1, dto.UpdateUserRequest{Email: &newEmail})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SameAccountKeepsEmail() {
	ctx := context.Background()
	email := "alice@example.com"
	existing := &domain.User{ID: 1, Username: "alice", Email: email, AuditFields: domain.AuditFields{UpdatedAt: time.Now().Add(-time.Hour)}}

	suite.mockUserRepo.On("FindUserByID", ctx, int64(1)).Return(existing, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, 1, dto.UpdateUserRequest{Email: &email})

	suite.Require().NoError(err)
	suite.Equal(email, user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_DetachesEdgesBeforeDelete() {
	ctx := context.Background()
	existing := &domain.User{ID: 2, Username: "bob", Email: "bob@example.com"}
	var callOrder []string

	suite.mockUserRepo.On("FindUserByID", ctx, int64(2)).Return(existing, nil).Once()
	suite.mockConnectionRepo.On("DeleteEdgesFor", ctx, int64(2)).Return(nil).Once().
		Run(func(mock.Arguments) { callOrder = append(callOrder, "detach") })
	suite.mockUserRepo.On("DeleteUser", ctx, int64(2)).Return(nil).Once().
		Run(func(mock.Arguments) { callOrder = append(callOrder, "delete") })

	err := suite.service.DeleteUser(ctx, 2)

	suite.Require().NoError(err)
	suite.Equal([]string{"detach", "delete"}, callOrder)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockConnectionRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_DetachFailureAbortsDelete() {
	ctx := context.Background()
	existing := &domain.User{ID: 2, Username: "bob", Email: "bob@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, int64(2)).Return(existing, nil).Once()
	suite.mockConnectionRepo.On("DeleteEdgesFor", ctx, int64(2)).Return(assert.AnError).Once()

	err := suite.service.DeleteUser(ctx, 2)

	suite.Require().Error(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockConnectionRepo.AssertNotCalled(suite.T(), "DeleteEdgesFor", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret123")
	suite.Require().NoError(err)
	user := &domain.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, "secret123")

	suite.Require().NoError(err)
	suite.Equal(user.ID, got.ID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret123")
	suite.Require().NoError(err)
	user := &domain.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, "wrong")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
