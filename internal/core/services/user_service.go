package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"context"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/internal/dto"
	"github.com/friendpay/friendpay_backend/internal/utils"
)

// userService implements the UserSvcFacade interface. It owns account identity
// and delegates edge bookkeeping to the connection repository, so deleting a
// user always detaches its edges first.
type userService struct {
	BaseService
	userRepo       portsrepo.UserRepositoryFacade
	connectionRepo portsrepo.ConnectionWriter
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(userRepo portsrepo.UserRepositoryFacade, connectionRepo portsrepo.ConnectionWriter) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

const maxUsernameLength = 50

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d characters or fewer", apperrors.ErrValidation, maxUsernameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email format is invalid", apperrors.ErrValidation)
	}
	return nil
}

// resolveCredential turns a tagged credential into the hash to persist.
// Plaintext gets hashed; an already-hashed value is stored as given. The
// service never inspects the string's shape to decide.
func resolveCredential(cred domain.Credential) (string, error) {
	if cred.Hashed {
		return cred.Value, nil
	}
	hash, err := utils.HashPassword(cred.Value)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// ensureEmailAvailable fails with ErrDuplicate when the email belongs to a
// different account id. The unique index backs this up at write time.
func (s *userService) ensureEmailAvailable(ctx context.Context, email string, selfID int64) error {
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email availability: %w", err)
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
	}
	return nil
}

// CreateUser creates a new user from a plaintext credential.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	if err := s.ensureEmailAvailable(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := resolveCredential(domain.Credential{Value: req.Password})
	if err != nil {
		s.LogError(ctx, err, "Failed to prepare credential for new user")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.Int64("user_id", created.ID))
	return created, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by the exact email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateUser updates the fields present in the request.
func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if err := validateUsername(*req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		if err := s.ensureEmailAvailable(ctx, *req.Email, userID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := resolveCredential(domain.Credential{Value: *req.Password})
		if err != nil {
			s.LogError(ctx, err, "Failed to prepare credential for update", slog.Int64("user_id", userID))
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.Int64("user_id", userID))
	return user, nil
}

// DeleteUser detaches the user's connection edges and then removes the row.
// The two-step protocol keeps the ordering guarantee visible here: skipping
// the detach would leave peers with dangling references.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.connectionRepo.DeleteEdgesFor(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to detach connections before delete", slog.Int64("user_id", userID))
		return fmt.Errorf("failed to detach connections for user %d: %w", userID, err)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.Int64("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deleted", slog.Int64("user_id", userID))
	return nil
}

// AuthenticateUser authenticates a user with email and password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	return user, nil
}
