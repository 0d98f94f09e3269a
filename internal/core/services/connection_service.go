package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
)

// connectionService implements the ConnectionSvcFacade interface. It owns the
// symmetric-relation invariant: every edge it writes is visible from both
// sides because the edge set is keyed by the canonical unordered pair.
type connectionService struct {
	BaseService
	userRepo       portsrepo.UserReader
	connectionRepo portsrepo.ConnectionRepositoryFacade
}

// NewConnectionService creates a new connection service with the provided dependencies
func NewConnectionService(userRepo portsrepo.UserReader, connectionRepo portsrepo.ConnectionRepositoryFacade) portssvc.ConnectionSvcFacade {
	return &connectionService{
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
	}
}

// Ensure connectionService implements the ConnectionSvcFacade interface
var _ portssvc.ConnectionSvcFacade = (*connectionService)(nil)

// requireUser resolves an account id, mapping absence to ErrNotFound.
func (s *connectionService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
		}
		return err
	}
	return nil
}

// Connect adds the bilateral edge between two existing, distinct accounts.
// Re-adding an existing edge is a no-op; whether a duplicate request is a
// user error is the caller's decision, not this primitive's.
func (s *connectionService) Connect(ctx context.Context, userA, userB int64) error {
	if userA == userB {
		return fmt.Errorf("%w: cannot connect user %d to itself", apperrors.ErrSelfReference, userA)
	}

	if err := s.requireUser(ctx, userA); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userB); err != nil {
		return err
	}

	a, b := domain.CanonicalPair(userA, userB)
	if err := s.connectionRepo.SaveEdge(ctx, a, b); err != nil {
		s.LogError(ctx, err, "Failed to save connection edge",
			slog.Int64("user_a", a), slog.Int64("user_b", b))
		return err
	}

	s.LogInfo(ctx, "Connection added", slog.Int64("user_a", a), slog.Int64("user_b", b))
	return nil
}

// Disconnect removes the bilateral edge if present; no-op if absent.
func (s *connectionService) Disconnect(ctx context.Context, userA, userB int64) error {
	if userA == userB {
		return fmt.Errorf("%w: cannot disconnect user %d from itself", apperrors.ErrSelfReference, userA)
	}

	a, b := domain.CanonicalPair(userA, userB)
	if err := s.connectionRepo.DeleteEdge(ctx, a, b); err != nil {
		s.LogError(ctx, err, "Failed to delete connection edge",
			slog.Int64("user_a", a), slog.Int64("user_b", b))
		return err
	}

	s.LogInfo(ctx, "Connection removed", slog.Int64("user_a", a), slog.Int64("user_b", b))
	return nil
}

// AreConnected reports whether the two accounts share an edge. Symmetric by
// construction and always false for a self pair.
func (s *connectionService) AreConnected(ctx context.Context, userA, userB int64) (bool, error) {
	if userA == userB {
		return false, nil
	}
	a, b := domain.CanonicalPair(userA, userB)
	return s.connectionRepo.EdgeExists(ctx, a, b)
}

// ListConnections retrieves the accounts connected to the given user.
func (s *connectionService) ListConnections(ctx context.Context, userID int64) ([]domain.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	peers, err := s.connectionRepo.ListPeers(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list connections", slog.Int64("user_id", userID))
		return nil, err
	}
	if peers == nil {
		return []domain.User{}, nil
	}
	return peers, nil
}

// RemoveAllConnectionsFor removes the user from every peer's connection set.
// Account deletion must run this before removing the row.
func (s *connectionService) RemoveAllConnectionsFor(ctx context.Context, userID int64) error {
	if err := s.connectionRepo.DeleteEdgesFor(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to remove all connections", slog.Int64("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "All connections removed", slog.Int64("user_id", userID))
	return nil
}
