package repositories

import (
	"context"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
)

// ConnectionReader defines read operations over the connection edge set
type ConnectionReader interface {
	// EdgeExists reports whether the unordered edge {a,b} is present.
	EdgeExists(ctx context.Context, userA, userB int64) (bool, error)

	// ListPeers retrieves the accounts connected to the given user.
	ListPeers(ctx context.Context, userID int64) ([]domain.User, error)
}

// ConnectionWriter defines write operations over the connection edge set
type ConnectionWriter interface {
	// SaveEdge inserts the unordered edge {a,b}. Inserting an existing edge
	// is a no-op.
	SaveEdge(ctx context.Context, userA, userB int64) error

	// DeleteEdge removes the unordered edge {a,b}; removing an absent edge is
	// a no-op.
	DeleteEdge(ctx context.Context, userA, userB int64) error

	// DeleteEdgesFor removes every edge touching the given user, whichever
	// side of the canonical pair the user sits on.
	DeleteEdgesFor(ctx context.Context, userID int64) error
}

// ConnectionRepositoryFacade combines all connection-related repository interfaces
type ConnectionRepositoryFacade interface {
	ConnectionReader
	ConnectionWriter
}
