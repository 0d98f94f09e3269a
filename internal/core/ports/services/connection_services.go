package services

import (
	"context"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
)

// ConnectionReaderSvc defines read operations over the connection graph
type ConnectionReaderSvc interface {
	// AreConnected reports whether the two accounts share an edge. The query
	// is symmetric and always false when both ids are equal.
	AreConnected(ctx context.Context, userA, userB int64) (bool, error)

	// ListConnections retrieves the accounts connected to the given user.
	ListConnections(ctx context.Context, userID int64) ([]domain.User, error)
}

// ConnectionWriterSvc defines mutations of the connection graph
type ConnectionWriterSvc interface {
	// Connect adds the bilateral edge between two existing, distinct accounts.
	// Adding an edge that already exists is a no-op, not an error.
	Connect(ctx context.Context, userA, userB int64) error

	// Disconnect removes the bilateral edge if present; no-op if absent.
	Disconnect(ctx context.Context, userA, userB int64) error

	// RemoveAllConnectionsFor removes the user from every peer's connection
	// set. Invoked as part of account deletion, before the row is removed.
	RemoveAllConnectionsFor(ctx context.Context, userID int64) error
}

// ConnectionSvcFacade combines all connection-graph service interfaces
type ConnectionSvcFacade interface {
	ConnectionReaderSvc
	ConnectionWriterSvc
}
