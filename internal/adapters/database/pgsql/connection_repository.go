package pgsql

import (
	"context"
	"fmt"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConnectionRepository stores the connection graph as canonicalized edge
// rows (user_a < user_b), so the symmetric relation is a single row per pair
// and cascade cleanup is one query instead of a walk over mirrored sets.
type PgxConnectionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxConnectionRepository creates a new repository for connection edges.
func NewPgxConnectionRepository(pool *pgxpool.Pool) portsrepo.ConnectionRepositoryFacade {
	return &PgxConnectionRepository{pool: pool}
}

// Ensure PgxConnectionRepository implements portsrepo.ConnectionRepositoryFacade
var _ portsrepo.ConnectionRepositoryFacade = (*PgxConnectionRepository)(nil)

// SaveEdge inserts the canonical edge row. ON CONFLICT DO NOTHING makes the
// insert idempotent, so two racing connect calls both succeed.
func (r *PgxConnectionRepository) SaveEdge(ctx context.Context, userA, userB int64) error {
	a, b := domain.CanonicalPair(userA, userB)
	query := `
		INSERT INTO user_connections (user_a, user_b, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_a, user_b) DO NOTHING;
	`
	if _, err := r.pool.Exec(ctx, query, a, b); err != nil {
		return fmt.Errorf("failed to save connection edge (%d,%d): %w", a, b, err)
	}
	return nil
}

func (r *PgxConnectionRepository) DeleteEdge(ctx context.Context, userA, userB int64) error {
	a, b := domain.CanonicalPair(userA, userB)
	query := `DELETE FROM user_connections WHERE user_a = $1 AND user_b = $2;`
	if _, err := r.pool.Exec(ctx, query, a, b); err != nil {
		return fmt.Errorf("failed to delete connection edge (%d,%d): %w", a, b, err)
	}
	return nil
}

// DeleteEdgesFor removes every edge touching the user, whichever side of the
// canonical pair it sits on.
func (r *PgxConnectionRepository) DeleteEdgesFor(ctx context.Context, userID int64) error {
	query := `DELETE FROM user_connections WHERE user_a = $1 OR user_b = $1;`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete connection edges for user %d: %w", userID, err)
	}
	return nil
}

func (r *PgxConnectionRepository) EdgeExists(ctx context.Context, userA, userB int64) (bool, error) {
	a, b := domain.CanonicalPair(userA, userB)
	query := `SELECT EXISTS (SELECT 1 FROM user_connections WHERE user_a = $1 AND user_b = $2);`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check connection edge (%d,%d): %w", a, b, err)
	}
	return exists, nil
}

// ListPeers joins the edge table from both sides to recover the unordered view.
func (r *PgxConnectionRepository) ListPeers(ctx context.Context, userID int64) ([]domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
		FROM user_connections c
		JOIN users u ON u.id = CASE WHEN c.user_a = $1 THEN c.user_b ELSE c.user_a END
		WHERE c.user_a = $1 OR c.user_b = $1
		ORDER BY u.id;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections for user %d: %w", userID, err)
	}
	defer rows.Close()

	peers := []domain.User{}
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection row: %w", err)
		}
		peers = append(peers, user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating connection rows: %w", rows.Err())
	}

	return peers, nil
}
