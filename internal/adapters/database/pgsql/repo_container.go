package pgsql

import (
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        NewPgxUserRepository(pool),
		ConnectionRepo:  NewPgxConnectionRepository(pool),
		TransactionRepo: NewPgxTransactionRepository(pool),
	}
}
