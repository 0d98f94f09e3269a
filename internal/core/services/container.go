package services

import (
	portsrepo "github.com/friendpay/friendpay_backend/internal/core/ports/repositories"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, repos.ConnectionRepo)
	container.Connection = NewConnectionService(repos.UserRepo, repos.ConnectionRepo)

	// The validator reads the same edge set the connection service writes.
	container.TransferValidator = NewTransferValidator(repos.ConnectionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.UserRepo, container.TransferValidator)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.ConnectionSvcFacade  = (*connectionService)(nil)
	_ portssvc.TransferValidatorSvc = (*transferValidator)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)
