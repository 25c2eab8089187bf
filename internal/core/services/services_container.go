package services

import (
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
	"github.com/SscSPs/exchange_ledger/internal/utils/clock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	store portsrepo.LedgerStore,
	newRepos portsrepo.RepositoryFactory,
	verifier portssvc.IdentityVerifier,
	decoder portssvc.IdentifierDecoder,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Dispatcher: NewDispatcher(store, newRepos, verifier, decoder, clock.NewMonotonic()),
	}
}
