package services

import (
	"context"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
)

// CurrencySvcFacade issues currencies and distributes them to owners.
type CurrencySvcFacade interface {
	// CreateCurrency registers id with an initial supply of count.
	CreateCurrency(ctx context.Context, id string, count int64, creator string) (*domain.Currency, error)

	// ReleaseCurrency issues count more units. The caller must be the creator.
	ReleaseCurrency(ctx context.Context, id string, count int64, caller domain.Caller) (*domain.Currency, error)

	// AssignCurrency moves released units to owners. Either every
	// distribution is applied or none.
	AssignCurrency(ctx context.Context, assignment domain.Assignment, caller domain.Caller) (*domain.Currency, error)

	// EnsureBuiltinCurrencies seeds the genesis currencies if missing.
	EnsureBuiltinCurrencies(ctx context.Context) error
}

// AssetSvcFacade moves balances between available and locked.
type AssetSvcFacade interface {
	LockOrUnlockBalance(ctx context.Context, req domain.LockRequest, isLock bool) error

	// Lock applies every item, collecting business rejections per item.
	Lock(ctx context.Context, batch []domain.LockRequest, isLock bool, srcMethod string) (*domain.BatchResult, error)
}

// SettlementSvcFacade settles matched orders.
type SettlementSvcFacade interface {
	Exchange(ctx context.Context, matches []domain.Match) (*domain.BatchResult, error)
}

// DispatcherSvc runs caller invocations against the ledger, one store
// transaction per invocation.
type DispatcherSvc interface {
	Dispatch(ctx context.Context, inv domain.Invocation) domain.Result
	Bootstrap(ctx context.Context) error
}

// ServiceContainer holds the services the transport layer talks to.
type ServiceContainer struct {
	Dispatcher DispatcherSvc
}
