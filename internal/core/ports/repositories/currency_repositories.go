package repositories

import (
	"context"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency, or apperrors.ErrNotFound.
	FindCurrencyByID(ctx context.Context, id string) (*domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// InsertCurrency persists a new currency. An existing id fails with apperrors.ErrDuplicateKey.
	InsertCurrency(ctx context.Context, currency domain.Currency) error

	// ReplaceCurrency overwrites an existing currency row in full.
	ReplaceCurrency(ctx context.Context, currency domain.Currency) error

	// AppendReleaseLog records an issuance event.
	AppendReleaseLog(ctx context.Context, log domain.ReleaseLog) error

	// AppendAssignLog records a distribution event.
	AppendAssignLog(ctx context.Context, log domain.AssignLog) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
