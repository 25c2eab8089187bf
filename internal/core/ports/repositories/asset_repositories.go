package repositories

import (
	"context"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
)

// AssetReader defines read operations for balances
type AssetReader interface {
	// FindAsset retrieves the balance of owner in currency, or apperrors.ErrNotFound.
	FindAsset(ctx context.Context, owner, currency string) (*domain.Asset, error)
}

// AssetWriter defines write operations for balances
type AssetWriter interface {
	InsertAsset(ctx context.Context, asset domain.Asset) error
	ReplaceAsset(ctx context.Context, asset domain.Asset) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}

// LockLogRepositoryFacade stores applied lock/unlock operations.
type LockLogRepositoryFacade interface {
	// FindLockLog retrieves the log entry for this exact operation, or apperrors.ErrNotFound.
	FindLockLog(ctx context.Context, owner, currency, orderID string, isLock bool) (*domain.LockLog, error)

	// AppendLockLog records an applied operation.
	AppendLockLog(ctx context.Context, log domain.LockLog) error
}
