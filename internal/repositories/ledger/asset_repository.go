package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_ledger/internal/utils/mapping"
)

type assetRepository struct {
	tx portsrepo.LedgerTx
}

func newAssetRepository(tx portsrepo.LedgerTx) *assetRepository {
	return &assetRepository{tx: tx}
}

var _ portsrepo.AssetRepositoryFacade = (*assetRepository)(nil)

func (r *assetRepository) FindAsset(ctx context.Context, owner, currency string) (*domain.Asset, error) {
	row, err := r.tx.Get(ctx, AssetTable, portsrepo.Row{portsrepo.Text(owner), portsrepo.Text(currency)})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset %s/%s: %w", owner, currency, err)
	}
	a, err := mapping.ToDomainAsset(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepository) InsertAsset(ctx context.Context, asset domain.Asset) error {
	if err := r.tx.Insert(ctx, AssetTable, mapping.ToRowAsset(asset)); err != nil {
		return fmt.Errorf("failed to insert asset %s/%s: %w", asset.Owner, asset.Currency, err)
	}
	return nil
}

func (r *assetRepository) ReplaceAsset(ctx context.Context, asset domain.Asset) error {
	if err := r.tx.Replace(ctx, AssetTable, mapping.ToRowAsset(asset)); err != nil {
		return fmt.Errorf("failed to replace asset %s/%s: %w", asset.Owner, asset.Currency, err)
	}
	return nil
}

type lockLogRepository struct {
	tx portsrepo.LedgerTx
}

func newLockLogRepository(tx portsrepo.LedgerTx) *lockLogRepository {
	return &lockLogRepository{tx: tx}
}

var _ portsrepo.LockLogRepositoryFacade = (*lockLogRepository)(nil)

func (r *lockLogRepository) FindLockLog(ctx context.Context, owner, currency, orderID string, isLock bool) (*domain.LockLog, error) {
	key := portsrepo.Row{
		portsrepo.Text(owner),
		portsrepo.Text(currency),
		portsrepo.Text(orderID),
		portsrepo.Bool(isLock),
	}
	row, err := r.tx.Get(ctx, LockLogTable, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lock log %s/%s/%s: %w", owner, currency, orderID, err)
	}
	l, err := mapping.ToDomainLockLog(row)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lockLogRepository) AppendLockLog(ctx context.Context, log domain.LockLog) error {
	if err := r.tx.Insert(ctx, LockLogTable, mapping.ToRowLockLog(log)); err != nil {
		return fmt.Errorf("failed to append lock log %s/%s/%s: %w", log.Owner, log.Currency, log.OrderID, err)
	}
	return nil
}
