package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
	"github.com/SscSPs/exchange_ledger/internal/utils/clock"
)

type assetService struct {
	BaseService
	assetRepo   portsrepo.AssetRepositoryFacade
	lockLogRepo portsrepo.LockLogRepositoryFacade
}

// NewAssetService binds the asset ledger to the repositories of one
// transaction.
func NewAssetService(repos portsrepo.RepositoryProvider, clk clock.Clock) portssvc.AssetSvcFacade {
	return &assetService{
		BaseService: BaseService{Clock: clk},
		assetRepo:   repos.AssetRepo,
		lockLogRepo: repos.LockLogRepo,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// LockOrUnlockBalance moves req.Count between available and locked. Each
// (owner, currency, orderId, direction) is applied at most once.
func (s *assetService) LockOrUnlockBalance(ctx context.Context, req domain.LockRequest, isLock bool) error {
	if req.Count <= 0 {
		return apperrors.Validation("count of order %s must be positive, got %d", req.OrderID, req.Count)
	}

	asset, err := s.assetRepo.FindAsset(ctx, req.Owner, req.Currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Rejection(apperrors.ErrAssetNotFound, "%s of %s", req.Currency, req.Owner)
		}
		s.LogError(ctx, err, "Failed to read asset", slog.String("owner", req.Owner), slog.String("currency", req.Currency))
		return apperrors.Fault("failed to read asset", err)
	}

	_, err = s.lockLogRepo.FindLockLog(ctx, req.Owner, req.Currency, req.OrderID, isLock)
	switch {
	case err == nil:
		return apperrors.Rejection(apperrors.ErrAlreadyApplied, "%s of order %s", direction(isLock), req.OrderID)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to read lock log", slog.String("order_id", req.OrderID))
		return apperrors.Fault("failed to read lock log", err)
	}

	if isLock && !asset.CanLock(req.Count) {
		return apperrors.Rejection(apperrors.ErrInsufficientBalance,
			"cannot lock %d of %s: available %d, locked %d", req.Count, req.Currency, asset.Available, asset.Locked)
	}
	if !isLock && !asset.CanUnlock(req.Count) {
		return apperrors.Rejection(apperrors.ErrInsufficientBalance,
			"cannot unlock %d of %s: available %d, locked %d", req.Count, req.Currency, asset.Available, asset.Locked)
	}

	asset.Apply(req.Count, isLock)
	if err := s.assetRepo.ReplaceAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to replace asset", slog.String("owner", req.Owner), slog.String("currency", req.Currency))
		return apperrors.Fault("failed to replace asset", err)
	}

	log := domain.LockLog{
		Owner:    req.Owner,
		Currency: req.Currency,
		OrderID:  req.OrderID,
		IsLock:   isLock,
		Amount:   req.Count,
		LockTime: s.Now(),
	}
	if err := s.lockLogRepo.AppendLockLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to append lock log", slog.String("order_id", req.OrderID))
		return apperrors.Fault("failed to append lock log", err)
	}

	s.LogDebug(ctx, "Balance "+direction(isLock)+"ed",
		slog.String("owner", req.Owner),
		slog.String("currency", req.Currency),
		slog.String("order_id", req.OrderID),
		slog.Int64("count", req.Count))
	return nil
}

// Lock applies every item of batch. Business rejections are recorded against
// the item's order id; anything else aborts the batch.
func (s *assetService) Lock(ctx context.Context, batch []domain.LockRequest, isLock bool, srcMethod string) (*domain.BatchResult, error) {
	event := domain.EventLock
	if !isLock {
		event = domain.EventUnlock
	}
	result := domain.NewBatchResult(event, srcMethod)

	for _, req := range batch {
		err := s.LockOrUnlockBalance(ctx, req, isLock)
		if err == nil {
			result.Succeeded(req.OrderID)
			continue
		}
		if !apperrors.IsRejection(err) {
			return nil, err
		}
		s.LogRejection(ctx, err, "Lock item rejected", slog.String("order_id", req.OrderID))
		result.Failed(req.OrderID, err)
	}
	return result, nil
}

func direction(isLock bool) string {
	if isLock {
		return "lock"
	}
	return "unlock"
}
