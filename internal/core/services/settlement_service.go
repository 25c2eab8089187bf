package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
	"github.com/SscSPs/exchange_ledger/internal/utils/clock"
)

type settlementService struct {
	BaseService
	tx       portsrepo.LedgerTx
	newRepos portsrepo.RepositoryFactory
}

// NewSettlementService settles matches inside tx. Every pair runs in its own
// nested transaction so a rejected pair leaves nothing behind.
func NewSettlementService(tx portsrepo.LedgerTx, newRepos portsrepo.RepositoryFactory, clk clock.Clock) portssvc.SettlementSvcFacade {
	return &settlementService{
		BaseService: BaseService{Clock: clk},
		tx:          tx,
		newRepos:    newRepos,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// Exchange settles every match. A currency mismatch anywhere fails the whole
// call before anything is applied; per-pair rejections are recorded and
// skipped; storage faults abort.
func (s *settlementService) Exchange(ctx context.Context, matches []domain.Match) (*domain.BatchResult, error) {
	for i := range matches {
		if !matches[i].Symmetric() {
			return nil, apperrors.Rejection(apperrors.ErrCurrencyMismatch,
				"pair %s trades %s/%s against %s/%s", matches[i].ID(),
				matches[i].BuyOrder.SrcCurrency, matches[i].BuyOrder.DesCurrency,
				matches[i].SellOrder.SrcCurrency, matches[i].SellOrder.DesCurrency)
		}
	}

	result := domain.NewBatchResult(domain.EventExchange, "")
	journal := s.newRepos(s.tx).TradeLogRepo

	for i := range matches {
		m := &matches[i]
		pairID := m.ID()

		if err := s.checkUnsettled(ctx, journal, m); err != nil {
			if !apperrors.IsRejection(err) {
				return nil, err
			}
			s.LogRejection(ctx, err, "Pair skipped", slog.String("pair", pairID))
			result.Failed(pairID, err)
			continue
		}

		if err := s.settlePair(ctx, m); err != nil {
			if !apperrors.IsRejection(err) {
				s.LogError(ctx, err, "Settlement aborted", slog.String("pair", pairID))
				return nil, err
			}
			s.LogRejection(ctx, err, "Pair rejected", slog.String("pair", pairID))
			result.Failed(pairID, err)
			continue
		}

		s.LogDebug(ctx, "Pair settled", slog.String("pair", pairID))
		result.Succeeded(pairID)
	}
	return result, nil
}

func (s *settlementService) checkUnsettled(ctx context.Context, journal portsrepo.TradeLogReader, m *domain.Match) error {
	for _, id := range []string{m.BuyOrder.UUID, m.SellOrder.UUID} {
		settled, err := journal.IsSettled(ctx, id)
		if err != nil {
			return apperrors.Fault("failed to read trade index", err)
		}
		if settled {
			return apperrors.Rejection(apperrors.ErrAlreadySettled, "order %s", id)
		}
	}
	return nil
}

// settlePair runs execTx and journals both legs in a nested transaction.
func (s *settlementService) settlePair(ctx context.Context, m *domain.Match) (err error) {
	nested, err := s.tx.Begin(ctx)
	if err != nil {
		return apperrors.Fault("failed to begin pair transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := nested.Rollback(ctx); rbErr != nil {
				err = apperrors.Fault("failed to roll back pair transaction", errors.Join(err, rbErr))
			}
		}
	}()

	repos := s.newRepos(nested)
	if err = s.execTx(ctx, repos, &m.BuyOrder, &m.SellOrder); err != nil {
		return err
	}
	for _, o := range []domain.Order{m.BuyOrder, m.SellOrder} {
		if err = repos.TradeLogRepo.AppendLeg(ctx, domain.NewTradeLeg(o)); err != nil {
			return apperrors.Fault("failed to journal trade leg", err)
		}
	}
	if err = nested.Commit(ctx); err != nil {
		return apperrors.Fault("failed to commit pair transaction", err)
	}
	return nil
}

// execTx applies the buy side, then the sell side. The first failing step
// stops the pair.
func (s *settlementService) execTx(ctx context.Context, repos portsrepo.RepositoryProvider, buy, sell *domain.Order) error {
	if err := s.settleSide(ctx, repos, buy); err != nil {
		return fmt.Errorf("buy order %s: %w", buy.UUID, err)
	}
	if err := s.settleSide(ctx, repos, sell); err != nil {
		return fmt.Errorf("sell order %s: %w", sell.UUID, err)
	}
	return nil
}

func (s *settlementService) settleSide(ctx context.Context, repos portsrepo.RepositoryProvider, o *domain.Order) error {
	if o.CompletesParent() {
		residual, err := s.computeBalance(ctx, repos, o)
		if err != nil {
			return err
		}
		if residual > 0 {
			unlock := domain.LockRequest{Owner: o.Account, Currency: o.SrcCurrency, OrderID: o.RawUUID, Count: residual}
			if err := NewAssetService(repos, s.Clock).LockOrUnlockBalance(ctx, unlock, false); err != nil {
				return err
			}
			s.LogDebug(ctx, "Residual unlocked", slog.String("order_id", o.RawUUID), slog.Int64("residual", residual))
		}
	}

	if err := s.debit(ctx, repos.AssetRepo, o); err != nil {
		return err
	}
	return s.credit(ctx, repos.AssetRepo, o)
}

// computeBalance returns what is still locked for the parent order once this
// leg is paid: the amount locked for it, less every executed leg's cost, less
// this leg's cost. It trusts the lock and trade journals to agree.
func (s *settlementService) computeBalance(ctx context.Context, repos portsrepo.RepositoryProvider, o *domain.Order) (int64, error) {
	lock, err := repos.LockLogRepo.FindLockLog(ctx, o.Account, o.SrcCurrency, o.RawUUID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.Rejection(apperrors.ErrResidualUnresolvable, "no lock recorded for order %s", o.RawUUID)
		}
		return 0, apperrors.Fault("failed to read lock log", err)
	}

	legs, err := repos.TradeLogRepo.ListLegs(ctx, o.Account, o.SrcCurrency, o.DesCurrency, o.RawUUID)
	if err != nil {
		return 0, apperrors.Fault("failed to read trade legs", err)
	}
	spent := o.FinalCost
	for _, leg := range legs {
		var ok bool
		if spent, ok = domain.AddAmounts(spent, leg.Detail.FinalCost); !ok {
			return 0, apperrors.Rejection(apperrors.ErrResidualUnresolvable, "legs of order %s overflow", o.RawUUID)
		}
	}

	residual := lock.Amount - spent
	if residual < 0 {
		return 0, apperrors.Rejection(apperrors.ErrResidualUnresolvable,
			"order %s locked %d but spent %d", o.RawUUID, lock.Amount, spent)
	}
	return residual, nil
}

func (s *settlementService) debit(ctx context.Context, assets portsrepo.AssetRepositoryFacade, o *domain.Order) error {
	asset, err := assets.FindAsset(ctx, o.Account, o.SrcCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Rejection(apperrors.ErrAssetNotFound, "%s of %s", o.SrcCurrency, o.Account)
		}
		return apperrors.Fault("failed to read asset", err)
	}
	if asset.Locked < o.FinalCost {
		return apperrors.Rejection(apperrors.ErrInsufficientBalance,
			"locked %d of %s is less than cost %d", asset.Locked, o.SrcCurrency, o.FinalCost)
	}
	asset.Locked -= o.FinalCost
	if err := assets.ReplaceAsset(ctx, *asset); err != nil {
		return apperrors.Fault("failed to replace asset", err)
	}
	return nil
}

func (s *settlementService) credit(ctx context.Context, assets portsrepo.AssetRepositoryFacade, o *domain.Order) error {
	asset, err := assets.FindAsset(ctx, o.Account, o.DesCurrency)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		err = assets.InsertAsset(ctx, domain.Asset{Owner: o.Account, Currency: o.DesCurrency, Available: o.DesCount})
	case err == nil:
		if !asset.Credit(o.DesCount) {
			return apperrors.Rejection(apperrors.ErrAmountOverflow,
				"crediting %d of %s to %s on top of %d", o.DesCount, o.DesCurrency, o.Account, asset.Available)
		}
		err = assets.ReplaceAsset(ctx, *asset)
	}
	if err != nil {
		return apperrors.Fault("failed to credit asset", err)
	}
	return nil
}
