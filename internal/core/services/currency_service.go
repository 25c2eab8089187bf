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

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	assetRepo    portsrepo.AssetRepositoryFacade
	verifier     portssvc.IdentityVerifier
}

// NewCurrencyService binds a currency registry to the repositories of one
// transaction.
func NewCurrencyService(repos portsrepo.RepositoryProvider, verifier portssvc.IdentityVerifier, clk clock.Clock) portssvc.CurrencySvcFacade {
	return &currencyService{
		BaseService:  BaseService{Clock: clk},
		currencyRepo: repos.CurrencyRepo,
		assetRepo:    repos.AssetRepo,
		verifier:     verifier,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, id string, count int64, creator string) (*domain.Currency, error) {
	if id == "" {
		return nil, apperrors.Validation("currency id is required")
	}
	if count < 0 {
		return nil, apperrors.Validation("initial count of %s must not be negative, got %d", id, count)
	}

	now := s.Now()
	currency := domain.Currency{
		ID:                id,
		TotalIssued:       count,
		AvailableToAssign: count,
		Creator:           creator,
		CreatedAt:         now,
	}
	if err := s.currencyRepo.InsertCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.Rejection(apperrors.ErrDuplicate, "currency %s already exists", id)
		}
		s.LogError(ctx, err, "Failed to insert currency", slog.String("currency", id))
		return nil, apperrors.Fault("failed to insert currency", err)
	}

	if count > 0 {
		if err := s.currencyRepo.AppendReleaseLog(ctx, domain.ReleaseLog{Currency: id, Count: count, ReleaseTime: now}); err != nil {
			s.LogError(ctx, err, "Failed to append release log", slog.String("currency", id))
			return nil, apperrors.Fault("failed to append release log", err)
		}
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency", id), slog.Int64("count", count))
	return &currency, nil
}

func (s *currencyService) ReleaseCurrency(ctx context.Context, id string, count int64, caller domain.Caller) (*domain.Currency, error) {
	if count <= 0 {
		return nil, apperrors.Validation("release count of %s must be positive, got %d", id, count)
	}
	if domain.IsBuiltinCurrency(id) {
		return nil, apperrors.Rejection(apperrors.ErrBuiltinCurrency, "currency %s", id)
	}

	currency, err := s.findCurrency(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifyCreator(ctx, currency, caller); err != nil {
		return nil, err
	}

	if !currency.Release(count) {
		return nil, apperrors.Rejection(apperrors.ErrAmountOverflow,
			"releasing %d of %s on top of %d issued", count, id, currency.TotalIssued)
	}
	if err := s.currencyRepo.ReplaceCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "Failed to replace currency", slog.String("currency", id))
		return nil, apperrors.Fault("failed to replace currency", err)
	}
	if err := s.currencyRepo.AppendReleaseLog(ctx, domain.ReleaseLog{Currency: id, Count: count, ReleaseTime: s.Now()}); err != nil {
		s.LogError(ctx, err, "Failed to append release log", slog.String("currency", id))
		return nil, apperrors.Fault("failed to append release log", err)
	}

	s.LogInfo(ctx, "Currency released",
		slog.String("currency", id),
		slog.Int64("count", count),
		slog.Int64("total_issued", currency.TotalIssued))
	return currency, nil
}

func (s *currencyService) AssignCurrency(ctx context.Context, assignment domain.Assignment, caller domain.Caller) (*domain.Currency, error) {
	for _, d := range assignment.Assigns {
		if d.Owner == "" {
			return nil, apperrors.Validation("assignment of %s has an empty owner", assignment.Currency)
		}
		if d.Count < 0 {
			return nil, apperrors.Validation("assignment of %s to %s must not be negative, got %d", assignment.Currency, d.Owner, d.Count)
		}
	}

	currency, err := s.findCurrency(ctx, assignment.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.verifyCreator(ctx, currency, caller); err != nil {
		return nil, err
	}

	total, ok := assignment.Total()
	if !ok {
		return nil, apperrors.Rejection(apperrors.ErrInsufficientBalance,
			"assignment of %s exceeds the %d available", currency.ID, currency.AvailableToAssign)
	}
	if total > currency.AvailableToAssign {
		return nil, apperrors.Rejection(apperrors.ErrInsufficientBalance,
			"assigning %d of %s exceeds the %d available", total, currency.ID, currency.AvailableToAssign)
	}

	for _, d := range assignment.Assigns {
		if d.Count == 0 {
			continue
		}
		if err := s.credit(ctx, currency.ID, d); err != nil {
			return nil, err
		}
	}

	currency.AvailableToAssign -= total
	if err := s.currencyRepo.ReplaceCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "Failed to replace currency", slog.String("currency", currency.ID))
		return nil, apperrors.Fault("failed to replace currency", err)
	}

	s.LogInfo(ctx, "Currency assigned",
		slog.String("currency", currency.ID),
		slog.Int64("total", total),
		slog.Int("owners", len(assignment.Assigns)))
	return currency, nil
}

// credit applies one distribution: the audit row first, then the balance.
func (s *currencyService) credit(ctx context.Context, currencyID string, d domain.Distribution) error {
	log := domain.AssignLog{Currency: currencyID, Owner: d.Owner, Count: d.Count, AssignTime: s.Now()}
	if err := s.currencyRepo.AppendAssignLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to append assign log", slog.String("currency", currencyID), slog.String("owner", d.Owner))
		return apperrors.Fault("failed to append assign log", err)
	}

	asset, err := s.assetRepo.FindAsset(ctx, d.Owner, currencyID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		err = s.assetRepo.InsertAsset(ctx, domain.Asset{Owner: d.Owner, Currency: currencyID, Available: d.Count})
	case err == nil:
		if !asset.Credit(d.Count) {
			return apperrors.Rejection(apperrors.ErrAmountOverflow,
				"crediting %d of %s to %s on top of %d", d.Count, currencyID, d.Owner, asset.Available)
		}
		err = s.assetRepo.ReplaceAsset(ctx, *asset)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to credit asset", slog.String("currency", currencyID), slog.String("owner", d.Owner))
		return apperrors.Fault("failed to credit asset", err)
	}
	s.LogDebug(ctx, "Asset credited", slog.String("currency", currencyID), slog.String("owner", d.Owner), slog.Int64("count", d.Count))
	return nil
}

// EnsureBuiltinCurrencies seeds CNY and USD owned by the system creator.
func (s *currencyService) EnsureBuiltinCurrencies(ctx context.Context) error {
	for _, id := range domain.BuiltinCurrencies {
		_, err := s.currencyRepo.FindCurrencyByID(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Fault("failed to read currency", err)
		}
		if _, err := s.CreateCurrency(ctx, id, 0, domain.SystemCreator); err != nil {
			return err
		}
	}
	return nil
}

func (s *currencyService) findCurrency(ctx context.Context, id string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Rejection(apperrors.ErrNotFound, "currency %s", id)
		}
		s.LogError(ctx, err, "Failed to read currency", slog.String("currency", id))
		return nil, apperrors.Fault("failed to read currency", err)
	}
	return currency, nil
}

// verifyCreator rejects unless the caller proves to be the currency creator.
func (s *currencyService) verifyCreator(ctx context.Context, currency *domain.Currency, caller domain.Caller) error {
	ok, err := s.verifier.Verify(ctx, currency.Creator, caller.Signature, caller.Payload)
	if err != nil {
		s.LogRejection(ctx, err, "Creator verification errored", slog.String("currency", currency.ID))
		return apperrors.Rejection(apperrors.ErrCreatorVerification, "currency %s: %v", currency.ID, err)
	}
	if !ok {
		return apperrors.Rejection(apperrors.ErrCreatorVerification, "currency %s", currency.ID)
	}
	return nil
}
