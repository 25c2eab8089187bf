package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
	"github.com/SscSPs/exchange_ledger/internal/utils/clock"
)

type dispatcher struct {
	BaseService
	store    portsrepo.LedgerStore
	newRepos portsrepo.RepositoryFactory
	verifier portssvc.IdentityVerifier
	parser   commandParser
}

// NewDispatcher creates the entry point for caller invocations.
func NewDispatcher(
	store portsrepo.LedgerStore,
	newRepos portsrepo.RepositoryFactory,
	verifier portssvc.IdentityVerifier,
	decoder portssvc.IdentifierDecoder,
	clk clock.Clock,
) portssvc.DispatcherSvc {
	return &dispatcher{
		BaseService: BaseService{Clock: clk},
		store:       store,
		newRepos:    newRepos,
		verifier:    verifier,
		parser: commandParser{
			decoder:  decoder,
			validate: validator.New(),
		},
	}
}

var _ portssvc.DispatcherSvc = (*dispatcher)(nil)

// Dispatch runs inv in one store transaction. The transaction commits only if
// the command returns no error; a batch with failed items still commits.
func (d *dispatcher) Dispatch(ctx context.Context, inv domain.Invocation) domain.Result {
	logger := d.GetLogger(ctx).With(slog.String("function", inv.Function))

	cmd, err := d.parser.parse(inv)
	if err != nil {
		logger.Warn("Invocation rejected", slog.String("reason", err.Error()))
		return resultFromError(err)
	}

	batch, err := d.inTransaction(ctx, func(tx portsrepo.LedgerTx) (*domain.BatchResult, error) {
		return d.execute(ctx, tx, cmd, inv.Caller())
	})
	if err != nil {
		d.LogOutcome(ctx, err, "Invocation failed", slog.String("function", cmd.name()))
		return resultFromError(err)
	}

	attrs := []any{}
	if batch != nil {
		attrs = append(attrs, slog.Int("succeeded", len(batch.Success)), slog.Int("failed", len(batch.Fail)))
	}
	logger.Info("Invocation committed", attrs...)
	return domain.Result{Outcome: domain.OutcomeOK, Batch: batch}
}

func (d *dispatcher) execute(ctx context.Context, tx portsrepo.LedgerTx, cmd command, caller domain.Caller) (*domain.BatchResult, error) {
	repos := d.newRepos(tx)

	switch c := cmd.(type) {
	case createCurrencyCmd:
		_, err := NewCurrencyService(repos, d.verifier, d.Clock).CreateCurrency(ctx, c.ID, c.Count, c.Creator)
		return nil, err
	case releaseCurrencyCmd:
		_, err := NewCurrencyService(repos, d.verifier, d.Clock).ReleaseCurrency(ctx, c.ID, c.Count, caller)
		return nil, err
	case assignCurrencyCmd:
		_, err := NewCurrencyService(repos, d.verifier, d.Clock).AssignCurrency(ctx, c.Assignment, caller)
		return nil, err
	case lockCmd:
		return NewAssetService(repos, d.Clock).Lock(ctx, c.Batch, c.IsLock, c.SrcMethod)
	case exchangeCmd:
		return NewSettlementService(tx, d.newRepos, d.Clock).Exchange(ctx, c.Matches)
	default:
		return nil, apperrors.Fault(fmt.Sprintf("unhandled command %T", cmd), nil)
	}
}

// Bootstrap seeds the genesis currencies. It is safe to run on every start.
func (d *dispatcher) Bootstrap(ctx context.Context) error {
	_, err := d.inTransaction(ctx, func(tx portsrepo.LedgerTx) (*domain.BatchResult, error) {
		return nil, NewCurrencyService(d.newRepos(tx), d.verifier, d.Clock).EnsureBuiltinCurrencies(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to seed builtin currencies: %w", err)
	}
	d.LogInfo(ctx, "Builtin currencies ready")
	return nil
}

func (d *dispatcher) inTransaction(ctx context.Context, fn func(tx portsrepo.LedgerTx) (*domain.BatchResult, error)) (*domain.BatchResult, error) {
	tx, err := d.store.Begin(ctx)
	if err != nil {
		return nil, apperrors.Fault("failed to begin transaction", err)
	}

	batch, err := fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			d.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Fault("failed to commit transaction", err)
	}
	return batch, nil
}

func resultFromError(err error) domain.Result {
	outcome := domain.OutcomeStorageFault
	switch apperrors.KindOf(err) {
	case apperrors.KindInputValidation:
		outcome = domain.OutcomeInputValidation
	case apperrors.KindBusinessRejection:
		outcome = domain.OutcomeBusinessRejection
	}
	return domain.Result{Outcome: outcome, Reason: err.Error(), Cause: err}
}
