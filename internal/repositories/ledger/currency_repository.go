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

type currencyRepository struct {
	tx portsrepo.LedgerTx
}

func newCurrencyRepository(tx portsrepo.LedgerTx) *currencyRepository {
	return &currencyRepository{tx: tx}
}

var _ portsrepo.CurrencyRepositoryFacade = (*currencyRepository)(nil)

// FindCurrencyByID retrieves a currency by its id.
func (r *currencyRepository) FindCurrencyByID(ctx context.Context, id string) (*domain.Currency, error) {
	row, err := r.tx.Get(ctx, CurrencyTable, portsrepo.Row{portsrepo.Text(id)})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get currency %s: %w", id, err)
	}
	c, err := mapping.ToDomainCurrency(row)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *currencyRepository) InsertCurrency(ctx context.Context, currency domain.Currency) error {
	if err := r.tx.Insert(ctx, CurrencyTable, mapping.ToRowCurrency(currency)); err != nil {
		return fmt.Errorf("failed to insert currency %s: %w", currency.ID, err)
	}
	return nil
}

func (r *currencyRepository) ReplaceCurrency(ctx context.Context, currency domain.Currency) error {
	if err := r.tx.Replace(ctx, CurrencyTable, mapping.ToRowCurrency(currency)); err != nil {
		return fmt.Errorf("failed to replace currency %s: %w", currency.ID, err)
	}
	return nil
}

func (r *currencyRepository) AppendReleaseLog(ctx context.Context, log domain.ReleaseLog) error {
	if err := r.tx.Insert(ctx, ReleaseLogTable, mapping.ToRowReleaseLog(log)); err != nil {
		return fmt.Errorf("failed to append release log for %s: %w", log.Currency, err)
	}
	return nil
}

func (r *currencyRepository) AppendAssignLog(ctx context.Context, log domain.AssignLog) error {
	if err := r.tx.Insert(ctx, AssignLogTable, mapping.ToRowAssignLog(log)); err != nil {
		return fmt.Errorf("failed to append assign log for %s/%s: %w", log.Currency, log.Owner, err)
	}
	return nil
}
