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

type tradeLogRepository struct {
	tx portsrepo.LedgerTx
}

func newTradeLogRepository(tx portsrepo.LedgerTx) *tradeLogRepository {
	return &tradeLogRepository{tx: tx}
}

var _ portsrepo.TradeLogRepositoryFacade = (*tradeLogRepository)(nil)

func (r *tradeLogRepository) IsSettled(ctx context.Context, orderUUID string) (bool, error) {
	_, err := r.tx.Get(ctx, TradeLogIndexTable, portsrepo.Row{portsrepo.Text(orderUUID)})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check trade index for %s: %w", orderUUID, err)
}

// ListLegs scans the legs of one parent order. The scan is bounded by the
// parent's fill count.
func (r *tradeLogRepository) ListLegs(ctx context.Context, owner, srcCurrency, desCurrency, rawOrderID string) ([]domain.TradeLeg, error) {
	prefix := portsrepo.Row{
		portsrepo.Text(owner),
		portsrepo.Text(srcCurrency),
		portsrepo.Text(desCurrency),
		portsrepo.Text(rawOrderID),
	}
	rows, err := r.tx.Scan(ctx, TradeLogTable, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan trade legs of %s: %w", rawOrderID, err)
	}
	legs := make([]domain.TradeLeg, 0, len(rows))
	for _, row := range rows {
		leg, err := mapping.ToDomainTradeLeg(row)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// AppendLeg writes the journal row and its index entry.
func (r *tradeLogRepository) AppendLeg(ctx context.Context, leg domain.TradeLeg) error {
	row, err := mapping.ToRowTradeLeg(leg)
	if err != nil {
		return err
	}
	if err := r.tx.Insert(ctx, TradeLogTable, row); err != nil {
		return fmt.Errorf("failed to append trade leg %s: %w", leg.UUID, err)
	}
	idx, err := mapping.ToRowTradeIndex(leg)
	if err != nil {
		return err
	}
	if err := r.tx.Insert(ctx, TradeLogIndexTable, idx); err != nil {
		return fmt.Errorf("failed to index trade leg %s: %w", leg.UUID, err)
	}
	return nil
}
