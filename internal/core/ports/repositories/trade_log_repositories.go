package repositories

import (
	"context"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
)

// TradeLogReader defines read operations on the trade journal
type TradeLogReader interface {
	// IsSettled reports whether an order UUID already has an index entry.
	IsSettled(ctx context.Context, orderUUID string) (bool, error)

	// ListLegs returns every executed leg of owner's parent order rawOrderID
	// trading srcCurrency for desCurrency.
	ListLegs(ctx context.Context, owner, srcCurrency, desCurrency, rawOrderID string) ([]domain.TradeLeg, error)
}

// TradeLogWriter defines write operations on the trade journal
type TradeLogWriter interface {
	// AppendLeg records an executed leg and its idempotency index entry.
	AppendLeg(ctx context.Context, leg domain.TradeLeg) error
}

// TradeLogRepositoryFacade combines all trade journal interfaces
type TradeLogRepositoryFacade interface {
	TradeLogReader
	TradeLogWriter
}
