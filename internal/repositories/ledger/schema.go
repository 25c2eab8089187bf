// Package ledger implements the typed repositories over a LedgerTx.
package ledger

import portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"

// Ledger tables. Key columns come first in every row.
var (
	CurrencyTable      = portsrepo.Table{Name: "Currency", KeyColumns: 1, Columns: 5}
	ReleaseLogTable    = portsrepo.Table{Name: "CurrencyReleaseLog", KeyColumns: 2, Columns: 3}
	AssignLogTable     = portsrepo.Table{Name: "CurrencyAssignLog", KeyColumns: 3, Columns: 4}
	AssetTable         = portsrepo.Table{Name: "Assets", KeyColumns: 2, Columns: 4}
	LockLogTable       = portsrepo.Table{Name: "AssetLockLog", KeyColumns: 4, Columns: 6}
	TradeLogTable      = portsrepo.Table{Name: "TxLog", KeyColumns: 5, Columns: 6}
	TradeLogIndexTable = portsrepo.Table{Name: "TxLogIndex", KeyColumns: 1, Columns: 2}
)

// NewRepositoryProvider binds every repository to tx.
func NewRepositoryProvider(tx portsrepo.LedgerTx) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: newCurrencyRepository(tx),
		AssetRepo:    newAssetRepository(tx),
		LockLogRepo:  newLockLogRepository(tx),
		TradeLogRepo: newTradeLogRepository(tx),
	}
}
