package repositories

// RepositoryProvider holds the typed repositories bound to one LedgerTx.
// Services receive it per invocation so that every read-modify-write of a
// call shares the same transaction.
type RepositoryProvider struct {
	CurrencyRepo CurrencyRepositoryFacade
	AssetRepo    AssetRepositoryFacade
	LockLogRepo  LockLogRepositoryFacade
	TradeLogRepo TradeLogRepositoryFacade
}

// RepositoryFactory binds repositories to a transaction.
type RepositoryFactory func(tx LedgerTx) RepositoryProvider
