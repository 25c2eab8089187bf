package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
	"github.com/SscSPs/exchange_ledger/internal/core/services"
	"github.com/SscSPs/exchange_ledger/internal/platform/identity"
	"github.com/SscSPs/exchange_ledger/internal/repositories/database/pebbledb"
	"github.com/SscSPs/exchange_ledger/internal/repositories/ledger"
	"github.com/SscSPs/exchange_ledger/internal/utils/clock"
)

// --- Mock IdentityVerifier ---
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, credential string, signature, payload []byte) (bool, error) {
	args := m.Called(ctx, credential, signature, payload)
	return args.Bool(0), args.Error(1)
}

// ledgerSuite runs the dispatcher against an in-memory ledger.
type ledgerSuite struct {
	suite.Suite
	ctx        context.Context
	store      portsrepo.LedgerStore
	verifier   *MockIdentityVerifier
	dispatcher portssvc.DispatcherSvc
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := pebbledb.OpenInMemory()
	s.Require().NoError(err)
	s.store = store
	s.verifier = new(MockIdentityVerifier)
	s.dispatcher = s.newDispatcher(store)
}

func (s *ledgerSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *ledgerSuite) newDispatcher(store portsrepo.LedgerStore) portssvc.DispatcherSvc {
	clk := clock.NewMonotonicFrom(func() time.Time { return time.Unix(1700000000, 0) })
	return services.NewDispatcher(store, ledger.NewRepositoryProvider, s.verifier, identity.RawDecoder{}, clk)
}

func (s *ledgerSuite) allowCreator(creator string) {
	s.verifier.On("Verify", mock.Anything, creator, mock.Anything, mock.Anything).Return(true, nil)
}

func (s *ledgerSuite) invoke(fn string, args ...string) domain.Result {
	return s.dispatcher.Dispatch(s.ctx, domain.Invocation{Function: fn, Args: args, Signature: []byte("sig")})
}

func (s *ledgerSuite) mustOK(fn string, args ...string) domain.Result {
	res := s.invoke(fn, args...)
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	return res
}

func (s *ledgerSuite) toJSON(v any) string {
	b, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(b)
}

// read runs fn against a throwaway transaction.
func (s *ledgerSuite) read(fn func(tx portsrepo.LedgerTx, repos portsrepo.RepositoryProvider)) {
	tx, err := s.store.Begin(s.ctx)
	s.Require().NoError(err)
	defer tx.Rollback(s.ctx)
	fn(tx, ledger.NewRepositoryProvider(tx))
}

// seedAsset writes a balance directly, bypassing the engine.
func (s *ledgerSuite) seedAsset(a domain.Asset) {
	tx, err := s.store.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(ledger.NewRepositoryProvider(tx).AssetRepo.InsertAsset(s.ctx, a))
	s.Require().NoError(tx.Commit(s.ctx))
}

func (s *ledgerSuite) currency(id string) *domain.Currency {
	var c *domain.Currency
	s.read(func(_ portsrepo.LedgerTx, repos portsrepo.RepositoryProvider) {
		var err error
		c, err = repos.CurrencyRepo.FindCurrencyByID(s.ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			return
		}
		s.Require().NoError(err)
	})
	return c
}

func (s *ledgerSuite) asset(owner, currency string) *domain.Asset {
	var a *domain.Asset
	s.read(func(_ portsrepo.LedgerTx, repos portsrepo.RepositoryProvider) {
		var err error
		a, err = repos.AssetRepo.FindAsset(s.ctx, owner, currency)
		if errors.Is(err, apperrors.ErrNotFound) {
			return
		}
		s.Require().NoError(err)
	})
	return a
}

func (s *ledgerSuite) assertBalance(owner, currency string, available, locked int64) {
	a := s.asset(owner, currency)
	s.Require().NotNil(a, "asset %s/%s", owner, currency)
	s.Equal(available, a.Available, "available %s/%s", owner, currency)
	s.Equal(locked, a.Locked, "locked %s/%s", owner, currency)
}

func (s *ledgerSuite) countRows(table portsrepo.Table, prefix ...string) int {
	key := make(portsrepo.Row, len(prefix))
	for i, p := range prefix {
		key[i] = portsrepo.Text(p)
	}
	var n int
	s.read(func(tx portsrepo.LedgerTx, _ portsrepo.RepositoryProvider) {
		rows, err := tx.Scan(s.ctx, table, key)
		s.Require().NoError(err)
		n = len(rows)
	})
	return n
}

// fund creates currency id and assigns the given balances.
func (s *ledgerSuite) fund(id string, balances map[string]int64) {
	var total int64
	assign := domain.Assignment{Currency: id}
	for owner, count := range balances {
		total += count
		assign.Assigns = append(assign.Assigns, domain.Distribution{Owner: owner, Count: count})
	}
	s.allowCreator("creator-" + id)
	s.mustOK(domain.FnCreateCurrency, id, itoa(total), "creator-"+id)
	s.mustOK(domain.FnAssignCurrency, s.toJSON(assign))
}

func (s *ledgerSuite) lock(owner, currency, orderID string, count int64) domain.Result {
	return s.invoke(domain.FnLock, s.toJSON([]domain.LockRequest{{Owner: owner, Currency: currency, OrderID: orderID, Count: count}}))
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
