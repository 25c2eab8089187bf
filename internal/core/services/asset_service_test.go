package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	"github.com/SscSPs/exchange_ledger/internal/repositories/ledger"
)

type AssetServiceTestSuite struct {
	ledgerSuite
}

func TestAssetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}

func (s *AssetServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.fund("GLD", map[string]int64{"X": 400})
}

func (s *AssetServiceTestSuite) TestLockAppliesOnce() {
	res := s.lock("X", "GLD", "order1", 100)
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Equal([]string{"order1"}, res.Batch.Success)
	s.Empty(res.Batch.Fail)
	s.Equal(domain.EventLock, res.Batch.EventName)
	s.assertBalance("X", "GLD", 300, 100)
	s.Equal(1, s.countRows(ledger.LockLogTable, "X", "GLD", "order1"))

	res = s.lock("X", "GLD", "order1", 100)
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Empty(res.Batch.Success)
	s.Require().Len(res.Batch.Fail, 1)
	s.Equal("order1", res.Batch.Fail[0].ID)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrAlreadyApplied.Error())
	s.assertBalance("X", "GLD", 300, 100)
	s.Equal(1, s.countRows(ledger.LockLogTable, "X", "GLD", "order1"))
}

func (s *AssetServiceTestSuite) TestLockUnlockConserves() {
	s.lock("X", "GLD", "order1", 150)
	res := s.invoke(domain.FnUnlock, s.toJSON([]domain.LockRequest{{Owner: "X", Currency: "GLD", OrderID: "order1", Count: 150}}), "cancelOrder")
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Equal(domain.EventUnlock, res.Batch.EventName)
	s.Equal("cancelOrder", res.Batch.SrcMethod)
	s.Equal([]string{"order1"}, res.Batch.Success)

	a := s.asset("X", "GLD")
	s.Equal(int64(400), a.Available+a.Locked)
	s.assertBalance("X", "GLD", 400, 0)
	s.Equal(2, s.countRows(ledger.LockLogTable, "X", "GLD", "order1"))
}

func (s *AssetServiceTestSuite) TestBatchContinuesPastRejections() {
	batch := []domain.LockRequest{
		{Owner: "X", Currency: "GLD", OrderID: "big", Count: 1000},
		{Owner: "X", Currency: "GLD", OrderID: "ok", Count: 50},
		{Owner: "W", Currency: "GLD", OrderID: "nobody", Count: 1},
		{Owner: "X", Currency: "GLD", OrderID: "ok2", Count: 350},
	}
	res := s.invoke(domain.FnLock, s.toJSON(batch))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Equal([]string{"ok", "ok2"}, res.Batch.Success)
	s.Require().Len(res.Batch.Fail, 2)
	s.Equal("big", res.Batch.Fail[0].ID)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrInsufficientBalance.Error())
	s.Equal("nobody", res.Batch.Fail[1].ID)
	s.Contains(res.Batch.Fail[1].Info, apperrors.ErrAssetNotFound.Error())
	s.assertBalance("X", "GLD", 0, 400)
}

func (s *AssetServiceTestSuite) TestUnlockMoreThanLocked() {
	s.lock("X", "GLD", "order1", 100)
	res := s.invoke(domain.FnUnlock, s.toJSON([]domain.LockRequest{{Owner: "X", Currency: "GLD", OrderID: "order1", Count: 101}}))
	s.Require().Equal(domain.OutcomeOK, res.Outcome)
	s.Require().Len(res.Batch.Fail, 1)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrInsufficientBalance.Error())
	s.assertBalance("X", "GLD", 300, 100)
}

func (s *AssetServiceTestSuite) TestLockRefusesToOverflowLocked() {
	s.seedAsset(domain.Asset{Owner: "Z", Currency: "GLD", Available: 5, Locked: math.MaxInt64})

	res := s.lock("Z", "GLD", "o1", 5)
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Require().Len(res.Batch.Fail, 1)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrInsufficientBalance.Error())
	s.assertBalance("Z", "GLD", 5, math.MaxInt64)
}

func (s *AssetServiceTestSuite) TestLockInputValidation() {
	cases := [][]string{
		{`[{"owner":"X","currency":"GLD","orderId":"o","count":0}]`},
		{`[{"owner":"X","currency":"GLD","orderId":"o","count":-3}]`},
		{`[{"owner":"X","currency":"GLD","count":3}]`},
		{`{"owner":"X"}`},
		{`[]`, "src", "extra"},
		{},
	}
	for _, args := range cases {
		res := s.invoke(domain.FnLock, args...)
		s.Equal(domain.OutcomeInputValidation, res.Outcome, "args %v", args)
	}
	s.assertBalance("X", "GLD", 400, 0)
}

func (s *AssetServiceTestSuite) TestInvalidItemRejectsWholeBatch() {
	batch := `[{"owner":"X","currency":"GLD","orderId":"a","count":10},{"owner":"X","currency":"GLD","orderId":"b","count":0}]`
	res := s.invoke(domain.FnLock, batch)
	s.Equal(domain.OutcomeInputValidation, res.Outcome)
	s.assertBalance("X", "GLD", 400, 0)
}
