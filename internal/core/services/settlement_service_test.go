package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	"github.com/SscSPs/exchange_ledger/internal/repositories/ledger"
)

type SettlementServiceTestSuite struct {
	ledgerSuite
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}

// X holds AAA and buys BBB from Y.
func (s *SettlementServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.fund("AAA", map[string]int64{"X": 1000})
	s.fund("BBB", map[string]int64{"Y": 500})
}

func order(uuid, account, src, des string, cost, desCount int64) domain.Order {
	return domain.Order{
		UUID:        uuid,
		Account:     account,
		SrcCurrency: src,
		SrcCount:    cost,
		DesCurrency: des,
		DesCount:    desCount,
		RawUUID:     uuid,
		FinalCost:   cost,
	}
}

// pair builds a match where X pays aaa for bbb.
func pair(buyUUID, sellUUID string, aaa, bbb int64) domain.Match {
	return domain.Match{
		BuyOrder:  order(buyUUID, "X", "AAA", "BBB", aaa, bbb),
		SellOrder: order(sellUUID, "Y", "BBB", "AAA", bbb, aaa),
	}
}

func (s *SettlementServiceTestSuite) exchange(matches ...domain.Match) domain.Result {
	return s.invoke(domain.FnExchange, s.toJSON(matches))
}

func (s *SettlementServiceTestSuite) TestSettlesPair() {
	s.lock("X", "AAA", "b1", 100)
	s.lock("Y", "BBB", "s1", 50)

	res := s.exchange(pair("b1", "s1", 100, 50))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Equal(domain.EventExchange, res.Batch.EventName)
	s.Equal([]string{"b1,s1"}, res.Batch.Success)
	s.Empty(res.Batch.Fail)

	s.assertBalance("X", "AAA", 900, 0)
	s.assertBalance("X", "BBB", 50, 0)
	s.assertBalance("Y", "BBB", 450, 0)
	s.assertBalance("Y", "AAA", 100, 0)
	s.Equal(1, s.countRows(ledger.TradeLogTable, "X"))
	s.Equal(1, s.countRows(ledger.TradeLogTable, "Y"))
	s.Equal(2, s.countRows(ledger.TradeLogIndexTable))
}

func (s *SettlementServiceTestSuite) TestReplayIsSkipped() {
	s.lock("X", "AAA", "b1", 200)
	s.lock("Y", "BBB", "s1", 100)
	s.Require().Equal(domain.OutcomeOK, s.exchange(pair("b1", "s1", 100, 50)).Outcome)

	res := s.exchange(pair("b1", "s1", 100, 50))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Empty(res.Batch.Success)
	s.Require().Len(res.Batch.Fail, 1)
	s.Equal("b1,s1", res.Batch.Fail[0].ID)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrAlreadySettled.Error())

	s.assertBalance("X", "AAA", 800, 100)
	s.assertBalance("X", "BBB", 50, 0)
	s.Equal(1, s.countRows(ledger.TradeLogTable, "X"))
	s.Equal(1, s.countRows(ledger.TradeLogTable, "Y"))
}

func (s *SettlementServiceTestSuite) TestSameOrderTwiceInOneBatch() {
	s.lock("X", "AAA", "b1", 200)
	s.lock("Y", "BBB", "s1", 100)

	res := s.exchange(pair("b1", "s1", 100, 50), pair("b1", "s1", 100, 50))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Equal([]string{"b1,s1"}, res.Batch.Success)
	s.Len(res.Batch.Fail, 1)
	s.assertBalance("X", "AAA", 800, 100)
}

func (s *SettlementServiceTestSuite) TestRejectedPairLeavesNoPartialEffect() {
	s.lock("X", "AAA", "b1", 100)
	// Y never locked BBB, so the sell side debit fails after the buy side applied.
	res := s.exchange(pair("b1", "s1", 100, 50))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Require().Len(res.Batch.Fail, 1)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrInsufficientBalance.Error())

	s.assertBalance("X", "AAA", 900, 100)
	s.Nil(s.asset("X", "BBB"))
	s.Nil(s.asset("Y", "AAA"))
	s.Equal(0, s.countRows(ledger.TradeLogIndexTable))
}

func (s *SettlementServiceTestSuite) TestCreditOverflowFailsPair() {
	s.seedAsset(domain.Asset{Owner: "X", Currency: "BBB", Available: math.MaxInt64 - 10})
	s.lock("X", "AAA", "b1", 100)
	s.lock("Y", "BBB", "s1", 50)

	res := s.exchange(pair("b1", "s1", 100, 50))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Empty(res.Batch.Success)
	s.Require().Len(res.Batch.Fail, 1)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrAmountOverflow.Error())

	s.assertBalance("X", "AAA", 900, 100)
	s.assertBalance("X", "BBB", math.MaxInt64-10, 0)
	s.assertBalance("Y", "BBB", 450, 50)
	s.Nil(s.asset("Y", "AAA"))
	s.Equal(0, s.countRows(ledger.TradeLogIndexTable))
}

func (s *SettlementServiceTestSuite) TestMissingAssetRowFailsPair() {
	s.lock("Y", "BBB", "s1", 50)
	m := pair("b1", "s1", 100, 50)
	m.BuyOrder.Account = "Nobody"

	res := s.exchange(m)
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Require().Len(res.Batch.Fail, 1)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrAssetNotFound.Error())
	s.assertBalance("Y", "BBB", 450, 50)
}

func (s *SettlementServiceTestSuite) TestBatchContinuesPastFailedPair() {
	s.lock("X", "AAA", "b1", 100)
	s.lock("Y", "BBB", "s1", 50)

	res := s.exchange(pair("b0", "s0", 500, 50), pair("b1", "s1", 100, 50))
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Equal([]string{"b1,s1"}, res.Batch.Success)
	s.Require().Len(res.Batch.Fail, 1)
	s.Equal("b0,s0", res.Batch.Fail[0].ID)
}

func (s *SettlementServiceTestSuite) TestCurrencyMismatchAbortsCall() {
	s.lock("X", "AAA", "b1", 100)
	s.lock("Y", "BBB", "s1", 50)

	bad := pair("b2", "s2", 10, 5)
	bad.SellOrder.DesCurrency = "CCC"

	res := s.exchange(pair("b1", "s1", 100, 50), bad)
	s.Equal(domain.OutcomeBusinessRejection, res.Outcome)
	s.ErrorIs(res.Cause, apperrors.ErrCurrencyMismatch)
	s.assertBalance("X", "AAA", 900, 100)
	s.Nil(s.asset("X", "BBB"))
	s.Equal(0, s.countRows(ledger.TradeLogIndexTable))
}

func (s *SettlementServiceTestSuite) TestResidualUnlockOnCompletingFill() {
	s.lock("X", "AAA", "p", 100)
	s.lock("Y", "BBB", "s", 40)

	first := pair("p-1", "s-1", 30, 15)
	first.BuyOrder.RawUUID, first.BuyOrder.IsBuyAll = "p", true
	first.SellOrder.RawUUID = "s"
	res := s.exchange(first)
	s.Require().Equal([]string{"p-1,s-1"}, res.Batch.Success, res.Reason)
	s.assertBalance("X", "AAA", 900, 70)

	last := pair("p", "s-2", 50, 25)
	last.BuyOrder.IsBuyAll = true
	last.SellOrder.RawUUID = "s"
	res = s.exchange(last)
	s.Require().Equal([]string{"p,s-2"}, res.Batch.Success, res.Reason)

	// 100 locked, 30 + 50 spent, 20 returned.
	s.assertBalance("X", "AAA", 920, 0)
	s.assertBalance("X", "BBB", 40, 0)
	s.assertBalance("Y", "BBB", 460, 0)
	s.assertBalance("Y", "AAA", 80, 0)
	s.Equal(2, s.countRows(ledger.LockLogTable, "X", "AAA", "p"), "lock and residual unlock")
	s.Equal(2, s.countRows(ledger.TradeLogTable, "X", "AAA", "BBB", "p"))
}

func (s *SettlementServiceTestSuite) TestResidualWithoutLockLogFailsPair() {
	s.lock("X", "AAA", "other", 100)
	s.lock("Y", "BBB", "s1", 50)

	m := pair("b1", "s1", 100, 50)
	m.BuyOrder.IsBuyAll = true

	res := s.exchange(m)
	s.Require().Equal(domain.OutcomeOK, res.Outcome, res.Reason)
	s.Require().Len(res.Batch.Fail, 1)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrResidualUnresolvable.Error())
	s.assertBalance("X", "AAA", 900, 100)
	s.assertBalance("Y", "BBB", 450, 50)
}

func (s *SettlementServiceTestSuite) TestNegativeResidualFailsPair() {
	s.lock("X", "AAA", "b1", 100)
	s.lock("Y", "BBB", "s1", 50)

	m := pair("b1", "s1", 100, 50)
	m.BuyOrder.IsBuyAll = true
	m.BuyOrder.FinalCost = 120

	res := s.exchange(m)
	s.Require().Len(res.Batch.Fail, 1, res.Reason)
	s.Contains(res.Batch.Fail[0].Info, apperrors.ErrResidualUnresolvable.Error())
	s.assertBalance("X", "AAA", 900, 100)
}

func (s *SettlementServiceTestSuite) TestExchangeInputValidation() {
	selfTrade := pair("b1", "b1", 100, 50)
	zeroCost := pair("b1", "s1", 0, 50)
	sameCurrency := pair("b1", "s1", 100, 50)
	sameCurrency.BuyOrder.DesCurrency = "AAA"

	for _, arg := range []string{
		s.toJSON([]domain.Match{selfTrade}),
		s.toJSON([]domain.Match{zeroCost}),
		s.toJSON([]domain.Match{sameCurrency}),
		`[{"buyOrder":{}}]`,
		`nope`,
	} {
		res := s.invoke(domain.FnExchange, arg)
		s.Equal(domain.OutcomeInputValidation, res.Outcome, arg)
	}
}
