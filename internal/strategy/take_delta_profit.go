package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
)

// TakeDeltaProfit skims the unrealized profit every time the profit rate
// crosses one more ProfitRate band above the last-triggered threshold.
// The ratchet advances by exactly one band per trigger, so it is stateful
// across days but deterministic for a given NAV series.
type TakeDeltaProfit struct {
	ProfitRate decimal.Decimal

	prefixRate decimal.Decimal
}

func newTakeDeltaProfit(args []float64) (Strategy, error) {
	if err := wantArgs(args, 1); err != nil {
		return nil, err
	}
	rate := decimal.NewFromFloat(args[0])
	if rate.IsNegative() || rate.IsZero() {
		return nil, fmt.Errorf("profit rate %s must be positive", rate)
	}
	return &TakeDeltaProfit{ProfitRate: rate}, nil
}

func (s *TakeDeltaProfit) Name() string { return "TakeDeltaProfit" }

func (s *TakeDeltaProfit) DoStrategy(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	if record.PositionProfitRate().LessThan(s.prefixRate.Add(s.ProfitRate)) {
		return nil
	}
	profit := record.PositionProfit()
	if profit.IsNegative() || profit.IsZero() {
		return nil
	}
	if _, err := record.Sell(nav.Date, nav.Value, ledger.SellByAmount(profit)); err != nil {
		return err
	}
	s.prefixRate = s.prefixRate.Add(s.ProfitRate)
	return nil
}
