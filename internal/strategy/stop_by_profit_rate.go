package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
)

// StopByProfitRate liquidates the whole position once the unrealized
// profit rate reaches a threshold.
type StopByProfitRate struct {
	ProfitRate decimal.Decimal
}

func newStopByProfitRate(args []float64) (Strategy, error) {
	if err := wantArgs(args, 1); err != nil {
		return nil, err
	}
	rate := decimal.NewFromFloat(args[0])
	if rate.IsNegative() || rate.IsZero() {
		return nil, fmt.Errorf("profit rate %s must be positive", rate)
	}
	return &StopByProfitRate{ProfitRate: rate}, nil
}

func (s *StopByProfitRate) Name() string { return "StopByProfitRate" }

func (s *StopByProfitRate) DoStrategy(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	if record.PositionEquity().IsZero() {
		return nil
	}
	if record.PositionProfitRate().LessThan(s.ProfitRate) {
		return nil
	}
	_, err := record.Sell(nav.Date, nav.Value, ledger.SellByEquity(record.PositionEquity()))
	return err
}
