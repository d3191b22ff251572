package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
)

// StopByValueDrawback liquidates the whole position once the NAV has
// fallen from its recent peak by the configured fraction. The threshold
// is configured negative (e.g. -0.05 stops on a 5% decline) and compared
// by magnitude against the observed drawback.
type StopByValueDrawback struct {
	DrawbackDays int
	DrawbackRate decimal.Decimal // negative
}

func newStopByValueDrawback(args []float64) (Strategy, error) {
	if err := wantArgs(args, 2); err != nil {
		return nil, err
	}
	days := int(args[0])
	rate := decimal.NewFromFloat(args[1])
	if days < 1 {
		return nil, fmt.Errorf("drawback days %d must be >= 1", days)
	}
	if !rate.IsNegative() {
		return nil, fmt.Errorf("drawback rate %s must be negative", rate)
	}
	return &StopByValueDrawback{DrawbackDays: days, DrawbackRate: rate}, nil
}

func (s *StopByValueDrawback) Name() string { return "StopByValueDrawback" }

func (s *StopByValueDrawback) DoStrategy(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	if record.PositionEquity().IsZero() {
		return nil
	}
	drawback := record.ValueDrawbackRate(nav.Value, s.DrawbackDays)
	if drawback.LessThan(s.DrawbackRate.Neg()) {
		return nil
	}
	_, err := record.Sell(nav.Date, nav.Value, ledger.SellByEquity(record.PositionEquity()))
	return err
}
