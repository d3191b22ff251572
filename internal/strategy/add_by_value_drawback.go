package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
)

// AddByValueDrawback buys a fixed amount once the NAV has fallen from
// its recent peak by the configured fraction. Like StopByValueDrawback
// the threshold is configured negative and compared by magnitude.
type AddByValueDrawback struct {
	DrawbackDays int
	DrawbackRate decimal.Decimal // negative
	AddAmount    decimal.Decimal
}

func newAddByValueDrawback(args []float64) (Strategy, error) {
	if err := wantArgs(args, 3); err != nil {
		return nil, err
	}
	days := int(args[0])
	rate := decimal.NewFromFloat(args[1])
	amount := decimal.NewFromFloat(args[2])
	if days < 1 {
		return nil, fmt.Errorf("drawback days %d must be >= 1", days)
	}
	if !rate.IsNegative() {
		return nil, fmt.Errorf("drawback rate %s must be negative", rate)
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("add amount %s must be positive", amount)
	}
	return &AddByValueDrawback{DrawbackDays: days, DrawbackRate: rate, AddAmount: amount}, nil
}

func (s *AddByValueDrawback) Name() string { return "AddByValueDrawback" }

func (s *AddByValueDrawback) DoStrategy(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	drawback := record.ValueDrawbackRate(nav.Value, s.DrawbackDays)
	if drawback.LessThan(s.DrawbackRate.Neg()) {
		return nil
	}
	_, err := record.Buy(nav.Date, nav.Value, s.AddAmount)
	return err
}
