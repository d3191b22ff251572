package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
)

// AddByValueIncrease buys a fixed amount on days whose single-day NAV
// change is at or below a threshold, typically negative to buy dips.
type AddByValueIncrease struct {
	IncreaseRate decimal.Decimal
	AddAmount    decimal.Decimal
}

func newAddByValueIncrease(args []float64) (Strategy, error) {
	if err := wantArgs(args, 2); err != nil {
		return nil, err
	}
	amount := decimal.NewFromFloat(args[1])
	if amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("add amount %s must be positive", amount)
	}
	return &AddByValueIncrease{
		IncreaseRate: decimal.NewFromFloat(args[0]),
		AddAmount:    amount,
	}, nil
}

func (s *AddByValueIncrease) Name() string { return "AddByValueIncrease" }

func (s *AddByValueIncrease) DoStrategy(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	if nav.Rate().GreaterThan(s.IncreaseRate) {
		return nil
	}
	_, err := record.Buy(nav.Date, nav.Value, s.AddAmount)
	return err
}
