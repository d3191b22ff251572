package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Delta is one ledger event: a single buy or sell, already quantized.
// A Delta is owned by exactly one Accumulation and never mutated.
type Delta struct {
	Date     string
	Amount   decimal.Decimal
	Equity   decimal.Decimal
	NetValue decimal.Decimal // NAV price at the event
}

func (d Delta) String() string {
	return fmt.Sprintf("<Delta: %s, amount=%s, equity=%s, net_value=%s>",
		d.Date, d.Amount, d.Equity, d.NetValue)
}

// Accumulation keeps running (amount, equity) totals together with the
// ordered event history that produced them. Insertion order is
// chronological; the totals always equal the sum of the history.
type Accumulation struct {
	Amount    decimal.Decimal
	Equity    decimal.Decimal
	Histories []Delta
}

// NewAccumulation returns an empty accumulation.
func NewAccumulation() *Accumulation {
	return &Accumulation{
		Amount: Amount(decimal.Zero),
		Equity: Equity(decimal.Zero),
	}
}

// Acc adds one event to the running totals and appends it to the history.
func (a *Accumulation) Acc(delta Delta) {
	a.Amount = a.Amount.Add(delta.Amount)
	a.Equity = a.Equity.Add(delta.Equity)
	a.Histories = append(a.Histories, delta)
}

// AverageValue is the equity-weighted average price, amount/equity,
// or zero when no equity has accumulated.
func (a *Accumulation) AverageValue() decimal.Decimal {
	if a.Equity.IsZero() {
		return Value(decimal.Zero)
	}
	return Value(a.Amount.Div(a.Equity))
}
