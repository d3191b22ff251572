package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmbiguousSellQuantity is returned when a sell specifies neither
	// or both of equity and amount.
	ErrAmbiguousSellQuantity = errors.New("ledger: ambiguous or missing sell quantity")

	// ErrInsufficientPosition is returned when a sell requests more
	// equity than currently held.
	ErrInsufficientPosition = errors.New("ledger: sell exceeds current position")
)

// PositionSnapshot freezes the position state at one day's settlement.
type PositionSnapshot struct {
	Date     string
	NetValue decimal.Decimal // NAV at settlement
	Equity   decimal.Decimal // shares held
	Cost     decimal.Decimal // cost basis of the current position
}

// Amount is the market value of the position, equity * net_value.
func (s PositionSnapshot) Amount() decimal.Decimal {
	return Amount(s.Equity.Mul(s.NetValue))
}

// AvgValue is the per-share cost, cost/equity, or zero with no equity.
func (s PositionSnapshot) AvgValue() decimal.Decimal {
	if s.Equity.IsZero() {
		return Value(decimal.Zero)
	}
	return Value(s.Cost.Div(s.Equity))
}

// Profit is the unrealized position profit, amount - cost.
func (s PositionSnapshot) Profit() decimal.Decimal {
	return Amount(s.Amount().Sub(s.Cost))
}

// ProfitRate is profit/cost, or zero when the cost basis is zero.
func (s PositionSnapshot) ProfitRate() decimal.Decimal {
	if s.Cost.IsZero() {
		return Rate(decimal.Zero)
	}
	return Rate(s.Profit().Div(s.Cost))
}

// SellQuantity selects how a sell is sized: by shares or by money.
// Exactly one side must be set.
type SellQuantity struct {
	Equity *decimal.Decimal
	Amount *decimal.Decimal
}

// SellByEquity sizes a sell in shares.
func SellByEquity(equity decimal.Decimal) SellQuantity {
	return SellQuantity{Equity: &equity}
}

// SellByAmount sizes a sell in money.
func SellByAmount(amount decimal.Decimal) SellQuantity {
	return SellQuantity{Amount: &amount}
}

// ProfitRecord is the ledger of a single backtest run: cumulative buys,
// cumulative sells, the daily settlement history, and the live share
// count. It is mutated only through Buy, Sell and Settle, and belongs to
// exactly one run.
type ProfitRecord struct {
	AccBuy  *Accumulation
	AccSell *Accumulation

	// Histories holds one snapshot per settled trading day, ascending.
	Histories []PositionSnapshot

	positionEquity decimal.Decimal
}

// NewProfitRecord returns an empty record.
func NewProfitRecord() *ProfitRecord {
	return &ProfitRecord{
		AccBuy:         NewAccumulation(),
		AccSell:        NewAccumulation(),
		positionEquity: Equity(decimal.Zero),
	}
}

// PositionEquity is the number of shares currently held. It always
// equals AccBuy.Equity - AccSell.Equity.
func (r *ProfitRecord) PositionEquity() decimal.Decimal {
	return r.positionEquity
}

// PositionCost is the cost basis of the current position,
// AccBuy.Amount - AccSell.Amount.
func (r *ProfitRecord) PositionCost() decimal.Decimal {
	return Amount(r.AccBuy.Amount.Sub(r.AccSell.Amount))
}

// PositionAmount is the market value at the last settlement, or zero
// before the first settlement.
func (r *ProfitRecord) PositionAmount() decimal.Decimal {
	if len(r.Histories) == 0 {
		return Amount(decimal.Zero)
	}
	return r.Histories[len(r.Histories)-1].Amount()
}

// PositionProfit is the unrealized profit at the last settlement.
func (r *ProfitRecord) PositionProfit() decimal.Decimal {
	if len(r.Histories) == 0 {
		return Amount(decimal.Zero)
	}
	return r.Histories[len(r.Histories)-1].Profit()
}

// PositionProfitRate is the unrealized profit rate at the last settlement.
func (r *ProfitRecord) PositionProfitRate() decimal.Decimal {
	if len(r.Histories) == 0 {
		return Rate(decimal.Zero)
	}
	return r.Histories[len(r.Histories)-1].ProfitRate()
}

// TotalAmount is position value plus everything recovered by sells.
func (r *ProfitRecord) TotalAmount() decimal.Decimal {
	return Amount(r.PositionAmount().Add(r.AccSell.Amount))
}

// TotalEquity is shares held plus shares sold.
func (r *ProfitRecord) TotalEquity() decimal.Decimal {
	return Equity(r.positionEquity.Add(r.AccSell.Equity))
}

// TotalCost is all money ever spent on buys.
func (r *ProfitRecord) TotalCost() decimal.Decimal {
	return r.AccBuy.Amount
}

// TotalProfit is TotalAmount - TotalCost.
func (r *ProfitRecord) TotalProfit() decimal.Decimal {
	return Amount(r.TotalAmount().Sub(r.TotalCost()))
}

// TotalProfitRate is TotalProfit/TotalCost, or zero with no buys.
func (r *ProfitRecord) TotalProfitRate() decimal.Decimal {
	if r.TotalCost().IsZero() {
		return Rate(decimal.Zero)
	}
	return Rate(r.TotalProfit().Div(r.TotalCost()))
}

// Buy spends amount at netValue, crediting amount/netValue shares.
// The record is not modified when an error is returned.
func (r *ProfitRecord) Buy(date string, netValue, amount decimal.Decimal) (Delta, error) {
	if netValue.IsNegative() || netValue.IsZero() {
		return Delta{}, fmt.Errorf("ledger: buy on %s: net value %s must be positive", date, netValue)
	}
	if amount.IsNegative() || amount.IsZero() {
		return Delta{}, fmt.Errorf("ledger: buy on %s: amount %s must be positive", date, amount)
	}

	delta := Delta{
		Date:     date,
		Amount:   Amount(amount),
		Equity:   Equity(amount.Div(netValue)),
		NetValue: Value(netValue),
	}
	r.AccBuy.Acc(delta)
	r.positionEquity = r.positionEquity.Add(delta.Equity)
	return delta, nil
}

// Sell redeems part of the position at netValue. The quantity is given
// either in shares or in money; the other side is derived from netValue.
// Selling more shares than held fails with ErrInsufficientPosition, and
// the record is not modified when an error is returned.
func (r *ProfitRecord) Sell(date string, netValue decimal.Decimal, q SellQuantity) (Delta, error) {
	if (q.Equity == nil) == (q.Amount == nil) {
		return Delta{}, ErrAmbiguousSellQuantity
	}
	if netValue.IsNegative() || netValue.IsZero() {
		return Delta{}, fmt.Errorf("ledger: sell on %s: net value %s must be positive", date, netValue)
	}

	var equity, amount decimal.Decimal
	if q.Equity != nil {
		equity = Equity(*q.Equity)
		amount = Amount(equity.Mul(netValue))
	} else {
		amount = Amount(*q.Amount)
		equity = Equity(amount.Div(netValue))
	}
	if equity.IsNegative() || equity.IsZero() {
		return Delta{}, fmt.Errorf("ledger: sell on %s: equity %s must be positive", date, equity)
	}
	if equity.GreaterThan(r.positionEquity) {
		return Delta{}, fmt.Errorf("ledger: sell on %s: %s > held %s: %w",
			date, equity, r.positionEquity, ErrInsufficientPosition)
	}

	delta := Delta{
		Date:     date,
		Amount:   amount,
		Equity:   equity,
		NetValue: Value(netValue),
	}
	r.AccSell.Acc(delta)
	r.positionEquity = r.positionEquity.Sub(delta.Equity)
	return delta, nil
}

// Settle freezes the day's final position into a snapshot. It must be
// called exactly once per trading day, after all buys and sells.
func (r *ProfitRecord) Settle(date string, netValue decimal.Decimal) PositionSnapshot {
	snap := PositionSnapshot{
		Date:     date,
		NetValue: Value(netValue),
		Equity:   r.positionEquity,
		Cost:     r.PositionCost(),
	}
	r.Histories = append(r.Histories, snap)
	return snap
}

// MaxValueInDays is the highest settlement NAV over the last days
// snapshots, or zero with days <= 0 or no history. Strategies run before
// Settle, so the window never includes the current day.
func (r *ProfitRecord) MaxValueInDays(days int) decimal.Decimal {
	if days <= 0 || len(r.Histories) == 0 {
		return Value(decimal.Zero)
	}
	start := len(r.Histories) - days
	if start < 0 {
		start = 0
	}
	maxValue := r.Histories[start].NetValue
	for _, snap := range r.Histories[start+1:] {
		if snap.NetValue.GreaterThan(maxValue) {
			maxValue = snap.NetValue
		}
	}
	return maxValue
}

// ValueDrawbackRate is the fractional decline of currValue from the
// recent peak: (max - curr) / max. Positive means below the peak. Zero
// when no peak is available.
func (r *ProfitRecord) ValueDrawbackRate(currValue decimal.Decimal, days int) decimal.Decimal {
	maxValue := r.MaxValueInDays(days)
	if maxValue.IsZero() {
		return Rate(decimal.Zero)
	}
	return Rate(maxValue.Sub(currValue).Div(maxValue))
}
