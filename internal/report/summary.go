// Package report renders a completed backtest ledger as CSV reports and
// an aggregate summary.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/ledger"
)

// Row is one accumulation dimension in the summary sheet.
type Row struct {
	Dimension    string          `json:"dimension"`
	Equity       decimal.Decimal `json:"equity"`
	Amount       decimal.Decimal `json:"amount"`
	AverageValue decimal.Decimal `json:"average_value"`
}

// Summary is the aggregate read model of a finished run: the five
// accumulation dimensions plus the profit breakdown that separates what
// the strategies earned from what the schedule alone and the fund's own
// movement would have earned.
type Summary struct {
	Rows []Row `json:"rows"`

	StrategyProfit decimal.Decimal `json:"strategy_profit"`
	StrategyRate   decimal.Decimal `json:"strategy_rate"`

	RegularProfit decimal.Decimal `json:"regular_profit"`
	RegularRate   decimal.Decimal `json:"regular_rate"`

	FundChangeProfit decimal.Decimal `json:"fund_change_profit"`
	FundChangeRate   decimal.Decimal `json:"fund_change_rate"`
}

// NewSummary derives the summary from a settled record. A record with no
// settlements yields all-zero figures.
func NewSummary(record *ledger.ProfitRecord) Summary {
	s := Summary{
		Rows: []Row{
			{"buy_total", record.AccBuy.Equity, record.AccBuy.Amount, record.AccBuy.AverageValue()},
			{"sell_total", record.AccSell.Equity, record.AccSell.Amount, record.AccSell.AverageValue()},
			{"position", record.PositionEquity(), record.PositionAmount(), avgValue(record.PositionAmount(), record.PositionEquity())},
			{"total", record.TotalEquity(), record.TotalAmount(), avgValue(record.TotalAmount(), record.TotalEquity())},
			{"profit", record.TotalEquity(), record.TotalProfit(), avgValue(record.TotalProfit(), record.TotalEquity())},
		},
		StrategyProfit:   record.TotalProfit(),
		StrategyRate:     record.TotalProfitRate(),
		RegularProfit:    ledger.Amount(decimal.Zero),
		RegularRate:      ledger.Rate(decimal.Zero),
		FundChangeProfit: ledger.Amount(decimal.Zero),
		FundChangeRate:   ledger.Rate(decimal.Zero),
	}

	if len(record.Histories) == 0 || record.AccBuy.Amount.IsZero() {
		return s
	}

	firstValue := record.Histories[0].NetValue
	lastValue := record.Histories[len(record.Histories)-1].NetValue

	// Regular-only profit: hold every bought share to the end.
	s.RegularProfit = ledger.Amount(lastValue.Mul(record.AccBuy.Equity).Sub(record.AccBuy.Amount))
	s.RegularRate = ledger.Rate(s.RegularProfit.Div(record.AccBuy.Amount))

	// Fund change: the NAV move applied to every bought share.
	s.FundChangeProfit = ledger.Amount(lastValue.Sub(firstValue).Mul(record.AccBuy.Equity))
	s.FundChangeRate = ledger.Rate(s.FundChangeProfit.Div(record.AccBuy.Amount))

	return s
}

func avgValue(amount, equity decimal.Decimal) decimal.Decimal {
	if equity.IsZero() {
		return ledger.Value(decimal.Zero)
	}
	return ledger.Value(amount.Div(equity))
}
