package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAccumulation_Acc(t *testing.T) {
	acc := NewAccumulation()

	acc.Acc(Delta{Date: "2021-01-04", Amount: d("1000.00"), Equity: d("1000.000"), NetValue: d("1.0000")})
	acc.Acc(Delta{Date: "2021-01-05", Amount: d("100.00"), Equity: d("90.909"), NetValue: d("1.1000")})

	assert.Equal(t, "1100.00", acc.Amount.StringFixed(2))
	assert.Equal(t, "1090.909", acc.Equity.StringFixed(3))
	assert.Len(t, acc.Histories, 2)
	assert.Equal(t, "2021-01-04", acc.Histories[0].Date)
}

// Running totals must equal the sum of the history at every point.
func TestAccumulation_TotalsMatchHistory(t *testing.T) {
	acc := NewAccumulation()
	deltas := []Delta{
		{Date: "2021-01-04", Amount: d("500.00"), Equity: d("250.000")},
		{Date: "2021-01-05", Amount: d("33.33"), Equity: d("16.665")},
		{Date: "2021-01-06", Amount: d("-100.00"), Equity: d("-50.000")},
	}

	for _, delta := range deltas {
		acc.Acc(delta)

		sumAmount, sumEquity := decimal.Zero, decimal.Zero
		for _, h := range acc.Histories {
			sumAmount = sumAmount.Add(h.Amount)
			sumEquity = sumEquity.Add(h.Equity)
		}
		assert.True(t, acc.Amount.Equal(sumAmount))
		assert.True(t, acc.Equity.Equal(sumEquity))
	}
}

func TestAccumulation_AverageValue(t *testing.T) {
	acc := NewAccumulation()
	assert.Equal(t, "0.0000", acc.AverageValue().StringFixed(4))

	acc.Acc(Delta{Date: "2021-01-04", Amount: d("1000.00"), Equity: d("800.000")})
	assert.Equal(t, "1.2500", acc.AverageValue().StringFixed(4))
}
