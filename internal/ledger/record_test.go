package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitRecord_Buy(t *testing.T) {
	r := NewProfitRecord()

	delta, err := r.Buy("2021-01-04", d("1.1"), d("100"))
	require.NoError(t, err)

	assert.Equal(t, "100.00", delta.Amount.StringFixed(2))
	assert.Equal(t, "90.909", delta.Equity.StringFixed(3))
	assert.Equal(t, "1.1000", delta.NetValue.StringFixed(4))
	assert.Equal(t, "90.909", r.PositionEquity().StringFixed(3))
	assert.Equal(t, "100.00", r.AccBuy.Amount.StringFixed(2))
}

func TestProfitRecord_BuyRejectsBadInput(t *testing.T) {
	r := NewProfitRecord()

	_, err := r.Buy("2021-01-04", decimal.Zero, d("100"))
	assert.Error(t, err)

	_, err = r.Buy("2021-01-04", d("1.0"), d("-100"))
	assert.Error(t, err)

	// Failed buys leave no partial state.
	assert.True(t, r.PositionEquity().IsZero())
	assert.Empty(t, r.AccBuy.Histories)
}

func TestProfitRecord_SellByEquity(t *testing.T) {
	r := NewProfitRecord()
	_, err := r.Buy("2021-01-04", d("1.0"), d("1000"))
	require.NoError(t, err)

	delta, err := r.Sell("2021-01-05", d("1.2"), SellByEquity(d("500")))
	require.NoError(t, err)

	assert.Equal(t, "500.000", delta.Equity.StringFixed(3))
	assert.Equal(t, "600.00", delta.Amount.StringFixed(2))
	assert.Equal(t, "500.000", r.PositionEquity().StringFixed(3))
	// position identity: held == bought - sold
	assert.True(t, r.PositionEquity().Equal(r.AccBuy.Equity.Sub(r.AccSell.Equity)))
}

func TestProfitRecord_SellByAmount(t *testing.T) {
	r := NewProfitRecord()
	_, err := r.Buy("2021-01-04", d("1.0"), d("1000"))
	require.NoError(t, err)

	delta, err := r.Sell("2021-01-05", d("2.0"), SellByAmount(d("500")))
	require.NoError(t, err)

	assert.Equal(t, "500.00", delta.Amount.StringFixed(2))
	assert.Equal(t, "250.000", delta.Equity.StringFixed(3))
	assert.Equal(t, "750.000", r.PositionEquity().StringFixed(3))
}

func TestProfitRecord_SellQuantityValidation(t *testing.T) {
	r := NewProfitRecord()
	_, err := r.Buy("2021-01-04", d("1.0"), d("1000"))
	require.NoError(t, err)

	_, err = r.Sell("2021-01-05", d("1.0"), SellQuantity{})
	assert.ErrorIs(t, err, ErrAmbiguousSellQuantity)

	e, a := d("10"), d("10")
	_, err = r.Sell("2021-01-05", d("1.0"), SellQuantity{Equity: &e, Amount: &a})
	assert.ErrorIs(t, err, ErrAmbiguousSellQuantity)
}

func TestProfitRecord_SellOversell(t *testing.T) {
	r := NewProfitRecord()
	_, err := r.Buy("2021-01-04", d("1.0"), d("1000"))
	require.NoError(t, err)

	_, err = r.Sell("2021-01-05", d("1.0"), SellByEquity(d("1000.001")))
	assert.ErrorIs(t, err, ErrInsufficientPosition)

	// Record unchanged after the rejected sell.
	assert.Equal(t, "1000.000", r.PositionEquity().StringFixed(3))
	assert.Empty(t, r.AccSell.Histories)

	// Selling exactly the position is fine.
	_, err = r.Sell("2021-01-05", d("1.0"), SellByEquity(d("1000")))
	assert.NoError(t, err)
	assert.True(t, r.PositionEquity().IsZero())
}

func TestProfitRecord_Settle(t *testing.T) {
	r := NewProfitRecord()
	_, err := r.Buy("2021-01-04", d("1.0"), d("1000"))
	require.NoError(t, err)

	snap := r.Settle("2021-01-04", d("1.0"))
	assert.Equal(t, "1000.000", snap.Equity.StringFixed(3))
	assert.Equal(t, "1000.00", snap.Cost.StringFixed(2))
	assert.Equal(t, "0.00", snap.Profit().StringFixed(2))

	snap = r.Settle("2021-01-05", d("1.2"))
	assert.Equal(t, "1200.00", snap.Amount().StringFixed(2))
	assert.Equal(t, "200.00", snap.Profit().StringFixed(2))
	assert.Equal(t, "0.2000", snap.ProfitRate().StringFixed(4))
	assert.Len(t, r.Histories, 2)
}

func TestProfitRecord_ZeroCostSafety(t *testing.T) {
	r := NewProfitRecord()

	// No history, no buys: every derived value is zero, never an error.
	assert.True(t, r.PositionProfitRate().IsZero())
	assert.True(t, r.TotalProfitRate().IsZero())
	assert.True(t, r.PositionAmount().IsZero())
	assert.True(t, r.PositionProfit().IsZero())

	snap := r.Settle("2021-01-04", d("1.0"))
	assert.True(t, snap.ProfitRate().IsZero())
	assert.True(t, snap.AvgValue().IsZero())
}

func TestProfitRecord_TotalAccessors(t *testing.T) {
	r := NewProfitRecord()
	_, err := r.Buy("2021-01-04", d("1.0"), d("1000"))
	require.NoError(t, err)
	_, err = r.Sell("2021-01-05", d("1.25"), SellByEquity(d("400")))
	require.NoError(t, err)
	r.Settle("2021-01-05", d("1.25"))

	// position: 600 shares @ 1.25 = 750; sells recovered 500
	assert.Equal(t, "750.00", r.PositionAmount().StringFixed(2))
	assert.Equal(t, "1250.00", r.TotalAmount().StringFixed(2))
	assert.Equal(t, "1000.00", r.TotalCost().StringFixed(2))
	assert.Equal(t, "250.00", r.TotalProfit().StringFixed(2))
	assert.Equal(t, "0.2500", r.TotalProfitRate().StringFixed(4))
	assert.Equal(t, "1000.000", r.TotalEquity().StringFixed(3))
}

func TestProfitRecord_MaxValueInDays(t *testing.T) {
	r := NewProfitRecord()
	for _, v := range []string{"1.0", "1.3", "1.1", "1.2"} {
		r.Settle("2021-01-04", d(v))
	}

	assert.Equal(t, "1.3000", r.MaxValueInDays(4).StringFixed(4))
	assert.Equal(t, "1.2000", r.MaxValueInDays(2).StringFixed(4))
	assert.Equal(t, "1.3000", r.MaxValueInDays(100).StringFixed(4))
	assert.True(t, r.MaxValueInDays(0).IsZero())
	assert.True(t, r.MaxValueInDays(-1).IsZero())
	assert.True(t, NewProfitRecord().MaxValueInDays(5).IsZero())
}

func TestProfitRecord_ValueDrawbackRate(t *testing.T) {
	r := NewProfitRecord()
	for _, v := range []string{"95", "100", "98", "97", "96"} {
		r.Settle("2021-01-04", d(v))
	}

	// recent max 100, current 90 -> 10% below peak
	assert.Equal(t, "0.1000", r.ValueDrawbackRate(d("90"), 5).StringFixed(4))
	// current above the peak -> negative drawback
	assert.Equal(t, "-0.0500", r.ValueDrawbackRate(d("105"), 5).StringFixed(4))
	// no history -> zero
	assert.True(t, NewProfitRecord().ValueDrawbackRate(d("90"), 5).IsZero())
}

// Ledger consistency across an arbitrary buy/sell sequence.
func TestProfitRecord_LedgerConsistency(t *testing.T) {
	r := NewProfitRecord()

	ops := []struct {
		buy    bool
		value  string
		amount string
	}{
		{true, "1.0", "1000"},
		{true, "1.1", "333.33"},
		{false, "1.2", "200"},
		{true, "0.9", "100"},
		{false, "1.05", "50.5"},
	}

	for _, op := range ops {
		var err error
		if op.buy {
			_, err = r.Buy("2021-01-04", d(op.value), d(op.amount))
		} else {
			_, err = r.Sell("2021-01-04", d(op.value), SellByAmount(d(op.amount)))
		}
		require.NoError(t, err)

		for _, acc := range []*Accumulation{r.AccBuy, r.AccSell} {
			sumAmount, sumEquity := decimal.Zero, decimal.Zero
			for _, h := range acc.Histories {
				sumAmount = sumAmount.Add(h.Amount)
				sumEquity = sumEquity.Add(h.Equity)
			}
			assert.True(t, acc.Amount.Equal(sumAmount))
			assert.True(t, acc.Equity.Equal(sumEquity))
		}
		assert.True(t, r.PositionEquity().Equal(r.AccBuy.Equity.Sub(r.AccSell.Equity)))
	}
}
