package backtest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundquant/internal/contracts"
)

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("d2")
	require.NoError(t, err)
	assert.Equal(t, Interval{Kind: IntervalDay, N: 2}, iv)

	iv, err = ParseInterval("w1")
	require.NoError(t, err)
	assert.Equal(t, Interval{Kind: IntervalWeek, N: 1}, iv)

	for _, bad := range []string{"", "d", "d0", "w0", "w6", "w7", "x3", "2d", "d-1", "d1.5"} {
		_, err := ParseInterval(bad)
		assert.Error(t, err, "interval %q", bad)
	}
}

func TestInterval_MatchesDay(t *testing.T) {
	iv, err := ParseInterval("d2")
	require.NoError(t, err)

	nav := contracts.FundNav{Date: "2021-03-01"}
	var matched []int
	for i := 0; i <= 7; i++ {
		if iv.Matches(i, nav) {
			matched = append(matched, i)
		}
	}
	assert.Equal(t, []int{2, 4, 6}, matched)
}

func TestInterval_MatchesWeek(t *testing.T) {
	iv, err := ParseInterval("w1")
	require.NoError(t, err)

	// 2021-03-01 is a Monday.
	assert.True(t, iv.Matches(1, contracts.FundNav{Date: "2021-03-01"}))
	assert.False(t, iv.Matches(1, contracts.FundNav{Date: "2021-03-02"}))
	// Day 0 never matches, even on the right weekday.
	assert.False(t, iv.Matches(0, contracts.FundNav{Date: "2021-03-01"}))
	// Weekend rows never match a weekly schedule.
	assert.False(t, iv.Matches(5, contracts.FundNav{Date: "2021-03-06"}))
	assert.False(t, iv.Matches(6, contracts.FundNav{Date: "2021-03-07"}))
}

func TestParseDecrease(t *testing.T) {
	dc, err := ParseDecrease("0.05:100")
	require.NoError(t, err)
	assert.Equal(t, "0.05", dc.RateGrid.String())
	assert.Equal(t, "100", dc.Step.String())

	dc, err = ParseDecrease("")
	require.NoError(t, err)
	assert.Nil(t, dc)

	for _, bad := range []string{"0.05", "0.05:100:2", "abc:100", "0.05:abc", "-0.05:100", "0.05:-100", "0:100", "0.05:0"} {
		_, err := ParseDecrease(bad)
		assert.Error(t, err, "decrease %q", bad)
	}
}

func TestDecrease_Apply(t *testing.T) {
	dc, err := ParseDecrease("0.05:100")
	require.NoError(t, err)

	base := decimal.NewFromInt(1000)

	// floor(0.12/0.05) = 2 steps -> 1000 - 200
	got := dc.Apply(base, decimal.RequireFromString("0.12"))
	assert.Equal(t, "800", got.String())

	// below one grid step: unchanged
	got = dc.Apply(base, decimal.RequireFromString("0.04"))
	assert.Equal(t, "1000", got.String())

	// no reduction at zero or negative profit
	assert.Equal(t, "1000", dc.Apply(base, decimal.Zero).String())
	assert.Equal(t, "1000", dc.Apply(base, decimal.RequireFromString("-0.3")).String())

	// deep in profit the contribution can drop through zero
	got = dc.Apply(base, decimal.RequireFromString("0.60"))
	assert.Equal(t, "-200", got.String())

	// nil schedule is a no-op
	var none *Decrease
	assert.Equal(t, "1000", none.Apply(base, decimal.RequireFromString("0.12")).String())
}
