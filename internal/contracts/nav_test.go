package contracts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFundNav_Weekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2021-03-01", 1}, // Monday
		{"2021-03-05", 5}, // Friday
		{"2021-03-06", 6}, // Saturday
		{"2021-03-07", 7}, // Sunday
		{"not-a-date", 0},
	}

	for _, tt := range tests {
		nav := FundNav{Date: tt.date}
		assert.Equal(t, tt.want, nav.Weekday(), "date %s", tt.date)
	}
}

func TestFundNav_Rate(t *testing.T) {
	nav := FundNav{Increase: decimal.RequireFromString("-1.25")}
	assert.True(t, nav.Rate().Equal(decimal.RequireFromString("-0.0125")))

	nav = FundNav{Increase: decimal.RequireFromString("3")}
	assert.True(t, nav.Rate().Equal(decimal.RequireFromString("0.03")))
}
