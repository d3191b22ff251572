// Package ledger implements the accounting core of the backtester: the
// fixed-point quantization rules, the append-only buy/sell accumulators,
// and the daily-settled profit record.
package ledger

import "github.com/shopspring/decimal"

// Fixed fractional digits per quantity kind. Every value stored in the
// ledger passes through one of the quantizers below; running sums stay
// well-defined because addends are already quantized.
const (
	EquityPlaces = 3 // fund shares
	ValuePlaces  = 4 // NAV price
	AmountPlaces = 2 // money
	RatePlaces   = 4 // rates / fractions
)

// All quantizers use banker's rounding (round half to even) so results
// are reproducible across platforms.

// Equity quantizes a share quantity.
func Equity(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(EquityPlaces)
}

// Value quantizes a NAV price.
func Value(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(ValuePlaces)
}

// Amount quantizes a money amount.
func Amount(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(AmountPlaces)
}

// Rate quantizes a rate.
func Rate(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(RatePlaces)
}
