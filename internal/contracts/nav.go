package contracts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical date layout for NAV records.
const DateFormat = "2006-01-02"

// FundNav is one published net-asset-value record for a fund.
// Records are produced by a provider in ascending date order, one per
// trading day, and are never mutated afterwards.
type FundNav struct {
	Code     string          // fund code
	Date     string          // YYYY-MM-DD
	Value    decimal.Decimal // NAV price, positive
	Increase decimal.Decimal // daily change in percentage points, signed
}

// Rate returns the daily change as a fraction (Increase / 100).
func (n FundNav) Rate() decimal.Decimal {
	return n.Increase.Div(decimal.NewFromInt(100))
}

// Weekday returns the ISO weekday of the record date (Monday=1 .. Sunday=7),
// or 0 if the date does not parse.
func (n FundNav) Weekday() int {
	t, err := time.Parse(DateFormat, n.Date)
	if err != nil {
		return 0
	}
	wd := int(t.Weekday())
	if wd == 0 { // time.Sunday
		return 7
	}
	return wd
}

// NavStats summarizes a stored NAV series.
type NavStats struct {
	Code      string
	Count     int
	FirstDate string
	LastDate  string
	MinValue  decimal.Decimal
	MaxValue  decimal.Decimal
	AvgValue  decimal.Decimal
}

// NavRepository is the persistence boundary for NAV series.
type NavRepository interface {
	// ListByCode returns the full series for a fund, ascending by date.
	ListByCode(ctx context.Context, code string) ([]FundNav, error)

	// ListByCodeAndRange returns the series restricted to [from, to],
	// ascending by date. Empty bounds are open.
	ListByCodeAndRange(ctx context.Context, code, from, to string) ([]FundNav, error)

	// SaveBatch upserts NAV records, keyed by (code, date).
	SaveBatch(ctx context.Context, navs []FundNav) error

	// Stats returns aggregate statistics for a stored series.
	Stats(ctx context.Context, code string) (*NavStats, error)
}
