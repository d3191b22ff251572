package backtest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
)

// IntervalKind selects how the regular-contribution schedule is keyed.
type IntervalKind int

const (
	// IntervalDay contributes every N trading days by index.
	IntervalDay IntervalKind = iota
	// IntervalWeek contributes on a fixed ISO weekday (Mon=1..Fri=5).
	IntervalWeek
)

// Interval is a parsed contribution schedule.
type Interval struct {
	Kind IntervalKind
	N    int
}

var (
	reIntervalDay  = regexp.MustCompile(`^d([1-9]\d*)$`)
	reIntervalWeek = regexp.MustCompile(`^w([1-5])$`)
)

// ParseInterval parses the compact interval grammar: "d<k>" contributes
// when day_index % k == 0, "w<1..5>" contributes on that weekday.
// Weekend weekdays are not accepted; NAV rows dated on weekends never
// match a weekly schedule.
func ParseInterval(s string) (Interval, error) {
	if m := reIntervalDay.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Interval{}, fmt.Errorf("backtest: parse interval %q: %w", s, err)
		}
		return Interval{Kind: IntervalDay, N: n}, nil
	}
	if m := reIntervalWeek.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Interval{Kind: IntervalWeek, N: n}, nil
	}
	return Interval{}, fmt.Errorf("backtest: invalid interval %q (want d<k> or w<1..5>)", s)
}

// Matches reports whether the schedule fires on this trading day.
// Day 0 is the initial buy and never matches.
func (iv Interval) Matches(dayIndex int, nav contracts.FundNav) bool {
	if dayIndex == 0 {
		return false
	}
	switch iv.Kind {
	case IntervalDay:
		return dayIndex%iv.N == 0
	case IntervalWeek:
		return nav.Weekday() == iv.N
	}
	return false
}

// Decrease reduces the regular contribution as the position profit rate
// climbs: the contribution drops by Step for every full RateGrid of
// positive profit rate.
type Decrease struct {
	RateGrid decimal.Decimal
	Step     decimal.Decimal
}

// ParseDecrease parses "<rate_grid>:<decrease_amount>", both positive.
// An empty spec disables the reduction and returns nil.
func ParseDecrease(s string) (*Decrease, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("backtest: invalid decrease %q (want <rate_grid>:<decrease_amount>)", s)
	}
	grid, err := decimal.NewFromString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("backtest: invalid decrease %q: %w", s, err)
	}
	step, err := decimal.NewFromString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("backtest: invalid decrease %q: %w", s, err)
	}
	if !grid.IsPositive() || !step.IsPositive() {
		return nil, fmt.Errorf("backtest: invalid decrease %q: rate grid and amount must be positive", s)
	}
	return &Decrease{RateGrid: grid, Step: step}, nil
}

// Apply returns the contribution after reduction. The reduction only
// applies to positive profit rates; the result may be zero or negative,
// which callers treat as "skip today".
func (dc *Decrease) Apply(base, profitRate decimal.Decimal) decimal.Decimal {
	if dc == nil || !profitRate.IsPositive() {
		return base
	}
	k := profitRate.Div(dc.RateGrid).Floor()
	return base.Sub(dc.Step.Mul(k))
}
