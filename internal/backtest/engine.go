// Package backtest replays a regular-investment plan day by day over a
// historical NAV series and produces the completed profit record.
package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
	"github.com/wonny/fundquant/internal/strategy"
	"github.com/wonny/fundquant/pkg/logger"
)

var (
	// ErrEmptyNavs is returned for an empty NAV series.
	ErrEmptyNavs = errors.New("backtest: empty nav series")

	// ErrUnsortedNavs is returned when the series is not strictly
	// ascending by date.
	ErrUnsortedNavs = errors.New("backtest: nav series not strictly ascending by date")
)

// Config holds the regular-investment parameters. Interval and Decrease
// use the compact grammar of ParseInterval and ParseDecrease.
type Config struct {
	InitAmount  float64 // initial position, day 0
	Interval    string  // contribution schedule
	DeltaAmount float64 // regular contribution amount
	Decrease    string  // optional decreasing-amount schedule
}

// Engine runs regular-investment backtests. Construct one engine per
// run; an engine holds no state between runs but its strategies may be
// stateful within one.
type Engine struct {
	initAmount  decimal.Decimal
	deltaAmount decimal.Decimal
	interval    Interval
	decrease    *Decrease
	strategies  []strategy.Strategy
	logger      *logger.Logger
}

// New builds an engine. Malformed interval or decrease specs fail here,
// never mid-backtest. Strategies are invoked in the given order each
// day; later strategies observe state mutated by earlier ones.
func New(cfg Config, strategies []strategy.Strategy, log *logger.Logger) (*Engine, error) {
	interval, err := ParseInterval(cfg.Interval)
	if err != nil {
		return nil, err
	}
	decrease, err := ParseDecrease(cfg.Decrease)
	if err != nil {
		return nil, err
	}
	if cfg.InitAmount < 0 || cfg.DeltaAmount < 0 {
		return nil, fmt.Errorf("backtest: init amount %v and delta amount %v must be >= 0",
			cfg.InitAmount, cfg.DeltaAmount)
	}

	return &Engine{
		initAmount:  decimal.NewFromFloat(cfg.InitAmount),
		deltaAmount: decimal.NewFromFloat(cfg.DeltaAmount),
		interval:    interval,
		decrease:    decrease,
		strategies:  strategies,
		logger:      log.WithField("module", "backtest"),
	}, nil
}

// Backtest replays the series once in ascending-date order: initial buy
// on day 0, then per day strategies, the regular contribution, and the
// settlement. The input is validated before any ledger mutation.
func (e *Engine) Backtest(ctx context.Context, navs []contracts.FundNav) (*ledger.ProfitRecord, error) {
	if len(navs) == 0 {
		return nil, ErrEmptyNavs
	}
	for i := 1; i < len(navs); i++ {
		if navs[i].Date <= navs[i-1].Date {
			return nil, fmt.Errorf("%w: %q then %q", ErrUnsortedNavs, navs[i-1].Date, navs[i].Date)
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"days":       len(navs),
		"from":       navs[0].Date,
		"to":         navs[len(navs)-1].Date,
		"interval":   e.interval,
		"strategies": len(e.strategies),
	}).Info("Starting backtest")

	record := ledger.NewProfitRecord()
	for i, nav := range navs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if i == 0 {
			if e.initAmount.IsPositive() {
				if _, err := record.Buy(nav.Date, nav.Value, e.initAmount); err != nil {
					return nil, fmt.Errorf("backtest: initial buy: %w", err)
				}
			}
		} else {
			if err := e.doStrategies(record, i, nav); err != nil {
				return nil, err
			}
			if err := e.doRegular(record, i, nav); err != nil {
				return nil, err
			}
		}
		record.Settle(nav.Date, nav.Value)
	}

	e.logger.WithFields(map[string]interface{}{
		"total_cost":   record.TotalCost(),
		"total_profit": record.TotalProfit(),
		"profit_rate":  record.TotalProfitRate(),
		"buys":         len(record.AccBuy.Histories),
		"sells":        len(record.AccSell.Histories),
	}).Info("Backtest completed")

	return record, nil
}

// doStrategies runs the attached strategies in list order.
func (e *Engine) doStrategies(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	for _, s := range e.strategies {
		if err := s.DoStrategy(record, dayIndex, nav); err != nil {
			return fmt.Errorf("backtest: strategy %s on %s: %w", s.Name(), nav.Date, err)
		}
	}
	return nil
}

// doRegular applies the scheduled contribution, reduced by the decrease
// schedule when the position is in profit. A contribution reduced to
// zero or below is skipped for the day.
func (e *Engine) doRegular(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error {
	if !e.interval.Matches(dayIndex, nav) {
		return nil
	}
	amount := e.decrease.Apply(e.deltaAmount, record.PositionProfitRate())
	if !amount.IsPositive() {
		return nil
	}
	if _, err := record.Buy(nav.Date, nav.Value, amount); err != nil {
		return fmt.Errorf("backtest: regular buy on %s: %w", nav.Date, err)
	}
	return nil
}
