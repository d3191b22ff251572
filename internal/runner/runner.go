// Package runner composes a validated plan, a NAV repository and the
// backtest engine into one run.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/fundquant/internal/backtest"
	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
	"github.com/wonny/fundquant/internal/plan"
	"github.com/wonny/fundquant/internal/report"
	"github.com/wonny/fundquant/pkg/logger"
)

// ErrNoNavs means the repository has no records for the requested fund
// and date range.
var ErrNoNavs = errors.New("runner: no NAV records for fund")

// Result is a finished backtest run.
type Result struct {
	Record  *ledger.ProfitRecord
	Summary report.Summary

	// Days is the number of trading days replayed.
	Days int
}

// Runner executes backtest plans against stored NAV series.
type Runner struct {
	repo contracts.NavRepository
	log  *logger.Logger
}

// New creates a runner on top of repo.
func New(repo contracts.NavRepository, log *logger.Logger) *Runner {
	return &Runner{repo: repo, log: log}
}

// Run validates p, loads the NAV series it selects and replays it.
// When the plan names an output directory, the CSV reports are written
// there as well.
func (r *Runner) Run(ctx context.Context, p *plan.Plan) (*Result, error) {
	if err := plan.Validate(p); err != nil {
		return nil, err
	}

	navs, err := r.repo.ListByCodeAndRange(ctx, p.Fund.Code, p.Fund.Start, p.Fund.End)
	if err != nil {
		return nil, fmt.Errorf("runner: load navs: %w", err)
	}
	if len(navs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoNavs, p.Fund.Code)
	}

	strategies, err := p.BuildStrategies()
	if err != nil {
		return nil, err
	}

	engine, err := backtest.New(p.EngineConfig(), strategies, r.log)
	if err != nil {
		return nil, err
	}

	record, err := engine.Backtest(ctx, navs)
	if err != nil {
		return nil, err
	}

	if p.Output.Dir != "" {
		if err := report.WriteAll(p.Output.Dir, record); err != nil {
			return nil, err
		}
		r.log.WithField("dir", p.Output.Dir).Info("reports written")
	}

	return &Result{
		Record:  record,
		Summary: report.NewSummary(record),
		Days:    len(navs),
	}, nil
}
