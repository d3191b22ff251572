package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/plan"
	"github.com/wonny/fundquant/pkg/logger"
)

type memRepo struct {
	navs []contracts.FundNav
}

func (m *memRepo) ListByCode(ctx context.Context, code string) ([]contracts.FundNav, error) {
	return m.ListByCodeAndRange(ctx, code, "", "")
}

func (m *memRepo) ListByCodeAndRange(ctx context.Context, code, from, to string) ([]contracts.FundNav, error) {
	var out []contracts.FundNav
	for _, nav := range m.navs {
		if nav.Code != code {
			continue
		}
		if from != "" && nav.Date < from {
			continue
		}
		if to != "" && nav.Date > to {
			continue
		}
		out = append(out, nav)
	}
	return out, nil
}

func (m *memRepo) SaveBatch(ctx context.Context, navs []contracts.FundNav) error {
	m.navs = append(m.navs, navs...)
	return nil
}

func (m *memRepo) Stats(ctx context.Context, code string) (*contracts.NavStats, error) {
	return &contracts.NavStats{Code: code}, nil
}

func repoWith(dates []string, values []string) *memRepo {
	navs := make([]contracts.FundNav, len(dates))
	for i := range dates {
		v, _ := decimal.NewFromString(values[i])
		navs[i] = contracts.FundNav{Code: "161725", Date: dates[i], Value: v}
	}
	return &memRepo{navs: navs}
}

func basePlan() *plan.Plan {
	return &plan.Plan{
		Fund:   plan.Fund{Code: "161725"},
		Invest: plan.Invest{InitAmount: 1000, Interval: "d1", DeltaAmount: 100},
	}
}

func TestRun(t *testing.T) {
	repo := repoWith(
		[]string{"2024-01-01", "2024-01-02", "2024-01-03"},
		[]string{"1.0", "1.1", "1.2"},
	)

	result, err := New(repo, logger.Nop()).Run(context.Background(), basePlan())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Days)
	assert.Equal(t, "1200", result.Record.TotalCost().String())
	require.Len(t, result.Summary.Rows, 5)
}

func TestRunRespectsDateRange(t *testing.T) {
	repo := repoWith(
		[]string{"2024-01-01", "2024-01-02", "2024-01-03"},
		[]string{"1.0", "1.1", "1.2"},
	)

	p := basePlan()
	p.Fund.Start = "2024-01-02"
	result, err := New(repo, logger.Nop()).Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Days)
}

func TestRunWritesReports(t *testing.T) {
	repo := repoWith(
		[]string{"2024-01-01", "2024-01-02"},
		[]string{"1.0", "1.1"},
	)

	p := basePlan()
	p.Output.Dir = filepath.Join(t.TempDir(), "out")
	_, err := New(repo, logger.Nop()).Run(context.Background(), p)
	require.NoError(t, err)

	for _, name := range []string{"buys.csv", "sells.csv", "positions.csv", "summary.csv"} {
		_, err := os.Stat(filepath.Join(p.Output.Dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunUnknownFund(t *testing.T) {
	repo := repoWith([]string{"2024-01-01"}, []string{"1.0"})

	p := basePlan()
	p.Fund.Code = "000000"
	_, err := New(repo, logger.Nop()).Run(context.Background(), p)
	require.ErrorIs(t, err, ErrNoNavs)
}

func TestRunInvalidPlan(t *testing.T) {
	repo := repoWith([]string{"2024-01-01"}, []string{"1.0"})

	p := basePlan()
	p.Invest.Interval = "w9"
	_, err := New(repo, logger.Nop()).Run(context.Background(), p)
	require.Error(t, err)
	assert.True(t, plan.IsValidationError(err))
}
