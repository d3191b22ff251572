// Package plan defines the YAML backtest plan: which fund to replay,
// the regular-investment parameters and the ordered strategy list.
package plan

import (
	"time"

	"github.com/wonny/fundquant/internal/backtest"
	"github.com/wonny/fundquant/internal/strategy"
)

// Plan is the full configuration of one backtest run.
type Plan struct {
	Fund       Fund           `yaml:"fund" json:"fund"`
	Invest     Invest         `yaml:"invest" json:"invest"`
	Strategies []StrategySpec `yaml:"strategies" json:"strategies"`
	Output     Output         `yaml:"output" json:"output"`
}

// Fund selects the NAV series.
type Fund struct {
	Code  string `yaml:"code" json:"code"`
	Start string `yaml:"start" json:"start,omitempty"` // optional, YYYY-MM-DD
	End   string `yaml:"end" json:"end,omitempty"`   // optional, YYYY-MM-DD
}

// Invest holds the regular-investment parameters.
type Invest struct {
	InitAmount  float64 `yaml:"init_amount" json:"init_amount"`
	Interval    string  `yaml:"interval" json:"interval"`
	DeltaAmount float64 `yaml:"delta_amount" json:"delta_amount"`
	Decrease    string  `yaml:"decrease" json:"decrease,omitempty"` // optional
}

// StrategySpec names a registered strategy with positional arguments.
type StrategySpec struct {
	Name string    `yaml:"name" json:"name"`
	Args []float64 `yaml:"args" json:"args"`
}

// Output controls report writing.
type Output struct {
	Dir string `yaml:"dir" json:"dir,omitempty"` // directory for CSV reports, optional
}

// EngineConfig maps the invest section onto the engine configuration.
func (p *Plan) EngineConfig() backtest.Config {
	return backtest.Config{
		InitAmount:  p.Invest.InitAmount,
		Interval:    p.Invest.Interval,
		DeltaAmount: p.Invest.DeltaAmount,
		Decrease:    p.Invest.Decrease,
	}
}

// BuildStrategies constructs the strategy list in plan order. Every run
// gets fresh strategy instances so stateful strategies start clean.
func (p *Plan) BuildStrategies() ([]strategy.Strategy, error) {
	strategies := make([]strategy.Strategy, 0, len(p.Strategies))
	for _, spec := range p.Strategies {
		s, err := strategy.New(spec.Name, spec.Args...)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
