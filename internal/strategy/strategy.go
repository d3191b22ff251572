// Package strategy holds the pluggable per-day trading policies the
// backtest engine invokes against the running profit record.
package strategy

import (
	"fmt"
	"sort"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/internal/ledger"
)

// Strategy decides buys and sells from trailing state. DoStrategy is
// invoked once per trading day with the running record and the day's
// NAV, for dayIndex >= 1 (day 0 is the initial buy). A strategy may call
// record.Buy or record.Sell but never record.Settle.
type Strategy interface {
	Name() string
	DoStrategy(record *ledger.ProfitRecord, dayIndex int, nav contracts.FundNav) error
}

// Factory builds a strategy from positional numeric arguments, the form
// they take in plan files and on the CLI.
type Factory func(args []float64) (Strategy, error)

// registry maps strategy names to factories. Strategies are constructed
// through explicit lookup, never by reflection.
var registry = map[string]Factory{
	"StopByProfitRate":    newStopByProfitRate,
	"StopByValueDrawback": newStopByValueDrawback,
	"AddByValueIncrease":  newAddByValueIncrease,
	"AddByValueDrawback":  newAddByValueDrawback,
	"TakeDeltaProfit":     newTakeDeltaProfit,
}

// New constructs a registered strategy by name.
func New(name string, args ...float64) (Strategy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
	s, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("strategy: %s: %w", name, err)
	}
	return s, nil
}

// Names lists the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wantArgs(args []float64, n int) error {
	if len(args) != n {
		return fmt.Errorf("want %d args, got %d", n, len(args))
	}
	return nil
}
