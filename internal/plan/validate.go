package plan

import (
	"errors"
	"fmt"

	"github.com/wonny/fundquant/internal/backtest"
	"github.com/wonny/fundquant/internal/strategy"
)

// ValidationError marks a plan rejected by Validate, as opposed to a
// failure while running it.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string { return e.err.Error() }
func (e *ValidationError) Unwrap() error { return e.err }

// IsValidationError reports whether err came from plan validation.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Validate checks a plan for errors that would otherwise only surface
// mid-run: a malformed schedule, an unknown strategy, bad dates.
func Validate(p *Plan) error {
	if err := validate(p); err != nil {
		return &ValidationError{err: err}
	}
	return nil
}

func validate(p *Plan) error {
	if p.Fund.Code == "" {
		return fmt.Errorf("plan: fund.code is required")
	}
	if p.Fund.Start != "" && !validDate(p.Fund.Start) {
		return fmt.Errorf("plan: fund.start %q is not YYYY-MM-DD", p.Fund.Start)
	}
	if p.Fund.End != "" && !validDate(p.Fund.End) {
		return fmt.Errorf("plan: fund.end %q is not YYYY-MM-DD", p.Fund.End)
	}
	if p.Fund.Start != "" && p.Fund.End != "" && p.Fund.Start > p.Fund.End {
		return fmt.Errorf("plan: fund.start %s after fund.end %s", p.Fund.Start, p.Fund.End)
	}

	if p.Invest.InitAmount < 0 {
		return fmt.Errorf("plan: invest.init_amount must be >= 0")
	}
	if p.Invest.DeltaAmount < 0 {
		return fmt.Errorf("plan: invest.delta_amount must be >= 0")
	}
	if _, err := backtest.ParseInterval(p.Invest.Interval); err != nil {
		return err
	}
	if _, err := backtest.ParseDecrease(p.Invest.Decrease); err != nil {
		return err
	}

	// Construct every strategy once so bad names and arguments fail here.
	for _, spec := range p.Strategies {
		if _, err := strategy.New(spec.Name, spec.Args...); err != nil {
			return err
		}
	}

	return nil
}
