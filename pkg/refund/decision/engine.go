// Package decision implements the refund approval policy: input
// validation, experience classification, the refund ratio and the
// decision table, plus the case patch written on confirmation.
//
// Everything here is pure. An Engine only binds a Policy and a clock.
package decision

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Engine evaluates refund requests against a fixed policy.
type Engine struct {
	policy Policy
	now    func() time.Time
}

type Option func(*Engine)

// WithClock overrides the time source used for tenure calculation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(policy Policy, opts ...Option) *Engine {
	e := &Engine{
		policy: policy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Evaluate validates the input and runs the decision table. A failed
// validation returns a *ValidationError and no decision.
func (e *Engine) Evaluate(in Input) (Decision, error) {
	if err := Validate(in).Err(); err != nil {
		return Decision{}, err
	}

	ratio, err := ComputeRatio(in.PriorApprovedRefundCount, in.ShortlistCount)
	if errors.Is(err, ErrUndefinedRatio) {
		return Decision{}, &ValidationError{Fields: []Field{FieldShortlistCount}}
	}
	if err != nil {
		return Decision{}, err
	}

	experience := ClassifyExperience(*in.FirstActivityDate, in.ShortlistCount, e.now(), e.policy)
	return Decide(in, experience, ratio, e.policy), nil
}

// Patch builds the case patch for a confirmed decision.
func (e *Engine) Patch(in Input, d Decision) CasePatch {
	return BuildPatch(in, d)
}

// Amount is a convenience for building inputs from float form values.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
