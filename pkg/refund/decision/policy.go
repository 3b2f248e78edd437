package decision

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidPolicy = errors.New("invalid refund policy")

// Policy holds the tunable parameters of the refund decision table.
type Policy struct {
	// Ratio at or below which an experienced requester is auto-approved.
	RatioLower decimal.Decimal
	// Ratio above which an experienced requester is denied.
	RatioUpper decimal.Decimal
	// Fee cap for automatic approval.
	MaxFee decimal.Decimal
	// Requests for this many shortlists or more always go to Hold & Call.
	MaxShortlists int
	// Accounts younger than this are always inexperienced.
	ExperienceDays int
	// Accounts younger than this are inexperienced unless they sent
	// at least ExperienceShortlists shortlists.
	TenureDays           int
	ExperienceShortlists int

	CurrencySymbol string
}

// DefaultPolicy returns the production policy.
func DefaultPolicy() Policy {
	return Policy{
		RatioLower:           decimal.RequireFromString("0.25"),
		RatioUpper:           decimal.RequireFromString("0.40"),
		MaxFee:               decimal.NewFromInt(60),
		MaxShortlists:        3,
		ExperienceDays:       100,
		TenureDays:           366,
		ExperienceShortlists: 16,
		CurrencySymbol:       "£",
	}
}

// Validate rejects parameter sets that would make rows of the decision
// table unreachable or meaningless.
func (p Policy) Validate() error {
	switch {
	case p.RatioLower.IsNegative():
		return fmt.Errorf("%w: ratio lower %s is negative", ErrInvalidPolicy, p.RatioLower)
	case p.RatioLower.GreaterThan(p.RatioUpper):
		return fmt.Errorf("%w: ratio lower %s above ratio upper %s", ErrInvalidPolicy, p.RatioLower, p.RatioUpper)
	case !p.MaxFee.IsPositive():
		return fmt.Errorf("%w: max fee %s must be positive", ErrInvalidPolicy, p.MaxFee)
	case p.MaxShortlists <= 0:
		return fmt.Errorf("%w: max shortlists %d must be positive", ErrInvalidPolicy, p.MaxShortlists)
	case p.ExperienceDays < 0:
		return fmt.Errorf("%w: experience days %d is negative", ErrInvalidPolicy, p.ExperienceDays)
	case p.TenureDays < p.ExperienceDays:
		return fmt.Errorf("%w: tenure days %d below experience days %d", ErrInvalidPolicy, p.TenureDays, p.ExperienceDays)
	case p.ExperienceShortlists < 0:
		return fmt.Errorf("%w: experience shortlists %d is negative", ErrInvalidPolicy, p.ExperienceShortlists)
	}
	return nil
}
