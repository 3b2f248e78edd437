package decision

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const ratioPlaces = 2

// DaysSince returns whole days elapsed from first to now, floored.
// A future first date gives a negative count.
func DaysSince(first, now time.Time) int {
	return int(math.Floor(now.Sub(first).Hours() / 24))
}

// ClassifyExperience decides whether an account counts as experienced.
func ClassifyExperience(firstActivityDate time.Time, shortlistCount int, now time.Time, p Policy) Experience {
	days := DaysSince(firstActivityDate, now)
	if days < p.ExperienceDays || (days < p.TenureDays && shortlistCount < p.ExperienceShortlists) {
		return Inexperienced
	}
	return Experienced
}

// ComputeRatio returns prior approved refunds per shortlist, rounded to two
// places half away from zero.
func ComputeRatio(priorApprovedRefundCount, shortlistCount int) (decimal.Decimal, error) {
	if priorApprovedRefundCount == 0 {
		return decimal.Zero, nil
	}
	if shortlistCount == 0 {
		return decimal.Zero, ErrUndefinedRatio
	}
	ratio := decimal.NewFromInt(int64(priorApprovedRefundCount)).
		Div(decimal.NewFromInt(int64(shortlistCount)))
	return RoundRatio(ratio), nil
}

// RoundRatio rounds a ratio the way it is displayed and compared.
func RoundRatio(r decimal.Decimal) decimal.Decimal {
	return r.Round(ratioPlaces)
}
