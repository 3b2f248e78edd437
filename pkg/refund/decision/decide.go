package decision

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decide applies the decision table to a validated input. Rows are checked
// in order and the first match wins.
func Decide(in Input, experience Experience, ratio decimal.Decimal, p Policy) Decision {
	fee := p.CurrencySymbol + p.MaxFee.String()
	total := in.TotalSumRequested
	withinFee := total.LessThanOrEqual(p.MaxFee)

	var (
		rule   Rule
		reason string
	)
	switch {
	case in.ShortlistsRequested >= p.MaxShortlists:
		rule = RuleTooManyShortlists
		reason = fmt.Sprintf("Requested %d or more refunds at once", p.MaxShortlists)
	case experience == Inexperienced && withinFee:
		rule = RuleInexperiencedUnderFeeCap
		reason = fmt.Sprintf("Inexperienced TP & total refund below %s.", fee)
	case experience == Inexperienced:
		rule = RuleInexperiencedOverFeeCap
		reason = fmt.Sprintf("Inexperienced TP, total refund over %s.", fee)
	case withinFee && ratio.LessThanOrEqual(p.RatioLower):
		rule = RuleExperiencedWithinCaps
		reason = fmt.Sprintf("Experienced TP, total refund below %s & SL/Refund ratio %s.", fee, ratio)
	case withinFee && ratio.LessThanOrEqual(p.RatioUpper):
		rule = RuleExperiencedRatioHoldBand
		reason = fmt.Sprintf("Experienced TP, ratio over %s, but not over %s: %s", p.RatioLower, p.RatioUpper, ratio)
	case total.GreaterThanOrEqual(p.MaxFee) && ratio.LessThanOrEqual(p.RatioUpper):
		rule = RuleExperiencedFeeOverCap
		reason = fmt.Sprintf("Experienced TP, total refund over %s and ratio below %s: %s", fee, p.RatioUpper, ratio)
	default:
		rule = RuleExperiencedRatioOverLimit
		reason = fmt.Sprintf("Experienced TP, ratio %s, over the limit of %s.", ratio, p.RatioUpper)
	}

	return newDecision(in, rule, reason, experience, ratio)
}

func newDecision(in Input, rule Rule, reason string, experience Experience, ratio decimal.Decimal) Decision {
	outcome := outcomeOf(rule)
	d := Decision{
		Outcome:        outcome,
		DisplayMessage: outcome.DisplayMessage(),
		DisplayStyle:   outcome.Style(),
		Rule:           rule,
		Reason:         reason,
		Experience:     experience,
		Ratio:          ratio,
		ApprovedAmount: decimal.Zero,
	}
	if outcome == OutcomeApproved {
		d.ApprovedAmount = in.TotalSumRequested
		d.ApprovedShortlistCount = in.ShortlistsRequested
	}
	return d
}

func outcomeOf(rule Rule) Outcome {
	switch rule {
	case RuleInexperiencedUnderFeeCap, RuleExperiencedWithinCaps:
		return OutcomeApproved
	case RuleExperiencedRatioOverLimit:
		return OutcomeDenied
	default:
		return OutcomeHoldAndCall
	}
}
