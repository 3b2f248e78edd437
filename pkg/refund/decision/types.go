package decision

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input is the caller-owned snapshot of a refund request form.
type Input struct {
	ShortlistsRequested int
	TotalSumRequested   decimal.Decimal
	// Total shortlists ever sent by the requester.
	ShortlistCount int
	// First approved activity of the account. Nil means none on record.
	FirstActivityDate        *time.Time
	PriorApprovedRefundCount int
	RefundNotes              string
}

type Outcome string

const (
	OutcomeApproved    Outcome = "Approved"
	OutcomeHoldAndCall Outcome = "Hold & Call"
	OutcomeDenied      Outcome = "Denied"
)

// DisplayMessage is the label shown to the agent for the outcome.
func (o Outcome) DisplayMessage() string {
	switch o {
	case OutcomeApproved:
		return "Refund Approved"
	case OutcomeHoldAndCall:
		return "Hold & Call"
	default:
		return "Denied"
	}
}

// Style returns the presentational style paired with the outcome.
func (o Outcome) Style() Style {
	switch o {
	case OutcomeApproved:
		return StyleSuccess
	case OutcomeHoldAndCall:
		return StyleHold
	default:
		return StyleError
	}
}

type Style string

const (
	StyleSuccess Style = "success"
	StyleHold    Style = "hold"
	StyleError   Style = "error"
)

type Experience string

const (
	Experienced   Experience = "experienced"
	Inexperienced Experience = "inexperienced"
)

// Rule identifies the row of the decision table that produced a decision.
type Rule string

const (
	RuleTooManyShortlists         Rule = "too_many_shortlists"
	RuleInexperiencedUnderFeeCap  Rule = "inexperienced_under_fee_cap"
	RuleInexperiencedOverFeeCap   Rule = "inexperienced_over_fee_cap"
	RuleExperiencedWithinCaps     Rule = "experienced_within_caps"
	RuleExperiencedRatioHoldBand  Rule = "experienced_ratio_hold_band"
	RuleExperiencedFeeOverCap     Rule = "experienced_fee_over_cap"
	RuleExperiencedRatioOverLimit Rule = "experienced_ratio_over_limit"
)

var ruleSummaries = map[Rule]string{
	RuleTooManyShortlists:         "Number of shortlists requested over limit",
	RuleInexperiencedUnderFeeCap:  "Inexperienced TP within params",
	RuleInexperiencedOverFeeCap:   "Inexperienced TP refund amount over limit",
	RuleExperiencedWithinCaps:     "Experienced TP within params",
	RuleExperiencedRatioHoldBand:  "Experienced TP ratio over lower limit",
	RuleExperiencedFeeOverCap:     "Experienced TP refund amount over limit",
	RuleExperiencedRatioOverLimit: "Experienced TP ratio over upper limit",
}

// Summary is the short reason persisted on the case.
func (r Rule) Summary() string {
	return ruleSummaries[r]
}

// Decision is the immutable result of evaluating an Input.
type Decision struct {
	Outcome        Outcome `json:"outcome"`
	DisplayMessage string  `json:"display_message"`
	DisplayStyle   Style   `json:"display_style"`
	Rule           Rule    `json:"rule"`
	Reason         string  `json:"reason"`

	Experience Experience      `json:"experience"`
	Ratio      decimal.Decimal `json:"ratio"`

	ApprovedAmount         decimal.Decimal `json:"approved_amount"`
	ApprovedShortlistCount int             `json:"approved_shortlist_count"`
}

func (d Decision) Approved() bool {
	return d.Outcome == OutcomeApproved
}
