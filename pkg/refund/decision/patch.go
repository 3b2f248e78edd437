package decision

import "github.com/shopspring/decimal"

// CaseTypeRefundRequest is written to the case type on every confirmation.
const CaseTypeRefundRequest = "Refund Request"

// Case field names written by a CasePatch.
const (
	ColumnDecisionOutcome     = "refund_decision_outcome"
	ColumnDecisionReason      = "refund_decision_reason"
	ColumnType                = "type"
	ColumnAmountRefunded      = "amount_refunded"
	ColumnRefundApproved      = "refund_approved"
	ColumnShortlistsRequested = "refund_request_sls_requested"
	ColumnTotalSumRequested   = "refund_request_total_amount"
	ColumnRefundNotes         = "refund_request_notes"
	ColumnRefundsApproved     = "refunds_approved"
)

// CasePatch is the set of case fields persisted when a decision is confirmed.
type CasePatch struct {
	DecisionOutcome     Outcome         `json:"refund_decision_outcome"`
	DecisionReason      string          `json:"refund_decision_reason"`
	CaseType            string          `json:"type"`
	AmountRefunded      decimal.Decimal `json:"amount_refunded"`
	RefundApproved      bool            `json:"refund_approved"`
	ShortlistsRequested int             `json:"refund_request_sls_requested"`
	TotalSumRequested   decimal.Decimal `json:"refund_request_total_amount"`
	RefundNotes         string          `json:"refund_request_notes"`
	RefundsApproved     int             `json:"refunds_approved"`
}

// BuildPatch maps a decision back onto the case fields.
func BuildPatch(in Input, d Decision) CasePatch {
	return CasePatch{
		DecisionOutcome:     d.Outcome,
		DecisionReason:      d.Rule.Summary(),
		CaseType:            CaseTypeRefundRequest,
		AmountRefunded:      d.ApprovedAmount,
		RefundApproved:      d.Approved(),
		ShortlistsRequested: in.ShortlistsRequested,
		TotalSumRequested:   in.TotalSumRequested,
		RefundNotes:         in.RefundNotes,
		RefundsApproved:     d.ApprovedShortlistCount,
	}
}

// Fields returns the patch as a column name to value mapping.
func (p CasePatch) Fields() map[string]interface{} {
	return map[string]interface{}{
		ColumnDecisionOutcome:     string(p.DecisionOutcome),
		ColumnDecisionReason:      p.DecisionReason,
		ColumnType:                p.CaseType,
		ColumnAmountRefunded:      p.AmountRefunded,
		ColumnRefundApproved:      p.RefundApproved,
		ColumnShortlistsRequested: p.ShortlistsRequested,
		ColumnTotalSumRequested:   p.TotalSumRequested,
		ColumnRefundNotes:         p.RefundNotes,
		ColumnRefundsApproved:     p.RefundsApproved,
	}
}
