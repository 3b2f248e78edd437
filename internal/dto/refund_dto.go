package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// --- Decision Request ---

// ComputeDecisionRequest carries the form values an agent submits.
// Missing or zero values are reported by the decision engine itself so
// every failing field comes back at once.
type ComputeDecisionRequest struct {
	ShortlistsRequested int     `json:"shortlists_requested"`
	TotalSumRequested   float64 `json:"total_sum_requested"`
	ShortlistCount      int     `json:"shortlist_count"`
	// Overrides the account's first approved activity, YYYY-MM-DD.
	FirstActivityDate string `json:"first_activity_date" validate:"omitempty,datetime=2006-01-02"`
	RefundNotes       string `json:"refund_notes" validate:"max=32000"`
}

// --- Decision View Model ---

type DecisionInputResponse struct {
	ShortlistsRequested      int        `json:"shortlists_requested"`
	TotalSumRequested        string     `json:"total_sum_requested"`
	ShortlistCount           int        `json:"shortlist_count"`
	FirstActivityDate        *time.Time `json:"first_activity_date"`
	PriorApprovedRefundCount int        `json:"prior_approved_refund_count"`
	RefundNotes              string     `json:"refund_notes"`
}

type DecisionResponse struct {
	CaseId                 uuid.UUID             `json:"case_id"`
	Outcome                string                `json:"outcome"`
	DisplayMessage         string                `json:"display_message"`
	DisplayStyle           string                `json:"display_style"`
	Reason                 string                `json:"reason"`
	Rule                   string                `json:"rule"`
	Experience             string                `json:"experience"`
	Ratio                  string                `json:"ratio"`
	ApprovedAmount         string                `json:"approved_amount"`
	ApprovedShortlistCount int                   `json:"approved_shortlist_count"`
	Input                  DecisionInputResponse `json:"input"`
	ComputedAt             time.Time             `json:"computed_at"`
	Attempts               int                   `json:"attempts"`
}

type ConfirmDecisionResponse struct {
	CaseId               uuid.UUID `json:"case_id"`
	Outcome              string    `json:"outcome"`
	DecisionReason       string    `json:"decision_reason"`
	AmountRefunded       string    `json:"amount_refunded"`
	RefundApproved       bool      `json:"refund_approved"`
	RefundsApproved      int       `json:"refunds_approved"`
	TotalRefundsApproved int       `json:"account_total_refunds_approved"`
}

// --- Case State ---

type CaseRefundStateResponse struct {
	CaseId                uuid.UUID  `json:"case_id"`
	CaseNumber            string     `json:"case_number"`
	AccountId             *uuid.UUID `json:"account_id"`
	Type                  string     `json:"type"`
	RefundDecisionOutcome string     `json:"refund_decision_outcome"`
	RefundDecisionReason  string     `json:"refund_decision_reason"`
	AmountRefunded        string     `json:"amount_refunded"`
	RefundApproved        bool       `json:"refund_approved"`
	ShortlistsRequested   int        `json:"refund_request_sls_requested"`
	TotalSumRequested     string     `json:"refund_request_total_amount"`
	RefundNotes           string     `json:"refund_request_notes"`
	RefundsApproved       int        `json:"refunds_approved"`
	FirstActivityDate     *time.Time `json:"first_activity_date"`
	TotalRefundsApproved  int        `json:"account_total_refunds_approved"`
	HasPendingDecision    bool       `json:"has_pending_decision"`
}

// --- Policy ---

type PolicyResponse struct {
	RatioLower           string `json:"ratio_lower"`
	RatioUpper           string `json:"ratio_upper"`
	MaxFee               string `json:"max_fee"`
	MaxShortlists        int    `json:"max_shortlists"`
	ExperienceDays       int    `json:"experience_days"`
	TenureDays           int    `json:"tenure_days"`
	ExperienceShortlists int    `json:"experience_shortlists"`
	CurrencySymbol       string `json:"currency_symbol"`
}

// --- Audit Message ---

// DecisionAuditMessage is published on the in-process audit topic for
// each confirmation attempt.
type DecisionAuditMessage struct {
	CaseId     uuid.UUID       `json:"case_id"`
	Outcome    string          `json:"outcome"`
	Rule       string          `json:"rule"`
	Reason     string          `json:"reason"`
	Ratio      string          `json:"ratio"`
	Experience string          `json:"experience"`
	Patch      json.RawMessage `json:"patch"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type DecisionAuditResponse struct {
	Id         uuid.UUID `json:"id"`
	Outcome    string    `json:"outcome"`
	Rule       string    `json:"rule"`
	Reason     string    `json:"reason"`
	Ratio      string    `json:"ratio"`
	Experience string    `json:"experience"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
