package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Case is a support case carrying a refund request.
type Case struct {
	Id                        uuid.UUID
	AccountId                 *uuid.UUID
	CaseNumber                string
	Subject                   string
	Type                      string
	AmountRefunded            decimal.Decimal
	RefundApproved            bool
	RefundDecisionOutcome     string
	RefundDecisionReason      string
	RefundRequestSlsRequested int
	RefundRequestTotalAmount  decimal.Decimal
	RefundRequestNotes        string
	RefundsApproved           int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
