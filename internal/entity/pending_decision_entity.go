package entity

import (
	"time"

	"refund-decision-be/pkg/refund/decision"

	"github.com/google/uuid"
)

// PendingDecision is the agent's working state for one case: the form
// values last evaluated and the decision awaiting confirmation.
type PendingDecision struct {
	CaseId     uuid.UUID
	CaseNumber string
	AccountId  uuid.UUID
	Input      decision.Input
	Decision   decision.Decision
	ComputedAt time.Time
	// Failed confirmation attempts so far.
	Attempts int
}
