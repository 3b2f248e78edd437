package entity

import (
	"time"

	"github.com/google/uuid"
)

type DecisionAuditStatus string

const (
	DecisionAuditPersisted DecisionAuditStatus = "persisted"
	DecisionAuditFailed    DecisionAuditStatus = "failed"
)

// DecisionAudit records every confirmation attempt of a refund decision.
type DecisionAudit struct {
	Id         uuid.UUID
	CaseId     uuid.UUID
	Outcome    string
	Rule       string
	Reason     string
	Ratio      string
	Experience string
	Patch      []byte // JSON encoded decision.CasePatch
	Status     DecisionAuditStatus
	Error      string
	CreatedAt  time.Time
}
