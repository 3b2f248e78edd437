package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RefundDecisionAudit struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CaseID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Outcome    string         `gorm:"type:varchar(30);not null"`
	Rule       string         `gorm:"type:varchar(50);not null"`
	Reason     string         `gorm:"type:text"`
	Ratio      string         `gorm:"type:varchar(20)"`
	Experience string         `gorm:"type:varchar(20)"`
	Patch      datatypes.JSON `gorm:"type:jsonb"`
	Status     string         `gorm:"type:varchar(20);not null"` // persisted, failed
	Error      string         `gorm:"type:text"`
	CreatedAt  time.Time
}

func (RefundDecisionAudit) TableName() string {
	return "refund_decision_audits"
}
