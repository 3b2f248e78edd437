package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Case struct {
	ID                        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID                 *uuid.UUID      `gorm:"type:uuid;index"`
	CaseNumber                string          `gorm:"type:varchar(30);uniqueIndex"`
	Subject                   string          `gorm:"type:text"`
	Type                      string          `gorm:"type:varchar(50)"`
	AmountRefunded            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RefundApproved            bool            `gorm:"not null;default:false"`
	RefundDecisionOutcome     string          `gorm:"type:varchar(30)"`
	RefundDecisionReason      string          `gorm:"type:varchar(255)"`
	RefundRequestSlsRequested int             `gorm:"column:refund_request_sls_requested;not null;default:0"`
	RefundRequestTotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RefundRequestNotes        string          `gorm:"type:text"`
	RefundsApproved           int             `gorm:"not null;default:0"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
	DeletedAt                 gorm.DeletedAt `gorm:"index"`

	// Relations
	Account *Account `gorm:"foreignKey:AccountID"`
}

func (Case) TableName() string {
	return "cases"
}
