package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCaseNumber struct {
	CaseNumber string
}

func (s ByCaseNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("case_number = ?", s.CaseNumber)
}

// ForCase scopes child rows (audits) to one case.
type ForCase struct {
	CaseID uuid.UUID
}

func (s ForCase) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("case_id = ?", s.CaseID)
}

type ByAccountID struct {
	AccountID uuid.UUID
}

func (s ByAccountID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_id = ?", s.AccountID)
}

// RefundApproved keeps cases whose refund was approved.
type RefundApproved struct{}

func (s RefundApproved) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("refund_approved = ?", true)
}
