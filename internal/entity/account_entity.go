package entity

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	Id   uuid.UUID
	Name string
	// First approved activity. Nil when the account was never approved.
	ApprovedAt           *time.Time
	TotalRefundsApproved int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// FirstActivityDate is ApprovedAt reduced to its UTC calendar date.
func (a *Account) FirstActivityDate() *time.Time {
	if a == nil || a.ApprovedAt == nil {
		return nil
	}
	t := a.ApprovedAt.UTC()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
