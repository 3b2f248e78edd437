package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string    `gorm:"type:varchar(255);not null"`
	ApprovedAt           *time.Time
	TotalRefundsApproved int `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (Account) TableName() string {
	return "accounts"
}
