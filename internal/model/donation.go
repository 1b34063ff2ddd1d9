package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation is one recorded monetary gift.
type Donation struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index:idx_donations_user_created,priority:1"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"index:idx_donations_user_created,priority:2"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
