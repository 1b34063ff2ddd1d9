package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile holds a user's identity and running impact totals.
// TreesPlanted and CO2Absorbed are derived from the user's contributions and
// are only ever written through the aggregator.
type Profile struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Email        string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	TreesPlanted int             `json:"trees_planted" gorm:"not null;default:0;index"`
	CO2Absorbed  float64         `json:"co2_absorbed" gorm:"not null;default:0"`
	MoneyDonated decimal.Decimal `json:"money_donated" gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewProfile returns a profile for a freshly registered user with all totals zeroed.
func NewProfile(name, email, passwordHash string, now time.Time) *Profile {
	return &Profile{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		TreesPlanted: 0,
		CO2Absorbed:  0,
		MoneyDonated: decimal.Zero,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
}

// DisplayName falls back to the email when no name was given.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
