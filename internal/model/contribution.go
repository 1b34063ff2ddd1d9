package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLocation is stored when a contribution is submitted without a location.
const DefaultLocation = "Not specified"

// Contribution is one recorded tree planting.
// PlantName and CO2PerYear are snapshots of the catalog entry at planting time
// and must not be re-derived from the catalog later.
type Contribution struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index:idx_contributions_user_created,priority:1"`
	PlantID    int       `json:"plant_id" gorm:"not null"`
	PlantName  string    `json:"plant_name" gorm:"size:255;not null"`
	Location   string    `json:"location" gorm:"size:255"`
	CO2PerYear float64   `json:"co2_per_year" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_contributions_user_created,priority:2"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Contribution) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
