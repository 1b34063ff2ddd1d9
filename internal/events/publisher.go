// Package events publishes activity events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

const (
	TypeContributionRecorded = "contribution.recorded"
	TypeDonationRecorded     = "donation.recorded"
)

// Event is the envelope written to the activity topic.
type Event struct {
	EventType string          `json:"event_type"`
	UserID    string          `json:"user_id"`
	RecordID  string          `json:"record_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Totals    Totals          `json:"totals"`
	Timestamp time.Time       `json:"timestamp"`
}

// Totals is the user's profile after the write.
type Totals struct {
	TreesPlanted int     `json:"trees_planted"`
	CO2Absorbed  float64 `json:"co2_absorbed"`
	MoneyDonated string  `json:"money_donated"`
}

// Publisher emits activity events.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// ContributionRecorded builds the event for a stored contribution.
func ContributionRecorded(c *model.Contribution, p *model.Profile) (*Event, error) {
	return newEvent(TypeContributionRecorded, c.ID.String(), c, p, c.CreatedAt)
}

// DonationRecorded builds the event for a stored donation.
func DonationRecorded(d *model.Donation, p *model.Profile) (*Event, error) {
	return newEvent(TypeDonationRecorded, d.ID.String(), d, p, d.CreatedAt)
}

func newEvent(eventType, recordID string, record interface{}, p *model.Profile, at time.Time) (*Event, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return &Event{
		EventType: eventType,
		UserID:    p.ID.String(),
		RecordID:  recordID,
		Data:      data,
		Totals: Totals{
			TreesPlanted: p.TreesPlanted,
			CO2Absorbed:  p.CO2Absorbed,
			MoneyDonated: p.MoneyDonated.String(),
		},
		Timestamp: at.UTC(),
	}, nil
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
