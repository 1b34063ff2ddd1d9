// Package activity merges a user's contributions and donations into one
// newest-first timeline.
package activity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

// Kind distinguishes timeline entries.
type Kind string

const (
	KindPlant    Kind = "plant"
	KindDonation Kind = "donation"
)

// Event is one entry of the activity timeline.
type Event struct {
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildFeed maps contributions then donations to events and sorts them newest
// first. Events with equal timestamps keep that concatenation order.
func BuildFeed(contributions []model.Contribution, donations []model.Donation) []Event {
	events := make([]Event, 0, len(contributions)+len(donations))
	for _, c := range contributions {
		events = append(events, Event{
			Kind:      KindPlant,
			Text:      "Planted a " + c.PlantName,
			Location:  c.Location,
			Timestamp: c.CreatedAt,
		})
	}
	for _, d := range donations {
		events = append(events, Event{
			Kind:      KindDonation,
			Text:      "Donated $" + d.Amount.String(),
			Timestamp: d.CreatedAt,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events
}

// RelativeLabel renders the age of ts as seen at now, using whole elapsed days
// with no calendar rounding. Plurals are not adjusted ("1 weeks ago").
func RelativeLabel(ts, now time.Time) string {
	days := int(math.Floor(now.Sub(ts).Hours() / 24))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}
