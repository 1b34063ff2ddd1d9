package aggregator

import (
	"math"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

// BreakdownEntry is one plant group of a user's contributions.
type BreakdownEntry struct {
	PlantName  string  `json:"plant_name"`
	Count      int     `json:"count"`
	CO2PerYear float64 `json:"co2_per_year"`
}

// TotalCO2 is the yearly CO2 of the whole group.
func (e BreakdownEntry) TotalCO2() float64 {
	return float64(e.Count) * e.CO2PerYear
}

// Breakdown groups contributions by snapshotted plant name in first-seen order.
type Breakdown struct {
	entries []BreakdownEntry
	index   map[string]int
	total   int
}

// PlantBreakdown groups contributions by PlantName. A group's CO2PerYear is
// taken from the first contribution seen for that name.
func PlantBreakdown(contributions []model.Contribution) Breakdown {
	b := Breakdown{index: make(map[string]int)}
	for _, c := range contributions {
		i, ok := b.index[c.PlantName]
		if !ok {
			i = len(b.entries)
			b.index[c.PlantName] = i
			b.entries = append(b.entries, BreakdownEntry{PlantName: c.PlantName, CO2PerYear: c.CO2PerYear})
		}
		b.entries[i].Count++
		b.total++
	}
	return b
}

// Get returns the group for a plant name.
func (b Breakdown) Get(name string) (BreakdownEntry, bool) {
	i, ok := b.index[name]
	if !ok {
		return BreakdownEntry{}, false
	}
	return b.entries[i], true
}

// Entries returns the groups in first-seen order.
func (b Breakdown) Entries() []BreakdownEntry {
	out := make([]BreakdownEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len is the number of distinct plant names.
func (b Breakdown) Len() int {
	return len(b.entries)
}

// Percent is the rounded share of a group among all contributions.
func (b Breakdown) Percent(name string) int {
	e, ok := b.Get(name)
	if !ok || b.total == 0 {
		return 0
	}
	return int(math.Floor(float64(e.Count)/float64(b.total)*100 + 0.5))
}

