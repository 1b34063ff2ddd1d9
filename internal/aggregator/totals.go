package aggregator

import (
	"github.com/shopspring/decimal"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

// Totals are platform-wide sums over all profiles.
type Totals struct {
	Contributors int             `json:"contributors"`
	TreesPlanted int             `json:"trees_planted"`
	CO2Absorbed  float64         `json:"co2_absorbed"`
	MoneyDonated decimal.Decimal `json:"money_donated"`
}

// PlatformTotals sums the persisted totals of every profile.
func PlatformTotals(profiles []model.Profile) Totals {
	t := Totals{MoneyDonated: decimal.Zero}
	for _, p := range profiles {
		t.Contributors++
		t.TreesPlanted += p.TreesPlanted
		t.CO2Absorbed += p.CO2Absorbed
		t.MoneyDonated = t.MoneyDonated.Add(p.MoneyDonated)
	}
	return t
}
