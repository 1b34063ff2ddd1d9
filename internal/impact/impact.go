// Package impact converts planting and donation quantities into derived
// ecological metrics. Every function is pure; inputs are expected to be
// non-negative finite numbers and callers validate before calling.
package impact

import "math"

const (
	// OxygenPerKgCO2 is kg of oxygen released per kg of CO2 fixed.
	OxygenPerKgCO2 = 2.92
	// WaterPerTree is liters of water conserved per tree per year.
	WaterPerTree = 400
	// WaterPerKgCO2 is liters of water conserved per kg of CO2 absorbed.
	WaterPerKgCO2 = 16
	// DollarsPerTree is the donation that sponsors one tree.
	DollarsPerTree = 10
	// DefaultCO2PerTree is kg of CO2 a sponsored tree absorbs per year.
	DefaultCO2PerTree = 25
	// OxygenPerSponsoredTree is kg of oxygen per sponsored tree per year.
	OxygenPerSponsoredTree = 73
)

// Impact bundles the metrics shown for a quantity of trees.
type Impact struct {
	CO2    float64 `json:"co2"`
	Oxygen float64 `json:"oxygen"`
	Water  float64 `json:"water"`
}

// OxygenFromCO2 returns round(co2Kg * 2.92).
func OxygenFromCO2(co2Kg float64) float64 {
	return round(co2Kg * OxygenPerKgCO2)
}

// WaterFromTrees is the personal dashboard water estimate.
func WaterFromTrees(treeCount int) float64 {
	return float64(treeCount) * WaterPerTree
}

// WaterFromCO2 is the platform-wide water estimate. It intentionally differs
// from WaterFromTrees; the two are kept apart until a product decision unifies them.
func WaterFromCO2(co2Kg float64) float64 {
	return round(co2Kg * WaterPerKgCO2)
}

// TreesFromDonation returns the number of whole trees a donation sponsors.
func TreesFromDonation(amountUSD float64) int {
	return int(math.Floor(amountUSD / DollarsPerTree))
}

// CO2FromDonationTrees returns the yearly CO2 absorbed by sponsored trees.
func CO2FromDonationTrees(trees int) float64 {
	return float64(trees) * DefaultCO2PerTree
}

// OxygenFromDonationTrees returns the yearly oxygen of sponsored trees.
func OxygenFromDonationTrees(trees int) float64 {
	return float64(trees) * OxygenPerSponsoredTree
}

// ForCO2 derives oxygen and water from an absorbed CO2 total using the
// platform-wide water rate.
func ForCO2(co2 float64) Impact {
	return Impact{
		CO2:    co2,
		Oxygen: OxygenFromCO2(co2),
		Water:  WaterFromCO2(co2),
	}
}

// round matches Math.round: halves go toward positive infinity.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}
