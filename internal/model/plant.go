package model

// Plant is an entry of the static plant catalog.
type Plant struct {
	ID             int     `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	ScientificName string  `json:"scientific_name" yaml:"scientific_name"`
	CO2PerYear     float64 `json:"co2_per_year" yaml:"co2_per_year"`
	Description    string  `json:"description" yaml:"description"`
	Image          string  `json:"image" yaml:"image"`
}
