// Package catalog holds the immutable plant reference data.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

//go:embed plants.yaml
var plantsYAML []byte

// Catalog is a read-only, id-indexed list of plants.
type Catalog struct {
	plants []model.Plant
	byID   map[int]model.Plant
}

// New loads the embedded plant catalog.
func New() (*Catalog, error) {
	return Load(plantsYAML)
}

// Load parses a YAML plant list. Ids must be positive and unique.
func Load(data []byte) (*Catalog, error) {
	var plants []model.Plant
	if err := yaml.Unmarshal(data, &plants); err != nil {
		return nil, fmt.Errorf("parse plant catalog: %w", err)
	}

	byID := make(map[int]model.Plant, len(plants))
	for _, p := range plants {
		if p.ID <= 0 {
			return nil, fmt.Errorf("plant %q: id must be positive", p.Name)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("plant %q: duplicate id %d", p.Name, p.ID)
		}
		if p.CO2PerYear < 0 {
			return nil, fmt.Errorf("plant %q: negative co2_per_year", p.Name)
		}
		byID[p.ID] = p
	}
	return &Catalog{plants: plants, byID: byID}, nil
}

// List returns all plants in catalog order.
func (c *Catalog) List() []model.Plant {
	out := make([]model.Plant, len(c.plants))
	copy(out, c.plants)
	return out
}

// Get looks up a plant by id.
func (c *Catalog) Get(id int) (model.Plant, error) {
	p, ok := c.byID[id]
	if !ok {
		return model.Plant{}, apperrors.ErrPlantNotFound
	}
	return p, nil
}
