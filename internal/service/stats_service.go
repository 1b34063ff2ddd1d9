package service

import (
	"context"

	"github.com/rahul-gound/fera-naturehelp/internal/aggregator"
	"github.com/rahul-gound/fera-naturehelp/internal/impact"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
)

// PlatformStats are the homepage totals across every profile.
type PlatformStats struct {
	aggregator.Totals
	Oxygen float64 `json:"oxygen"`
	Water  float64 `json:"water"`
}

// StatsService computes platform-wide totals.
type StatsService interface {
	Platform(ctx context.Context) (*PlatformStats, error)
}

type statsService struct {
	store repository.RecordStore
}

// NewStatsService creates a new stats service.
func NewStatsService(store repository.RecordStore) StatsService {
	return &statsService{store: store}
}

// Platform sums every profile. Water here is derived from CO2.
func (s *statsService) Platform(ctx context.Context) (*PlatformStats, error) {
	profiles, err := s.store.ListAllProfiles(ctx, 0)
	if err != nil {
		return nil, err
	}
	totals := aggregator.PlatformTotals(profiles)
	derived := impact.ForCO2(totals.CO2Absorbed)
	return &PlatformStats{
		Totals: totals,
		Oxygen: derived.Oxygen,
		Water:  derived.Water,
	}, nil
}
