package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahul-gound/fera-naturehelp/internal/aggregator"
	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/events"
	"github.com/rahul-gound/fera-naturehelp/internal/metrics"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// RecordContribution stores a planting of a catalog plant and applies it to
// the user's profile in the same transaction.
func (s *recordService) RecordContribution(ctx context.Context, userID uuid.UUID, plantID int, location string) (*model.Contribution, *model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "service.RecordContribution")
	defer span.End()

	plant, err := s.catalog.Get(plantID)
	if err != nil {
		return nil, nil, err
	}

	location = strings.TrimSpace(location)
	if location == "" {
		location = model.DefaultLocation
	}

	contribution := &model.Contribution{
		UserID:     userID,
		PlantID:    plant.ID,
		PlantName:  plant.Name,
		Location:   location,
		CO2PerYear: plant.CO2PerYear,
		CreatedAt:  s.now().UTC(),
	}

	// Get mutex for this user
	mutex := s.getMutex(userID)
	mutex.Lock()
	defer mutex.Unlock()

	start := time.Now()
	var updated *model.Profile
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.RecordStore) error {
		profile, err := tx.GetProfileForUpdate(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
			return err
		}

		updated, err = aggregator.RecordContribution(profile, *contribution)
		if err != nil {
			return err
		}
		if err := tx.AppendContribution(ctx, contribution); err != nil {
			return err
		}
		return tx.PutProfile(ctx, updated)
	})
	metrics.RecordWrite(metrics.KindContribution, err, time.Since(start).Seconds())
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Int("plant_id", plantID).
			Msg("record contribution failed")
		return nil, nil, err
	}

	metrics.RecordTreePlanted()
	s.invalidate(ctx, userID)
	event, eventErr := events.ContributionRecorded(contribution, updated)
	s.emit(ctx, event, eventErr)

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("plant", contribution.PlantName).
		Int("trees_planted", updated.TreesPlanted).
		Msg("contribution recorded")
	return contribution, updated, nil
}

// ListContributions lists the user's contributions, newest first.
func (s *recordService) ListContributions(ctx context.Context, userID uuid.UUID) ([]model.Contribution, error) {
	return s.store.ListContributions(ctx, userID)
}
