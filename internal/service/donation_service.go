package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahul-gound/fera-naturehelp/internal/aggregator"
	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/events"
	"github.com/rahul-gound/fera-naturehelp/internal/impact"
	"github.com/rahul-gound/fera-naturehelp/internal/metrics"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

const donationScale = 2

// MaxDonationAmount is the largest single donation accepted, in dollars.
var MaxDonationAmount = decimal.NewFromInt(1_000_000_000)

// validateDonationAmount accepts positive amounts of whole cents up to
// MaxDonationAmount and returns them normalized to two decimal places.
func validateDonationAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(MaxDonationAmount) {
		return decimal.Decimal{}, apperrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(donationScale)) {
		return decimal.Decimal{}, apperrors.ErrInvalidAmount
	}
	return amount.Round(donationScale), nil
}

// DonationImpact is what a donation amount sponsors per year.
type DonationImpact struct {
	Amount decimal.Decimal `json:"amount"`
	Trees  int             `json:"trees"`
	CO2    float64         `json:"co2"`
	Oxygen float64         `json:"oxygen"`
}

// PreviewDonation computes the impact of a donation amount without recording it.
func PreviewDonation(amount decimal.Decimal) (DonationImpact, error) {
	amount, err := validateDonationAmount(amount)
	if err != nil {
		return DonationImpact{}, err
	}
	trees := impact.TreesFromDonation(amount.InexactFloat64())
	return DonationImpact{
		Amount: amount,
		Trees:  trees,
		CO2:    impact.CO2FromDonationTrees(trees),
		Oxygen: impact.OxygenFromDonationTrees(trees),
	}, nil
}

// RecordDonation stores a donation and applies it to the user's profile in
// the same transaction.
func (s *recordService) RecordDonation(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Donation, *model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "service.RecordDonation")
	defer span.End()

	amount, err := validateDonationAmount(amount)
	if err != nil {
		return nil, nil, err
	}

	donation := &model.Donation{
		UserID:    userID,
		Amount:    amount,
		CreatedAt: s.now().UTC(),
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

		updated, err = aggregator.RecordDonation(profile, *donation)
		if err != nil {
			return err
		}
		if err := tx.AppendDonation(ctx, donation); err != nil {
			return err
		}
		return tx.PutProfile(ctx, updated)
	})
	metrics.RecordWrite(metrics.KindDonation, err, time.Since(start).Seconds())
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("amount", amount.String()).
			Msg("record donation failed")
		return nil, nil, err
	}

	metrics.RecordDonation(amount.InexactFloat64())
	s.invalidate(ctx, userID)
	event, eventErr := events.DonationRecorded(donation, updated)
	s.emit(ctx, event, eventErr)

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("amount", amount.String()).
		Str("money_donated", updated.MoneyDonated.String()).
		Msg("donation recorded")
	return donation, updated, nil
}

// ListDonations lists the user's donations, newest first.
func (s *recordService) ListDonations(ctx context.Context, userID uuid.UUID) ([]model.Donation, error) {
	return s.store.ListDonations(ctx, userID)
}
