// Package aggregator keeps Profile totals consistent with the stream of
// contributions and donations and derives the per-user statistics that are
// not persisted.
package aggregator

import (
	"math"
	"time"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

const monthLength = 30 * 24 * time.Hour

// RecordContribution returns a copy of p with one more tree and the
// contribution's snapshotted CO2 added. The caller applies each contribution
// exactly once.
func RecordContribution(p *model.Profile, c model.Contribution) (*model.Profile, error) {
	if p == nil {
		return nil, apperrors.ErrMissingProfile
	}
	next := *p
	next.TreesPlanted++
	next.CO2Absorbed += c.CO2PerYear
	return &next, nil
}

// RecordDonation returns a copy of p with the donation amount added.
func RecordDonation(p *model.Profile, d model.Donation) (*model.Profile, error) {
	if p == nil {
		return nil, apperrors.ErrMissingProfile
	}
	next := *p
	next.MoneyDonated = next.MoneyDonated.Add(d.Amount)
	return &next, nil
}

// MonthsActive counts started 30-day periods since sign-up, never less than 1.
func MonthsActive(p model.Profile, now time.Time) int {
	elapsed := now.Sub(p.CreatedAt)
	months := int(math.Ceil(float64(elapsed) / float64(monthLength)))
	if months < 1 {
		return 1
	}
	return months
}

// CheckConsistency reports ErrMissingProfile when a user has recorded
// activity but no profile, and ErrProfileNotFound when there is neither.
func CheckConsistency(p *model.Profile, contributions []model.Contribution, donations []model.Donation) error {
	if p != nil {
		return nil
	}
	if len(contributions) > 0 || len(donations) > 0 {
		return apperrors.ErrMissingProfile
	}
	return apperrors.ErrProfileNotFound
}
