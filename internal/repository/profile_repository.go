package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// GetProfile finds a profile by user ID.
func (r *recordStore) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "repository.GetProfile")
	defer span.End()

	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err, "get profile")
	}
	return &profile, nil
}

// GetProfileForUpdate finds a profile by user ID with row-level lock for update.
func (r *recordStore) GetProfileForUpdate(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "repository.GetProfileForUpdate")
	defer span.End()

	var profile model.Profile
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err, "get profile for update")
	}
	return &profile, nil
}

// FindProfileByEmail finds a profile by email.
func (r *recordStore) FindProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, notFound(err, "find profile by email")
	}
	return &profile, nil
}

// CreateProfile inserts a new profile.
func (r *recordStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create profile: %w", apperrors.ErrUserAlreadyExists)
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// PutProfile writes the profile's totals back.
func (r *recordStore) PutProfile(ctx context.Context, profile *model.Profile) error {
	ctx, span := tracing.StartSpan(ctx, "repository.PutProfile")
	defer span.End()

	profile.UpdatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"name":          profile.Name,
			"trees_planted": profile.TreesPlanted,
			"co2_absorbed":  profile.CO2Absorbed,
			"money_donated": profile.MoneyDonated,
			"updated_at":    profile.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// ListAllProfiles lists profiles ordered by trees planted, oldest first on ties.
func (r *recordStore) ListAllProfiles(ctx context.Context, limit int) ([]model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "repository.ListAllProfiles")
	defer span.End()

	q := r.db.WithContext(ctx).Order("trees_planted DESC").Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var profiles []model.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}
