package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

// RecordStore persists profiles and the contribution and donation records
// their totals are derived from. Implementations are interchangeable.
type RecordStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	// GetProfileForUpdate reads a profile and locks it until the surrounding
	// transaction ends.
	GetProfileForUpdate(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	FindProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	CreateProfile(ctx context.Context, profile *model.Profile) error
	PutProfile(ctx context.Context, profile *model.Profile) error
	// ListAllProfiles returns profiles by TreesPlanted descending. limit <= 0 returns all.
	ListAllProfiles(ctx context.Context, limit int) ([]model.Profile, error)

	AppendContribution(ctx context.Context, contribution *model.Contribution) error
	ListContributions(ctx context.Context, userID uuid.UUID) ([]model.Contribution, error)
	AppendDonation(ctx context.Context, donation *model.Donation) error
	ListDonations(ctx context.Context, userID uuid.UUID) ([]model.Donation, error)

	// WithTransaction executes fn within a transaction. A returned error rolls
	// back every write made through the store passed to fn.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, store RecordStore) error) error
}

type recordStore struct {
	db *gorm.DB
}

// NewRecordStore builds a GORM-backed record store.
func NewRecordStore(db *gorm.DB) RecordStore {
	return &recordStore{db: db}
}

// WithTransaction executes a function within a database transaction.
func (r *recordStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, store RecordStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := &recordStore{db: tx}
		return fn(ctx, txStore)
	})
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
