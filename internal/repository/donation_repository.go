package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// AppendDonation inserts a donation record.
func (r *recordStore) AppendDonation(ctx context.Context, donation *model.Donation) error {
	ctx, span := tracing.StartSpan(ctx, "repository.AppendDonation")
	defer span.End()

	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return fmt.Errorf("append donation: %w", err)
	}
	return nil
}

// ListDonations lists a user's donations, newest first.
func (r *recordStore) ListDonations(ctx context.Context, userID uuid.UUID) ([]model.Donation, error) {
	ctx, span := tracing.StartSpan(ctx, "repository.ListDonations")
	defer span.End()

	var donations []model.Donation
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}
