package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// AppendContribution inserts a contribution record.
func (r *recordStore) AppendContribution(ctx context.Context, contribution *model.Contribution) error {
	ctx, span := tracing.StartSpan(ctx, "repository.AppendContribution")
	defer span.End()

	if contribution.ID == uuid.Nil {
		contribution.ID = uuid.New()
	}
	if contribution.CreatedAt.IsZero() {
		contribution.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(contribution).Error; err != nil {
		return fmt.Errorf("append contribution: %w", err)
	}
	return nil
}

// ListContributions lists a user's contributions, newest first.
func (r *recordStore) ListContributions(ctx context.Context, userID uuid.UUID) ([]model.Contribution, error) {
	ctx, span := tracing.StartSpan(ctx, "repository.ListContributions")
	defer span.End()

	var contributions []model.Contribution
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return contributions, nil
}
