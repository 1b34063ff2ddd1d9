// Package local is the single-file SQLite record store, kept as a fallback
// for deployments without a hosted database.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store implements repository.RecordStore on SQLite.
type Store struct {
	db *sqlx.DB
	q  queryer
	tx bool
}

var _ repository.RecordStore = (*Store)(nil)

// NewStore wraps an open, migrated SQLite database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

// WithTransaction executes fn within a transaction. Nested calls join the
// outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, store repository.RecordStore) error) error {
	if s.tx {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, &Store{db: s.db, q: tx, tx: true}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetProfile finds a profile by user ID.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "local.GetProfile")
	defer span.End()

	sb := profileStruct.SelectFrom(profilesTable)
	sb.Where(sb.Equal("id", userID))
	return s.getProfile(ctx, sb.Build)
}

// GetProfileForUpdate is GetProfile: SQLite locks the whole database for the
// duration of a write transaction.
func (s *Store) GetProfileForUpdate(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.GetProfile(ctx, userID)
}

// FindProfileByEmail finds a profile by email.
func (s *Store) FindProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	sb := profileStruct.SelectFrom(profilesTable)
	sb.Where(sb.Equal("email", email))
	return s.getProfile(ctx, sb.Build)
}

func (s *Store) getProfile(ctx context.Context, build func() (string, []interface{})) (*model.Profile, error) {
	query, args := build()
	var row profileRow
	if err := s.q.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p := row.toModel()
	return &p, nil
}

// CreateProfile inserts a new profile.
func (s *Store) CreateProfile(ctx context.Context, profile *model.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}

	row := newProfileRow(profile)
	query, args := profileStruct.InsertInto(profilesTable, &row).Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create profile: %w", apperrors.ErrUserAlreadyExists)
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// PutProfile writes the profile's totals back.
func (s *Store) PutProfile(ctx context.Context, profile *model.Profile) error {
	ctx, span := tracing.StartSpan(ctx, "local.PutProfile")
	defer span.End()

	profile.UpdatedAt = time.Now().UTC()

	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update(profilesTable)
	ub.Set(
		ub.Assign("name", profile.Name),
		ub.Assign("trees_planted", profile.TreesPlanted),
		ub.Assign("co2_absorbed", profile.CO2Absorbed),
		ub.Assign("money_donated", profile.MoneyDonated),
		ub.Assign("updated_at", profile.UpdatedAt),
	)
	ub.Where(ub.Equal("id", profile.ID))

	query, args := ub.Build()
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// ListAllProfiles lists profiles ordered by trees planted, oldest first on ties.
func (s *Store) ListAllProfiles(ctx context.Context, limit int) ([]model.Profile, error) {
	ctx, span := tracing.StartSpan(ctx, "local.ListAllProfiles")
	defer span.End()

	sb := profileStruct.SelectFrom(profilesTable)
	sb.OrderBy("trees_planted DESC", "created_at ASC")
	if limit > 0 {
		sb.Limit(limit)
	}

	query, args := sb.Build()
	var rows []profileRow
	if err := s.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]model.Profile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.toModel())
	}
	return profiles, nil
}

// AppendContribution inserts a contribution record.
func (s *Store) AppendContribution(ctx context.Context, contribution *model.Contribution) error {
	ctx, span := tracing.StartSpan(ctx, "local.AppendContribution")
	defer span.End()

	if contribution.ID == uuid.Nil {
		contribution.ID = uuid.New()
	}
	if contribution.CreatedAt.IsZero() {
		contribution.CreatedAt = time.Now().UTC()
	}

	row := newContributionRow(contribution)
	query, args := contributionStruct.InsertInto(contributionsTable, &row).Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append contribution: %w", err)
	}
	return nil
}

// ListContributions lists a user's contributions, newest first.
func (s *Store) ListContributions(ctx context.Context, userID uuid.UUID) ([]model.Contribution, error) {
	ctx, span := tracing.StartSpan(ctx, "local.ListContributions")
	defer span.End()

	sb := contributionStruct.SelectFrom(contributionsTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Desc()

	query, args := sb.Build()
	var rows []contributionRow
	if err := s.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}

	contributions := make([]model.Contribution, 0, len(rows))
	for _, r := range rows {
		contributions = append(contributions, r.toModel())
	}
	return contributions, nil
}

// AppendDonation inserts a donation record.
func (s *Store) AppendDonation(ctx context.Context, donation *model.Donation) error {
	ctx, span := tracing.StartSpan(ctx, "local.AppendDonation")
	defer span.End()

	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}

	row := newDonationRow(donation)
	query, args := donationStruct.InsertInto(donationsTable, &row).Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append donation: %w", err)
	}
	return nil
}

// ListDonations lists a user's donations, newest first.
func (s *Store) ListDonations(ctx context.Context, userID uuid.UUID) ([]model.Donation, error) {
	ctx, span := tracing.StartSpan(ctx, "local.ListDonations")
	defer span.End()

	sb := donationStruct.SelectFrom(donationsTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Desc()

	query, args := sb.Build()
	var rows []donationRow
	if err := s.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}

	donations := make([]model.Donation, 0, len(rows))
	for _, r := range rows {
		donations = append(donations, r.toModel())
	}
	return donations, nil
}

// isUniqueViolation reports whether err is SQLite rejecting a duplicate
// value in a UNIQUE column. The only such column is profiles.email.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
