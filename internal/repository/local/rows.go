package local

import (
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/shopspring/decimal"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

const (
	profilesTable      = "profiles"
	contributionsTable = "contributions"
	donationsTable     = "donations"
)

type profileRow struct {
	ID           uuid.UUID       `db:"id"`
	Name         string          `db:"name"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	TreesPlanted int             `db:"trees_planted"`
	CO2Absorbed  float64         `db:"co2_absorbed"`
	MoneyDonated decimal.Decimal `db:"money_donated"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type contributionRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	PlantID    int       `db:"plant_id"`
	PlantName  string    `db:"plant_name"`
	Location   string    `db:"location"`
	CO2PerYear float64   `db:"co2_per_year"`
	CreatedAt  time.Time `db:"created_at"`
}

type donationRow struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}

var (
	profileStruct      = sqlbuilder.NewStruct(new(profileRow)).For(sqlbuilder.SQLite)
	contributionStruct = sqlbuilder.NewStruct(new(contributionRow)).For(sqlbuilder.SQLite)
	donationStruct     = sqlbuilder.NewStruct(new(donationRow)).For(sqlbuilder.SQLite)
)

func newProfileRow(p *model.Profile) profileRow {
	return profileRow{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		TreesPlanted: p.TreesPlanted,
		CO2Absorbed:  p.CO2Absorbed,
		MoneyDonated: p.MoneyDonated,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func (r profileRow) toModel() model.Profile {
	return model.Profile{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		TreesPlanted: r.TreesPlanted,
		CO2Absorbed:  r.CO2Absorbed,
		MoneyDonated: r.MoneyDonated,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func newContributionRow(c *model.Contribution) contributionRow {
	return contributionRow{
		ID:         c.ID,
		UserID:     c.UserID,
		PlantID:    c.PlantID,
		PlantName:  c.PlantName,
		Location:   c.Location,
		CO2PerYear: c.CO2PerYear,
		CreatedAt:  c.CreatedAt.UTC(),
	}
}

func (r contributionRow) toModel() model.Contribution {
	return model.Contribution{
		ID:         r.ID,
		UserID:     r.UserID,
		PlantID:    r.PlantID,
		PlantName:  r.PlantName,
		Location:   r.Location,
		CO2PerYear: r.CO2PerYear,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func newDonationRow(d *model.Donation) donationRow {
	return donationRow{
		ID:        d.ID,
		UserID:    d.UserID,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r donationRow) toModel() model.Donation {
	return model.Donation{
		ID:        r.ID,
		UserID:    r.UserID,
		Amount:    r.Amount,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
