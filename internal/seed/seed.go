// Package seed loads the demo leaderboard users.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

// DemoPlantID is planted for every demo tree. It absorbs 25 kg CO2 per year,
// matching the totals of the demo leaderboard.
const DemoPlantID = 1

// DemoLocation is the location recorded on demo contributions.
const DemoLocation = "Demo Forest"

// DemoUser is a demo profile and the number of trees it should hold.
type DemoUser struct {
	Name  string
	Email string
	Trees int
}

// DemoUsers are the default leaderboard members.
var DemoUsers = []DemoUser{
	{Name: "Sarah Green", Email: "sarah@example.com", Trees: 45},
	{Name: "Michael Forest", Email: "michael@example.com", Trees: 38},
	{Name: "Emma Woods", Email: "emma@example.com", Trees: 32},
	{Name: "David Nature", Email: "david@example.com", Trees: 28},
	{Name: "John Doe", Email: "john@example.com", Trees: 12},
	{Name: "Lisa Plant", Email: "lisa@example.com", Trees: 22},
	{Name: "Robert Earth", Email: "robert@example.com", Trees: 18},
	{Name: "Jennifer Leaf", Email: "jennifer@example.com", Trees: 15},
	{Name: "William Tree", Email: "william@example.com", Trees: 10},
	{Name: "Amanda Seed", Email: "amanda@example.com", Trees: 8},
}

// Result summarizes a seeding run.
type Result struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Trees   int `json:"trees"`
}

// Seeder registers demo users and plants their trees through the regular
// write path so totals always match the stored contributions.
type Seeder struct {
	auth    service.AuthService
	records service.RecordService
	logger  zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(auth service.AuthService, records service.RecordService, logger zerolog.Logger) *Seeder {
	return &Seeder{auth: auth, records: records, logger: logger}
}

// Seed registers each user with password and plants its trees. Users whose
// email is already registered are skipped untouched.
func (s *Seeder) Seed(ctx context.Context, users []DemoUser, password string) (Result, error) {
	var res Result
	for _, u := range users {
		profile, err := s.auth.Register(ctx, u.Email, password, u.Name)
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			s.logger.Debug().Str("email", u.Email).Msg("demo user exists, skipping")
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("register %s: %w", u.Email, err)
		}

		for i := 0; i < u.Trees; i++ {
			if _, _, err := s.records.RecordContribution(ctx, profile.ID, DemoPlantID, DemoLocation); err != nil {
				return res, fmt.Errorf("plant for %s: %w", u.Email, err)
			}
		}
		res.Created++
		res.Trees += u.Trees
		s.logger.Info().Str("email", u.Email).Int("trees", u.Trees).Msg("demo user seeded")
	}
	return res, nil
}
