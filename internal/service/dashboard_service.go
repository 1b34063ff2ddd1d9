package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rahul-gound/fera-naturehelp/internal/activity"
	"github.com/rahul-gound/fera-naturehelp/internal/aggregator"
	"github.com/rahul-gound/fera-naturehelp/internal/cache"
	"github.com/rahul-gound/fera-naturehelp/internal/certificate"
	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/impact"
	"github.com/rahul-gound/fera-naturehelp/internal/metrics"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// RecentActivityLimit is how many feed entries the dashboard shows.
const RecentActivityLimit = 10

// BreakdownItem is one plant group on the dashboard.
type BreakdownItem struct {
	PlantName  string  `json:"plant_name"`
	Count      int     `json:"count"`
	CO2PerYear float64 `json:"co2_per_year"`
	TotalCO2   float64 `json:"total_co2"`
	Percent    int     `json:"percent"`
}

// FeedItem is an activity entry with its relative age.
type FeedItem struct {
	activity.Event
	Label string `json:"label"`
}

// Dashboard is the personal impact summary.
type Dashboard struct {
	Profile        model.Profile   `json:"profile"`
	Rank           *int            `json:"rank"`
	MonthsActive   int             `json:"months_active"`
	Impact         impact.Impact   `json:"impact"`
	Breakdown      []BreakdownItem `json:"breakdown"`
	RecentActivity []FeedItem      `json:"recent_activity"`
}

// Certificate is a rendered certificate of appreciation.
type Certificate struct {
	FileName string
	Body     string
}

// DashboardService assembles per-user views from stored records.
type DashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	Profile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	Certificate(ctx context.Context, userID uuid.UUID) (*Certificate, error)
}

type dashboardService struct {
	store       repository.RecordStore
	leaderboard LeaderboardService
	cache       *cache.Client
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store repository.RecordStore, leaderboard LeaderboardService, cache *cache.Client) DashboardService {
	return &dashboardService{
		store:       store,
		leaderboard: leaderboard,
		cache:       cache,
		now:         time.Now,
	}
}

// Profile returns the user's profile, from cache when possible.
func (s *dashboardService) Profile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	// Try cache first
	var cached model.Profile
	if s.cache.GetJSON(ctx, profileCacheKey(userID), &cached) {
		metrics.RecordCacheLookup("profile", true)
		return &cached, nil
	}
	metrics.RecordCacheLookup("profile", false)

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, profileCacheKey(userID), profile, profileCacheTTL)
	return profile, nil
}

// loadConsistent fetches the profile with the user's records and fails with
// ErrMissingProfile when records exist without a profile.
func (s *dashboardService) loadConsistent(ctx context.Context, userID uuid.UUID) (*model.Profile, []model.Contribution, []model.Donation, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, nil, nil, err
	}

	contributions, err := s.store.ListContributions(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	donations, err := s.store.ListDonations(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := aggregator.CheckConsistency(profile, contributions, donations); err != nil {
		return nil, nil, nil, err
	}
	return profile, contributions, donations, nil
}

// Dashboard builds the user's personal impact summary.
func (s *dashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	ctx, span := tracing.StartSpan(ctx, "service.Dashboard")
	defer span.End()

	profile, contributions, donations, err := s.loadConsistent(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := &Dashboard{
		Profile:      *profile,
		MonthsActive: aggregator.MonthsActive(*profile, now),
		Impact: impact.Impact{
			CO2:    profile.CO2Absorbed,
			Oxygen: impact.OxygenFromCO2(profile.CO2Absorbed),
			Water:  impact.WaterFromTrees(profile.TreesPlanted),
		},
		Breakdown:      []BreakdownItem{},
		RecentActivity: []FeedItem{},
	}

	rank, ranked, err := s.leaderboard.RankOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ranked {
		d.Rank = &rank
	}

	breakdown := aggregator.PlantBreakdown(contributions)
	for _, e := range breakdown.Entries() {
		d.Breakdown = append(d.Breakdown, BreakdownItem{
			PlantName:  e.PlantName,
			Count:      e.Count,
			CO2PerYear: e.CO2PerYear,
			TotalCO2:   e.TotalCO2(),
			Percent:    breakdown.Percent(e.PlantName),
		})
	}

	feed := activity.BuildFeed(contributions, donations)
	if len(feed) > RecentActivityLimit {
		feed = feed[:RecentActivityLimit]
	}
	for _, e := range feed {
		d.RecentActivity = append(d.RecentActivity, FeedItem{Event: e, Label: activity.RelativeLabel(e.Timestamp, now)})
	}
	return d, nil
}

// Certificate renders the user's certificate of appreciation.
func (s *dashboardService) Certificate(ctx context.Context, userID uuid.UUID) (*Certificate, error) {
	profile, _, _, err := s.loadConsistent(ctx, userID)
	if err != nil {
		return nil, err
	}
	name := profile.DisplayName()
	return &Certificate{
		FileName: certificate.FileName(name),
		Body:     certificate.Render(name, profile.TreesPlanted, profile.CO2Absorbed, s.now()),
	}, nil
}
