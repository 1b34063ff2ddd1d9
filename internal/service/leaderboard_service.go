package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rahul-gound/fera-naturehelp/internal/cache"
	"github.com/rahul-gound/fera-naturehelp/internal/leaderboard"
	"github.com/rahul-gound/fera-naturehelp/internal/metrics"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// LeaderboardEntry is one ranked profile.
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	TreesPlanted int       `json:"trees_planted"`
	CO2Absorbed  float64   `json:"co2_absorbed"`
}

// LeaderboardService ranks profiles by trees planted.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	// RankOf ranks the user within the top fetchLimit profiles. ranked is
	// false when the user is not among them.
	RankOf(ctx context.Context, userID uuid.UUID) (rank int, ranked bool, err error)
}

type leaderboardService struct {
	store      repository.RecordStore
	cache      *cache.Client
	fetchLimit int
}

// NewLeaderboardService creates a new leaderboard service.
func NewLeaderboardService(store repository.RecordStore, cache *cache.Client, fetchLimit int) LeaderboardService {
	if fetchLimit <= 0 {
		fetchLimit = MaxLeaderboardLimit
	}
	return &leaderboardService{store: store, cache: cache, fetchLimit: fetchLimit}
}

// ClampLimit applies the default and maximum leaderboard sizes.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}

// Leaderboard returns the top limit profiles in rank order.
func (s *leaderboardService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	limit = ClampLimit(limit)

	key := leaderboardCacheKey(limit)
	var cached []LeaderboardEntry
	if s.cache.GetJSON(ctx, key, &cached) {
		metrics.RecordCacheLookup("leaderboard", true)
		return cached, nil
	}
	metrics.RecordCacheLookup("leaderboard", false)

	profiles, err := s.store.ListAllProfiles(ctx, limit)
	if err != nil {
		return nil, err
	}

	top := leaderboard.TopN(profiles, limit)
	entries := make([]LeaderboardEntry, 0, len(top))
	for i, p := range top {
		entries = append(entries, LeaderboardEntry{
			Rank:         i + 1,
			UserID:       p.ID,
			Name:         p.DisplayName(),
			TreesPlanted: p.TreesPlanted,
			CO2Absorbed:  p.CO2Absorbed,
		})
	}

	if err := s.cache.SetJSON(ctx, key, entries, leaderboardCacheTTL); err == nil {
		s.cache.Track(ctx, leaderboardKeySet, key)
	}
	return entries, nil
}

// RankOf returns the user's 1-based position.
func (s *leaderboardService) RankOf(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	profiles, err := s.store.ListAllProfiles(ctx, s.fetchLimit)
	if err != nil {
		return 0, false, err
	}
	rank, ok := leaderboard.RankOf(profiles, userID)
	return rank, ok, nil
}
