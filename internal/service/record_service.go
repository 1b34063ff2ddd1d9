package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rahul-gound/fera-naturehelp/internal/cache"
	"github.com/rahul-gound/fera-naturehelp/internal/catalog"
	"github.com/rahul-gound/fera-naturehelp/internal/events"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
)

const (
	profileCacheTTL     = 5 * time.Minute
	leaderboardCacheTTL = time.Minute
	leaderboardKeySet   = "leaderboard:keys"
)

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

func leaderboardCacheKey(limit int) string {
	return fmt.Sprintf("leaderboard:%d", limit)
}

// EventEmitter queues activity events for publication.
type EventEmitter interface {
	Emit(ctx context.Context, event *events.Event)
}

// RecordService records contributions and donations and keeps the owner's
// profile totals in step with them.
type RecordService interface {
	RecordContribution(ctx context.Context, userID uuid.UUID, plantID int, location string) (*model.Contribution, *model.Profile, error)
	ListContributions(ctx context.Context, userID uuid.UUID) ([]model.Contribution, error)
	RecordDonation(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Donation, *model.Profile, error)
	ListDonations(ctx context.Context, userID uuid.UUID) ([]model.Donation, error)
}

type recordService struct {
	store   repository.RecordStore
	catalog *catalog.Catalog
	cache   *cache.Client
	emitter EventEmitter
	logger  zerolog.Logger
	now     func() time.Time
	// Mutex map for per-user locking
	userMutexes sync.Map
}

// NewRecordService creates a new record service. emitter may be nil.
func NewRecordService(
	store repository.RecordStore,
	catalog *catalog.Catalog,
	cache *cache.Client,
	emitter EventEmitter,
	logger zerolog.Logger,
) RecordService {
	return &recordService{
		store:   store,
		catalog: catalog,
		cache:   cache,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

// getMutex returns a mutex for a specific user ID.
func (s *recordService) getMutex(userID uuid.UUID) *sync.Mutex {
	value, _ := s.userMutexes.LoadOrStore(userID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// invalidate drops every cached view the write could have changed.
func (s *recordService) invalidate(ctx context.Context, userID uuid.UUID) {
	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	_ = s.cache.DeleteTracked(ctx, leaderboardKeySet)
}

func (s *recordService) emit(ctx context.Context, event *events.Event, err error) {
	if err != nil {
		s.logger.Warn().Err(err).Msg("build activity event")
		return
	}
	if s.emitter != nil {
		s.emitter.Emit(ctx, event)
	}
}
