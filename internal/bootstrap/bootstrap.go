// Package bootstrap builds the store, services and event pipeline shared by
// the server and the seed command.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rahul-gound/fera-naturehelp/internal/auth"
	"github.com/rahul-gound/fera-naturehelp/internal/cache"
	"github.com/rahul-gound/fera-naturehelp/internal/catalog"
	"github.com/rahul-gound/fera-naturehelp/internal/config"
	"github.com/rahul-gound/fera-naturehelp/internal/db"
	"github.com/rahul-gound/fera-naturehelp/internal/events"
	"github.com/rahul-gound/fera-naturehelp/internal/metrics"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
	"github.com/rahul-gound/fera-naturehelp/internal/repository/local"
	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

// OpenStore opens the record store selected by cfg.StoreBackend. The returned
// function releases the underlying connection.
func OpenStore(cfg *config.Config, logger zerolog.Logger) (repository.RecordStore, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendLocal:
		sqlDB, err := db.OpenLocal(cfg.LocalDBPath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.LocalDBPath).Msg("using local sqlite store")
		return local.NewStore(sqlDB), sqlDB.Close, nil

	case config.BackendGorm:
		gormDB, err := db.NewGorm(cfg.DBDriver, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(gormDB, cfg.ResetDB, logger); err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("gorm sql handle: %w", err)
		}
		logger.Info().Str("driver", cfg.DBDriver).Msg("using gorm store")
		return repository.NewRecordStore(gormDB), sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewDispatcher publishes activity events to Kafka when brokers are
// configured and discards them otherwise.
func NewDispatcher(cfg *config.Config, logger zerolog.Logger) *events.Dispatcher {
	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing activity events")
	}
	return events.NewDispatcher(publisher, logger, metrics.RecordEventPublish)
}

// Services are the application services built over one store.
type Services struct {
	Catalog     *catalog.Catalog
	Auth        service.AuthService
	Records     service.RecordService
	Leaderboard service.LeaderboardService
	Stats       service.StatsService
	Dashboard   service.DashboardService
}

// NewServices wires every service. cacheClient and emitter may be nil.
func NewServices(cfg *config.Config, store repository.RecordStore, cacheClient *cache.Client, emitter service.EventEmitter, logger zerolog.Logger) (*Services, error) {
	plants, err := catalog.New()
	if err != nil {
		return nil, err
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	leaderboard := service.NewLeaderboardService(store, cacheClient, cfg.LeaderboardFetchLimit)

	return &Services{
		Catalog:     plants,
		Auth:        service.NewAuthService(store, jwtService, tokenStore, cacheClient, logger),
		Records:     service.NewRecordService(store, plants, cacheClient, emitter, logger),
		Leaderboard: leaderboard,
		Stats:       service.NewStatsService(store),
		Dashboard:   service.NewDashboardService(store, leaderboard, cacheClient),
	}, nil
}
