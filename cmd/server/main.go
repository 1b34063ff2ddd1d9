package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	_ "github.com/rahul-gound/fera-naturehelp/docs" // swagger docs

	"github.com/rahul-gound/fera-naturehelp/internal/bootstrap"
	"github.com/rahul-gound/fera-naturehelp/internal/cache"
	"github.com/rahul-gound/fera-naturehelp/internal/config"
	"github.com/rahul-gound/fera-naturehelp/internal/handler"
	"github.com/rahul-gound/fera-naturehelp/internal/logging"
	"github.com/rahul-gound/fera-naturehelp/internal/router"
	"github.com/rahul-gound/fera-naturehelp/internal/seed"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

// @title NatureHelp API
// @version 1.0
// @description Tree planting and donation tracking with impact dashboards and a public leaderboard.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("tracing init")
	}

	store, closeStore, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache")
	}

	dispatcher := bootstrap.NewDispatcher(cfg, logger)

	services, err := bootstrap.NewServices(cfg, store, cacheClient, dispatcher, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("service init")
	}

	// Initialize handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(services.Auth),
		Plant:        handler.NewPlantHandler(services.Catalog),
		Contribution: handler.NewContributionHandler(services.Records),
		Donation:     handler.NewDonationHandler(services.Records),
		Dashboard:    handler.NewDashboardHandler(services.Dashboard, services.Leaderboard),
		Leaderboard:  handler.NewLeaderboardHandler(services.Leaderboard, services.Stats),
		Seed:         handler.NewSeedHandler(seed.NewSeeder(services.Auth, services.Records, logger)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, logger, handlers)

	logger.Info().Str("url", swaggerURL(cfg.SwaggerHost)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Str("env", cfg.AppEnv).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := dispatcher.Close(); err != nil {
		logger.Error().Err(err).Msg("event publisher close")
	}
	if err := cacheClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close")
	}
	if err := closeStore(); err != nil {
		logger.Error().Err(err).Msg("database close")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("tracing shutdown")
	}
}

// swaggerURL builds the docs URL. SwaggerHost may already include a scheme.
func swaggerURL(host string) string {
	if host == "" {
		// For docker-compose: container listens on 8080, mapped to 5000 externally
		return "http://localhost:5000/swagger/index.html"
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host + "/swagger/index.html"
	}
	return "http://" + host + "/swagger/index.html"
}
