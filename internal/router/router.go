package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/rahul-gound/fera-naturehelp/internal/auth"
	"github.com/rahul-gound/fera-naturehelp/internal/config"
	"github.com/rahul-gound/fera-naturehelp/internal/handler"
	"github.com/rahul-gound/fera-naturehelp/internal/tracing"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Plant        *handler.PlantHandler
	Contribution *handler.ContributionHandler
	Donation     *handler.DonationHandler
	Dashboard    *handler.DashboardHandler
	Leaderboard  *handler.LeaderboardHandler
	// Seed is mounted only in development; nil skips it.
	Seed *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, logger zerolog.Logger, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(otelecho.Middleware(tracing.ServiceName))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	api.GET("/plants", h.Plant.ListPlants)
	api.GET("/plants/:id", h.Plant.GetPlant)
	api.GET("/leaderboard", h.Leaderboard.GetLeaderboard)
	api.GET("/leaderboard/podium", h.Leaderboard.GetPodium)
	api.GET("/stats", h.Leaderboard.GetStats)
	api.GET("/donations/impact", h.Donation.PreviewImpact)

	if h.Seed != nil && cfg.AppEnv == config.EnvDevelopment {
		api.POST("/seed/demo", h.Seed.SeedDemo)
	}

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), h.Auth.RejectRevoked)

	// Contribution routes
	secured.POST("/contributions", h.Contribution.CreateContribution)
	secured.GET("/contributions", h.Contribution.ListContributions)

	// Donation routes
	secured.POST("/donations", h.Donation.CreateDonation)
	secured.GET("/donations", h.Donation.ListDonations)

	// Personal views
	secured.GET("/me", h.Dashboard.GetProfile)
	secured.GET("/me/dashboard", h.Dashboard.GetDashboard)
	secured.GET("/me/rank", h.Dashboard.GetRank)
	secured.GET("/me/certificate", h.Dashboard.DownloadCertificate)
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
