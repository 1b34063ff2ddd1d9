package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul-gound/fera-naturehelp/internal/auth"
	"github.com/rahul-gound/fera-naturehelp/internal/catalog"
	"github.com/rahul-gound/fera-naturehelp/internal/config"
	"github.com/rahul-gound/fera-naturehelp/internal/db"
	"github.com/rahul-gound/fera-naturehelp/internal/handler"
	"github.com/rahul-gound/fera-naturehelp/internal/repository/local"
	"github.com/rahul-gound/fera-naturehelp/internal/seed"
	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

const testSecret = "router-test-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	logger := zerolog.Nop()

	sqlDB, err := db.OpenMemory(uuid.NewString(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := local.NewStore(sqlDB)
	plants, err := catalog.New()
	require.NoError(t, err)

	jwtService := auth.NewJWTService(testSecret)
	authService := service.NewAuthService(store, jwtService, auth.NewTokenStore(nil), nil, logger)
	recordService := service.NewRecordService(store, plants, nil, nil, logger)
	leaderboardService := service.NewLeaderboardService(store, nil, service.MaxLeaderboardLimit)
	statsService := service.NewStatsService(store)
	dashboardService := service.NewDashboardService(store, leaderboardService, nil)

	cfg := &config.Config{AppEnv: config.EnvDevelopment, JWTSecret: testSecret}
	e := echo.New()
	Register(e, cfg, logger, Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Plant:        handler.NewPlantHandler(plants),
		Contribution: handler.NewContributionHandler(recordService),
		Donation:     handler.NewDonationHandler(recordService),
		Dashboard:    handler.NewDashboardHandler(dashboardService, leaderboardService),
		Leaderboard:  handler.NewLeaderboardHandler(leaderboardService, statsService),
		Seed:         handler.NewSeedHandler(seed.NewSeeder(authService, recordService, logger)),
	})
	return e
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestRouter_Operational(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/me/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/api/me/dashboard", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PlantAndDonateFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/auth/register", `{"email":"Emma@Example.com","password":"secret1","name":"Emma Woods"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"trees_planted":0`)

	token := login(t, e, "emma@example.com", "secret1")

	rec = do(e, http.MethodPost, "/api/contributions", `{"plant_id":2,"location":"Goa"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(e, http.MethodPost, "/api/contributions", `{"plant_id":10}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"location":"Not specified"`)
	assert.Contains(t, rec.Body.String(), `"trees_planted":2`)

	rec = do(e, http.MethodPost, "/api/contributions", `{"plant_id":77}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/api/donations", `{"amount":"25"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(e, http.MethodPost, "/api/donations", `{"amount":"-1"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/me/dashboard", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var dashboard service.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.Equal(t, 2, dashboard.Profile.TreesPlanted)
	assert.Equal(t, 35.0, dashboard.Profile.CO2Absorbed)
	assert.Equal(t, "25", dashboard.Profile.MoneyDonated.String())
	require.NotNil(t, dashboard.Rank)
	assert.Equal(t, 1, *dashboard.Rank)
	assert.Len(t, dashboard.Breakdown, 2)
	assert.Len(t, dashboard.RecentActivity, 3)

	rec = do(e, http.MethodGet, "/api/me/rank", "", token)
	assert.JSONEq(t, `{"rank":1,"ranked":true}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/me/certificate", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Emma Woods")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "NatureHelp_Certificate_Emma_Woods.txt")

	rec = do(e, http.MethodGet, "/api/contributions", "", token)
	var contributions []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contributions))
	assert.Len(t, contributions, 2)
}

func TestRouter_SeededLeaderboard(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/seed/demo", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/leaderboard?limit=3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var top []service.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top, 3)
	assert.Equal(t, "Sarah Green", top[0].Name)
	assert.Equal(t, 45, top[0].TreesPlanted)
	assert.Equal(t, 1125.0, top[0].CO2Absorbed)

	rec = do(e, http.MethodGet, "/api/leaderboard/podium", "", "")
	var podium []service.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &podium))
	require.Len(t, podium, 3)
	assert.Equal(t, []string{"Michael Forest", "Sarah Green", "Emma Woods"}, []string{podium[0].Name, podium[1].Name, podium[2].Name})

	rec = do(e, http.MethodGet, "/api/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats service.PlatformStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 10, stats.Contributors)
	assert.Equal(t, 228, stats.TreesPlanted)
	assert.Equal(t, 5700.0, stats.CO2Absorbed)

	token := login(t, e, "amanda@example.com", handler.DemoPassword)
	rec = do(e, http.MethodGet, "/api/me/rank", "", token)
	assert.JSONEq(t, `{"rank":10,"ranked":true}`, rec.Body.String())
}
