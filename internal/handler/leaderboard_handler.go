package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

const podiumSize = 3

// LeaderboardHandler handles public ranking endpoints.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	statsService       service.StatsService
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(leaderboardService service.LeaderboardService, statsService service.StatsService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		statsService:       statsService,
	}
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {array} service.LeaderboardEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid limit",
				Code:  "INVALID_LIMIT",
			})
		}
		limit = n
	}

	entries, err := h.leaderboardService.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetPodium godoc
// @Summary Get the top three in podium order
// @Description Entries are ordered second, first, third. Missing places are omitted.
// @Tags leaderboard
// @Produce json
// @Success 200 {array} service.LeaderboardEntry
// @Failure 500 {object} errors.ErrorResponse
// @Router /leaderboard/podium [get]
func (h *LeaderboardHandler) GetPodium(c echo.Context) error {
	entries, err := h.leaderboardService.Leaderboard(c.Request().Context(), podiumSize)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, podium(entries))
}

func podium(entries []service.LeaderboardEntry) []service.LeaderboardEntry {
	out := make([]service.LeaderboardEntry, 0, podiumSize)
	for _, i := range []int{1, 0, 2} {
		if i < len(entries) {
			out = append(out, entries[i])
		}
	}
	return out
}

// GetStats godoc
// @Summary Get platform totals
// @Tags stats
// @Produce json
// @Success 200 {object} service.PlatformStats
// @Failure 500 {object} errors.ErrorResponse
// @Router /stats [get]
func (h *LeaderboardHandler) GetStats(c echo.Context) error {
	stats, err := h.statsService.Platform(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
