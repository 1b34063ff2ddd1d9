package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

// DashboardHandler serves the signed-in user's own views.
type DashboardHandler struct {
	dashboardService   service.DashboardService
	leaderboardService service.LeaderboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService, leaderboardService service.LeaderboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:   dashboardService,
		leaderboardService: leaderboardService,
	}
}

// RankResponse is the user's leaderboard position. Rank is null when unranked.
type RankResponse struct {
	Rank   *int `json:"rank"`
	Ranked bool `json:"ranked"`
}

// GetProfile godoc
// @Summary Get my profile
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *DashboardHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.dashboardService.Profile(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetDashboard godoc
// @Summary Get my impact dashboard
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// GetRank godoc
// @Summary Get my leaderboard rank
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RankResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/rank [get]
func (h *DashboardHandler) GetRank(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rank, ranked, err := h.leaderboardService.RankOf(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}

	resp := RankResponse{Ranked: ranked}
	if ranked {
		resp.Rank = &rank
	}
	return c.JSON(http.StatusOK, resp)
}

// DownloadCertificate godoc
// @Summary Download my certificate of appreciation
// @Tags me
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /me/certificate [get]
func (h *DashboardHandler) DownloadCertificate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	cert, err := h.dashboardService.Certificate(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", cert.FileName))
	return c.String(http.StatusOK, cert.Body)
}
