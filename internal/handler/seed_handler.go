package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/seed"
)

// DemoPassword is the password given to seeded demo users.
const DemoPassword = "naturehelp"

// SeedHandler handles seed data endpoints. It is only routed in development.
type SeedHandler struct {
	seeder *seed.Seeder
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string      `json:"message"`
	Result  seed.Result `json:"result"`
}

// SeedDemo godoc
// @Summary Seed the demo leaderboard users
// @Description Development only. Existing users are skipped.
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/demo [post]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	res, err := h.seeder.Seed(c.Request().Context(), seed.DemoUsers, DemoPassword)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to seed demo users",
			Code:  "SEED_FAILED",
		})
	}

	return c.JSON(http.StatusOK, SeedResponse{
		Message: "demo users seeded",
		Result:  res,
	})
}
