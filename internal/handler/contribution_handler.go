package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

// ContributionHandler handles tree planting endpoints.
type ContributionHandler struct {
	recordService service.RecordService
}

// NewContributionHandler creates a new contribution handler.
func NewContributionHandler(recordService service.RecordService) *ContributionHandler {
	return &ContributionHandler{recordService: recordService}
}

// ContributionRequest represents a planting submission.
type ContributionRequest struct {
	PlantID  int    `json:"plant_id" validate:"required,gt=0"`
	Location string `json:"location" validate:"max=255"`
}

// ContributionResponse carries the stored contribution and the updated totals.
type ContributionResponse struct {
	Contribution *model.Contribution `json:"contribution"`
	Profile      *model.Profile      `json:"profile"`
}

// CreateContribution godoc
// @Summary Record a tree planting
// @Description An empty location is stored as "Not specified".
// @Tags contributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContributionRequest true "Contribution data"
// @Success 201 {object} ContributionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contributions [post]
func (h *ContributionHandler) CreateContribution(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ContributionRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest()
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	contribution, profile, err := h.recordService.RecordContribution(c.Request().Context(), userID, req.PlantID, req.Location)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, ContributionResponse{
		Contribution: contribution,
		Profile:      profile,
	})
}

// ListContributions godoc
// @Summary List my contributions
// @Tags contributions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Contribution
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contributions [get]
func (h *ContributionHandler) ListContributions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	contributions, err := h.recordService.ListContributions(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}
	if contributions == nil {
		contributions = []model.Contribution{}
	}
	return c.JSON(http.StatusOK, contributions)
}
