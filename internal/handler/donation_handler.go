package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/service"
)

// DonationHandler handles donation endpoints.
type DonationHandler struct {
	recordService service.RecordService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(recordService service.RecordService) *DonationHandler {
	return &DonationHandler{recordService: recordService}
}

// DonationRequest represents a donation submission. Amount is a decimal string.
type DonationRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// DonationResponse carries the stored donation and the updated totals.
type DonationResponse struct {
	Donation *model.Donation `json:"donation"`
	Profile  *model.Profile  `json:"profile"`
}

func invalidAmount() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid amount",
		Code:  "INVALID_AMOUNT",
	})
}

// CreateDonation godoc
// @Summary Record a donation
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DonationRequest true "Donation data"
// @Success 201 {object} DonationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donations [post]
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req DonationRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest()
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	// Parse amount
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return invalidAmount()
	}

	donation, profile, err := h.recordService.RecordDonation(c.Request().Context(), userID, amount)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, DonationResponse{
		Donation: donation,
		Profile:  profile,
	})
}

// ListDonations godoc
// @Summary List my donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Donation
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donations [get]
func (h *DonationHandler) ListDonations(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	donations, err := h.recordService.ListDonations(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}
	if donations == nil {
		donations = []model.Donation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// PreviewImpact godoc
// @Summary Preview the impact of a donation
// @Description Every $10 sponsors one tree absorbing 25 kg CO2 and releasing 73 kg oxygen per year.
// @Tags donations
// @Produce json
// @Param amount query string true "Donation amount in USD"
// @Success 200 {object} service.DonationImpact
// @Failure 400 {object} errors.ErrorResponse
// @Router /donations/impact [get]
func (h *DonationHandler) PreviewImpact(c echo.Context) error {
	amount, err := decimal.NewFromString(c.QueryParam("amount"))
	if err != nil {
		return invalidAmount()
	}

	preview, err := service.PreviewDonation(amount)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, preview)
}
