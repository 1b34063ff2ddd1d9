package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rahul-gound/fera-naturehelp/internal/catalog"
	"github.com/rahul-gound/fera-naturehelp/internal/errors"
)

// PlantHandler serves the plant catalog.
type PlantHandler struct {
	catalog *catalog.Catalog
}

// NewPlantHandler creates a new plant handler.
func NewPlantHandler(catalog *catalog.Catalog) *PlantHandler {
	return &PlantHandler{catalog: catalog}
}

// ListPlants godoc
// @Summary List plants
// @Tags plants
// @Produce json
// @Success 200 {array} model.Plant
// @Router /plants [get]
func (h *PlantHandler) ListPlants(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.List())
}

// GetPlant godoc
// @Summary Get plant by id
// @Tags plants
// @Produce json
// @Param id path int true "Plant ID"
// @Success 200 {object} model.Plant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /plants/{id} [get]
func (h *PlantHandler) GetPlant(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid plant ID",
			Code:  "INVALID_ID",
		})
	}

	plant, err := h.catalog.Get(id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, plant)
}
