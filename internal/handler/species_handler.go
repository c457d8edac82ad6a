package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"forestinv/internal/service"
)

// SpeciesHandler handles species catalog endpoints.
type SpeciesHandler struct {
	svc service.SpeciesService
}

// NewSpeciesHandler creates a handler layer.
func NewSpeciesHandler(svc service.SpeciesService) *SpeciesHandler {
	return &SpeciesHandler{svc: svc}
}

// CreateSpeciesRequest is the species creation payload.
type CreateSpeciesRequest struct {
	CommonName     string   `json:"common_name" validate:"required"`
	ScientificName string   `json:"scientific_name" validate:"required"`
	Family         string   `json:"family"`
	Description    string   `json:"description"`
	WoodDensity    *float64 `json:"wood_density,omitempty"`
}

// UpdateSpeciesRequest carries optional species mutations.
type UpdateSpeciesRequest struct {
	CommonName     *string  `json:"common_name,omitempty"`
	ScientificName *string  `json:"scientific_name,omitempty"`
	Family         *string  `json:"family,omitempty"`
	Description    *string  `json:"description,omitempty"`
	WoodDensity    *float64 `json:"wood_density,omitempty"`
	Active         *bool    `json:"active,omitempty"`
}

// ListSpecies godoc
// @Summary List the species catalog
// @Tags species
// @Produce json
// @Success 200 {array} model.Species
// @Router /species [get]
func (h *SpeciesHandler) ListSpecies(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// GetSpecies godoc
// @Summary Get species by id
// @Tags species
// @Produce json
// @Param id path string true "Species ID"
// @Success 200 {object} model.Species
// @Failure 404 {object} errors.ErrorResponse
// @Router /species/{id} [get]
func (h *SpeciesHandler) GetSpecies(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	species, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, species)
}

// CreateSpecies godoc
// @Summary Add a species to the catalog
// @Tags species
// @Accept json
// @Produce json
// @Param species body CreateSpeciesRequest true "Species payload"
// @Success 201 {object} model.Species
// @Failure 400 {object} errors.ErrorResponse
// @Router /species [post]
func (h *SpeciesHandler) CreateSpecies(c echo.Context) error {
	var req CreateSpeciesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	species, err := h.svc.Create(c.Request().Context(), service.CreateSpeciesInput{
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Family:         req.Family,
		Description:    req.Description,
		WoodDensity:    req.WoodDensity,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, species)
}

// UpdateSpecies godoc
// @Summary Update species
// @Tags species
// @Accept json
// @Produce json
// @Param id path string true "Species ID"
// @Param species body UpdateSpeciesRequest true "Fields to update"
// @Success 200 {object} model.Species
// @Failure 404 {object} errors.ErrorResponse
// @Router /species/{id} [put]
func (h *SpeciesHandler) UpdateSpecies(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateSpeciesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	species, err := h.svc.Update(c.Request().Context(), id, service.UpdateSpeciesInput{
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Family:         req.Family,
		Description:    req.Description,
		WoodDensity:    req.WoodDensity,
		Active:         req.Active,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, species)
}

// DeleteSpecies godoc
// @Summary Delete species
// @Tags species
// @Produce json
// @Param id path string true "Species ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /species/{id} [delete]
func (h *SpeciesHandler) DeleteSpecies(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
