package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"forestinv/internal/model"
	"forestinv/internal/service"
)

// TreeHandler handles tree measurement endpoints.
type TreeHandler struct {
	svc service.TreeService
}

// NewTreeHandler creates a handler layer.
func NewTreeHandler(svc service.TreeService) *TreeHandler {
	return &TreeHandler{svc: svc}
}

// CreateTreeRequest is the tree measurement payload.
type CreateTreeRequest struct {
	TreeNumber       int      `json:"tree_number" validate:"gte=0"`
	Latitude         float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude        float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Altitude         *float64 `json:"altitude,omitempty"`
	DBH              float64  `json:"dbh" validate:"gt=0"`
	Height           float64  `json:"height" validate:"gt=0"`
	CommercialHeight *float64 `json:"commercial_height,omitempty"`
	CrownDiameter    *float64 `json:"crown_diameter,omitempty"`
	Notes            string   `json:"notes"`
	PlotID           string   `json:"plot_id" validate:"required,uuid"`
	SpeciesID        string   `json:"species_id" validate:"required,uuid"`
}

// UpdateTreeRequest carries optional tree mutations.
type UpdateTreeRequest struct {
	DBH              *float64             `json:"dbh,omitempty"`
	Height           *float64             `json:"height,omitempty"`
	CommercialHeight *float64             `json:"commercial_height,omitempty"`
	CrownDiameter    *float64             `json:"crown_diameter,omitempty"`
	Condition        *model.TreeCondition `json:"condition,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	SpeciesID        *string              `json:"species_id,omitempty"`
	Synced           *bool                `json:"synced,omitempty"`
}

// ListTrees godoc
// @Summary List trees, optionally filtered by plot
// @Tags trees
// @Produce json
// @Param plot_id query string false "Plot ID"
// @Success 200 {array} model.Tree
// @Router /trees [get]
func (h *TreeHandler) ListTrees(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("plot_id"); raw != "" {
		plotID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid plot_id")
		}
		trees, err := h.svc.ListByPlot(ctx, plotID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, trees)
	}

	trees, err := h.svc.List(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, trees)
}

// GetTree godoc
// @Summary Get tree by id
// @Tags trees
// @Produce json
// @Param id path string true "Tree ID"
// @Success 200 {object} model.Tree
// @Failure 404 {object} errors.ErrorResponse
// @Router /trees/{id} [get]
func (h *TreeHandler) GetTree(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	tree, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tree)
}

// CreateTree godoc
// @Summary Record a tree measurement
// @Tags trees
// @Accept json
// @Produce json
// @Param tree body CreateTreeRequest true "Tree payload"
// @Success 201 {object} model.Tree
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trees [post]
func (h *TreeHandler) CreateTree(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req CreateTreeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plotID, _ := uuid.Parse(req.PlotID)
	speciesID, _ := uuid.Parse(req.SpeciesID)

	tree, err := h.svc.Create(c.Request().Context(), service.CreateTreeInput{
		TreeNumber:       req.TreeNumber,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Altitude:         req.Altitude,
		DBH:              req.DBH,
		Height:           req.Height,
		CommercialHeight: req.CommercialHeight,
		CrownDiameter:    req.CrownDiameter,
		Notes:            req.Notes,
		PlotID:           plotID,
		SpeciesID:        speciesID,
		CreatedByID:      id.UserID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, tree)
}

// UpdateTree godoc
// @Summary Update tree
// @Tags trees
// @Accept json
// @Produce json
// @Param id path string true "Tree ID"
// @Param tree body UpdateTreeRequest true "Fields to update"
// @Success 200 {object} model.Tree
// @Failure 404 {object} errors.ErrorResponse
// @Router /trees/{id} [put]
func (h *TreeHandler) UpdateTree(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateTreeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.UpdateTreeInput{
		DBH:              req.DBH,
		Height:           req.Height,
		CommercialHeight: req.CommercialHeight,
		CrownDiameter:    req.CrownDiameter,
		Condition:        req.Condition,
		Notes:            req.Notes,
		Synced:           req.Synced,
	}
	if req.SpeciesID != nil {
		speciesID, err := uuid.Parse(*req.SpeciesID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid species_id")
		}
		input.SpeciesID = &speciesID
	}

	tree, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tree)
}

// DeleteTree godoc
// @Summary Delete tree
// @Tags trees
// @Produce json
// @Param id path string true "Tree ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /trees/{id} [delete]
func (h *TreeHandler) DeleteTree(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
