package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"forestinv/internal/service"
)

// PlotHandler handles plot endpoints.
type PlotHandler struct {
	svc service.PlotService
}

// NewPlotHandler creates a handler layer.
func NewPlotHandler(svc service.PlotService) *PlotHandler {
	return &PlotHandler{svc: svc}
}

// CreatePlotRequest is the plot creation payload.
type CreatePlotRequest struct {
	Code        string   `json:"code" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Altitude    *float64 `json:"altitude,omitempty"`
	AreaHa      float64  `json:"area_ha" validate:"gt=0"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
}

// UpdatePlotRequest carries optional plot mutations.
type UpdatePlotRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	AreaHa      *float64 `json:"area_ha,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// ListPlots godoc
// @Summary List plots
// @Tags plots
// @Produce json
// @Success 200 {array} model.Plot
// @Router /plots [get]
func (h *PlotHandler) ListPlots(c echo.Context) error {
	plots, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, plots)
}

// GetPlot godoc
// @Summary Get plot by id
// @Tags plots
// @Produce json
// @Param id path string true "Plot ID"
// @Success 200 {object} model.Plot
// @Failure 404 {object} errors.ErrorResponse
// @Router /plots/{id} [get]
func (h *PlotHandler) GetPlot(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	plot, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, plot)
}

// CreatePlot godoc
// @Summary Create plot
// @Tags plots
// @Accept json
// @Produce json
// @Param plot body CreatePlotRequest true "Plot payload"
// @Success 201 {object} model.Plot
// @Failure 400 {object} errors.ErrorResponse
// @Router /plots [post]
func (h *PlotHandler) CreatePlot(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req CreatePlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plot, err := h.svc.Create(c.Request().Context(), service.CreatePlotInput{
		Code:        req.Code,
		Name:        req.Name,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Altitude:    req.Altitude,
		AreaHa:      req.AreaHa,
		Description: req.Description,
		Location:    req.Location,
		CreatedByID: id.UserID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, plot)
}

// UpdatePlot godoc
// @Summary Update plot
// @Tags plots
// @Accept json
// @Produce json
// @Param id path string true "Plot ID"
// @Param plot body UpdatePlotRequest true "Fields to update"
// @Success 200 {object} model.Plot
// @Failure 404 {object} errors.ErrorResponse
// @Router /plots/{id} [put]
func (h *PlotHandler) UpdatePlot(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdatePlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	plot, err := h.svc.Update(c.Request().Context(), id, service.UpdatePlotInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		AreaHa:      req.AreaHa,
		Active:      req.Active,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, plot)
}

// DeletePlot godoc
// @Summary Delete plot
// @Tags plots
// @Produce json
// @Param id path string true "Plot ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /plots/{id} [delete]
func (h *PlotHandler) DeletePlot(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
