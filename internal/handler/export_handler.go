package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"forestinv/internal/service"
)

// ExportHandler handles inventory export endpoints.
type ExportHandler struct {
	svc service.ExportService
}

// NewExportHandler creates a handler layer.
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func plotFilter(c echo.Context) (*uuid.UUID, error) {
	raw := c.QueryParam("plot_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid plot_id")
	}
	return &id, nil
}

// TreesCSV godoc
// @Summary Export trees as CSV
// @Tags export
// @Produce text/csv
// @Param plot_id query string false "Plot ID"
// @Success 200 {file} file
// @Router /export/trees.csv [get]
func (h *ExportHandler) TreesCSV(c echo.Context) error {
	plotID, err := plotFilter(c)
	if err != nil {
		return err
	}
	data, err := h.svc.TreesCSV(c.Request().Context(), plotID)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="arboles.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// TreesKML godoc
// @Summary Export trees as KML
// @Tags export
// @Produce application/vnd.google-earth.kml+xml
// @Param plot_id query string false "Plot ID"
// @Success 200 {file} file
// @Router /export/trees.kml [get]
func (h *ExportHandler) TreesKML(c echo.Context) error {
	plotID, err := plotFilter(c)
	if err != nil {
		return err
	}
	kml, err := h.svc.TreesKML(c.Request().Context(), plotID)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="arboles.kml"`)
	return c.Blob(http.StatusOK, "application/vnd.google-earth.kml+xml", []byte(kml))
}

// TreesKMZ godoc
// @Summary Export trees as KMZ
// @Tags export
// @Produce application/vnd.google-earth.kmz
// @Param plot_id query string false "Plot ID"
// @Success 200 {file} file
// @Router /export/trees.kmz [get]
func (h *ExportHandler) TreesKMZ(c echo.Context) error {
	plotID, err := plotFilter(c)
	if err != nil {
		return err
	}
	data, err := h.svc.TreesKMZ(c.Request().Context(), plotID)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="arboles.kmz"`)
	return c.Blob(http.StatusOK, "application/vnd.google-earth.kmz", data)
}

// PlotsKMZ godoc
// @Summary Export plots as KMZ
// @Tags export
// @Produce application/vnd.google-earth.kmz
// @Success 200 {file} file
// @Router /export/plots.kmz [get]
func (h *ExportHandler) PlotsKMZ(c echo.Context) error {
	data, err := h.svc.PlotsKMZ(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="parcelas.kmz"`)
	return c.Blob(http.StatusOK, "application/vnd.google-earth.kmz", data)
}

// All godoc
// @Summary Export the full inventory as a zip bundle
// @Description CSV field sheet plus the tree and plot KMZ layers in one archive.
// @Tags export
// @Produce application/zip
// @Success 200 {file} file
// @Router /export/all [get]
func (h *ExportHandler) All(c echo.Context) error {
	data, err := h.svc.All(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="inventario_completo.zip"`)
	return c.Blob(http.StatusOK, "application/zip", data)
}

// Summary godoc
// @Summary Inventory overview counts
// @Tags export
// @Produce json
// @Success 200 {object} service.ExportSummary
// @Router /export/summary [get]
func (h *ExportHandler) Summary(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
