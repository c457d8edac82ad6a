package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"forestinv/internal/model"
	"forestinv/internal/service"
)

// SyncLogHandler handles field-app synchronization log endpoints.
type SyncLogHandler struct {
	svc service.SyncLogService
}

// NewSyncLogHandler creates a handler layer.
func NewSyncLogHandler(svc service.SyncLogService) *SyncLogHandler {
	return &SyncLogHandler{svc: svc}
}

// CreateSyncLogRequest records one synchronization attempt.
type CreateSyncLogRequest struct {
	Type            model.SyncType `json:"type" validate:"required,oneof=Upload Download Full"`
	RecordsSent     int            `json:"records_sent" validate:"gte=0"`
	RecordsReceived int            `json:"records_received" validate:"gte=0"`
	Success         bool           `json:"success"`
	ErrorMessage    string         `json:"error_message"`
	Details         string         `json:"details"`
}

// ListSyncLogs godoc
// @Summary List sync logs, optionally filtered by user
// @Tags synclogs
// @Produce json
// @Param user_id query string false "User ID"
// @Success 200 {array} model.SyncLog
// @Router /synclogs [get]
func (h *SyncLogHandler) ListSyncLogs(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
		entries, err := h.svc.ListByUser(ctx, userID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, entries)
	}

	entries, err := h.svc.List(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetSyncLog godoc
// @Summary Get sync log by id
// @Tags synclogs
// @Produce json
// @Param id path string true "SyncLog ID"
// @Success 200 {object} model.SyncLog
// @Failure 404 {object} errors.ErrorResponse
// @Router /synclogs/{id} [get]
func (h *SyncLogHandler) GetSyncLog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	entry, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// CreateSyncLog godoc
// @Summary Record a synchronization attempt
// @Tags synclogs
// @Accept json
// @Produce json
// @Param entry body CreateSyncLogRequest true "Sync log payload"
// @Success 201 {object} model.SyncLog
// @Failure 400 {object} errors.ErrorResponse
// @Router /synclogs [post]
func (h *SyncLogHandler) CreateSyncLog(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req CreateSyncLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.Create(c.Request().Context(), service.CreateSyncLogInput{
		UserID:          id.UserID,
		Type:            req.Type,
		RecordsSent:     req.RecordsSent,
		RecordsReceived: req.RecordsReceived,
		Success:         req.Success,
		ErrorMessage:    req.ErrorMessage,
		Details:         req.Details,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// SyncStats godoc
// @Summary Aggregate synchronization statistics
// @Tags synclogs
// @Produce json
// @Success 200 {object} repository.SyncStats
// @Router /synclogs/stats [get]
func (h *SyncLogHandler) SyncStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
