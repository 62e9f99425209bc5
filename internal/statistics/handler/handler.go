// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetEventStatistics handles GET /events/:eventId/statistics request.
// @Summary Get registration, match and ticket totals of an event
// @Tags Statistics
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} model.EventStatisticsResponse
// @Failure 403 {object} httpresponse.ErrorResponse "NOT_ORGANIZER"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId}/statistics [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetEventStatistics(c *gin.Context) {
	resp, err := h.service.GetEventStatistics(c.Request.Context(), middleware.UserID(c), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStandings handles GET /events/:eventId/standings request.
// @Summary Get team standings of an event
// @Tags Statistics
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} model.StandingsResponse
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId}/standings [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStandings(c *gin.Context) {
	resp, err := h.service.GetStandings(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
