// Package handler provides HTTP handlers for event endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/event/model"
	"github.com/festy23/street_sports/internal/event/service"
	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/middleware"
)

// Handler handles HTTP requests for event endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new event handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /events/create request.
// @Summary Create an event organised by the caller
// @Tags Events
// @Accept json
// @Produce json
// @Param request body model.CreateEventRequest true "Request"
// @Success 201 {object} map[string]model.EventResponse "Response wrapped in event object"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /events/create [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	httpresponse.Success(c, http.StatusCreated, gin.H{"event": resp})
}

// List handles GET /events/all request.
func (h *Handler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"events": events})
}

// ListMine handles GET /events/my-events request.
func (h *Handler) ListMine(c *gin.Context) {
	events, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"events": events})
}

// ListParticipations handles GET /events/my-participations request.
func (h *Handler) ListParticipations(c *gin.Context) {
	events, err := h.service.ListParticipations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"events": events})
}

// Get handles GET /events/:eventId request.
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]model.EventResponse
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"event": resp})
}

// SetPoster handles PUT /events/:eventId/poster request.
// The image itself is uploaded to the media host by the client.
func (h *Handler) SetPoster(c *gin.Context) {
	var req model.SetPosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.SetPoster(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"event": resp})
}

// DeletePoster handles DELETE /events/:eventId/poster request.
func (h *Handler) DeletePoster(c *gin.Context) {
	if err := h.service.DeletePoster(c.Request.Context(), middleware.UserID(c), c.Param("eventId")); err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Poster deleted successfully"})
}
