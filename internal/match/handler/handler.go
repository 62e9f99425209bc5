// Package handler provides HTTP handlers for match endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/match/model"
	"github.com/festy23/street_sports/internal/match/service"
	"github.com/festy23/street_sports/internal/middleware"
)

// Handler handles HTTP requests for match endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new match handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /events/:eventId/matches/create request.
// @Summary Schedule a match between two teams
// @Tags Matches
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body model.CreateMatchRequest true "Request"
// @Success 201 {object} map[string]model.MatchView "Response wrapped in match object"
// @Failure 400 {object} httpresponse.ErrorResponse "SAME_TEAM, INVALID_REQUEST"
// @Failure 403 {object} httpresponse.ErrorResponse "NOT_ORGANIZER"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND, TEAM_NOT_FOUND"
// @Router /events/{eventId}/matches/create [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusCreated, gin.H{"match": resp})
}

// UpdateResult handles PUT /events/:eventId/matches/:matchId/result request.
// @Summary Record the result of a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param matchId path string true "Match ID"
// @Param request body model.UpdateResultRequest true "Request"
// @Success 200 {object} map[string]model.MatchView
// @Failure 400 {object} httpresponse.ErrorResponse "INVALID_WINNER, RESULT_ALREADY_RECORDED"
// @Failure 404 {object} httpresponse.ErrorResponse "MATCH_NOT_FOUND"
// @Router /events/{eventId}/matches/{matchId}/result [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateResult(c *gin.Context) {
	var req model.UpdateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.UpdateResult(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), c.Param("matchId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"match": resp})
}

// List handles GET /events/:eventId/matches request.
func (h *Handler) List(c *gin.Context) {
	matches, err := h.service.List(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"matches": matches})
}

// CreateHighlight handles POST /events/:eventId/matches/:matchId/highlights request.
// @Summary Publish a match highlight
// @Tags Matches
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param matchId path string true "Match ID"
// @Param request body model.CreateHighlightRequest true "Request"
// @Success 201 {object} map[string]model.HighlightView "Response wrapped in highlight object"
// @Failure 400 {object} httpresponse.ErrorResponse "INVALID_REQUEST"
// @Failure 403 {object} httpresponse.ErrorResponse "NOT_ORGANIZER"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND, MATCH_NOT_FOUND"
// @Router /events/{eventId}/matches/{matchId}/highlights [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateHighlight(c *gin.Context) {
	var req model.CreateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.CreateHighlight(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), c.Param("matchId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusCreated, gin.H{"highlight": resp})
}

// ListHighlights handles GET /events/:eventId/matches/:matchId/highlights request.
func (h *Handler) ListHighlights(c *gin.Context) {
	highlights, err := h.service.ListHighlights(c.Request.Context(), c.Param("eventId"), c.Param("matchId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"highlights": highlights})
}

// DeleteHighlight handles DELETE /events/:eventId/matches/:matchId/highlights/:highlightId request.
func (h *Handler) DeleteHighlight(c *gin.Context) {
	err := h.service.DeleteHighlight(
		c.Request.Context(),
		middleware.UserID(c),
		c.Param("eventId"),
		c.Param("matchId"),
		c.Param("highlightId"),
	)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Highlight deleted successfully"})
}
