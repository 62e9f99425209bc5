// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/middleware"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	"github.com/festy23/street_sports/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /events/:eventId/teams/create request.
// @Summary Create a team with members
// @Tags Teams
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body teamModel.CreateTeamRequest true "Request"
// @Success 201 {object} map[string]teamModel.TeamResponse "Response wrapped in team object"
// @Failure 400 {object} httpresponse.ErrorResponse "Bad request (TEAM_EXISTS, INVALID_REQUEST, ALREADY_ON_TEAM)"
// @Failure 403 {object} httpresponse.ErrorResponse "NOT_ORGANIZER"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND, USER_NOT_FOUND"
// @Router /events/{eventId}/teams/create [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.CreateTeam(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	httpresponse.Success(c, http.StatusCreated, gin.H{"team": resp})
}

// ListTeams handles GET /events/:eventId/teams request.
// @Summary List the teams of an event
// @Tags Teams
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string][]teamModel.TeamResponse
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId}/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"teams": teams})
}

// RemoveMember handles DELETE /events/:eventId/teams/:teamId/members/:userId request.
func (h *Handler) RemoveMember(c *gin.Context) {
	resp, err := h.service.RemoveMember(
		c.Request.Context(),
		middleware.UserID(c),
		c.Param("eventId"),
		c.Param("teamId"),
		c.Param("userId"),
	)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"team": resp})
}

// PromoteCaptain handles PUT /events/:eventId/teams/:teamId/members/:userId/promote request.
func (h *Handler) PromoteCaptain(c *gin.Context) {
	resp, err := h.service.PromoteCaptain(
		c.Request.Context(),
		middleware.UserID(c),
		c.Param("eventId"),
		c.Param("teamId"),
		c.Param("userId"),
	)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"team": resp})
}
