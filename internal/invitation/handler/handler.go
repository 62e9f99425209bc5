// Package handler provides HTTP handlers for team invitation endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/invitation/model"
	"github.com/festy23/street_sports/internal/invitation/service"
	"github.com/festy23/street_sports/internal/middleware"
)

// Handler handles HTTP requests for invitation endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new invitation handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Invite handles POST /events/:eventId/teams/:teamId/invite request.
// @Summary Invite a user onto a team
// @Tags Requests
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param teamId path string true "Team ID"
// @Param request body model.InviteRequest true "Request"
// @Success 201 {object} map[string]model.RequestView "Response wrapped in request object"
// @Failure 400 {object} httpresponse.ErrorResponse "REQUEST_PENDING, ALREADY_ON_TEAM, INVALID_REQUEST"
// @Failure 403 {object} httpresponse.ErrorResponse "NOT_ORGANIZER"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND, TEAM_NOT_FOUND, USER_NOT_FOUND"
// @Router /events/{eventId}/teams/{teamId}/invite [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Invite(c *gin.Context) {
	var req model.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.Invite(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), c.Param("teamId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusCreated, gin.H{"request": resp})
}

// Notifications handles GET /requests/notifications request.
func (h *Handler) Notifications(c *gin.Context) {
	requests, err := h.service.ListPending(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// SearchUsers handles GET /requests/search-users request.
// @Summary Search users to invite onto a team
// @Tags Requests
// @Produce json
// @Param query query string false "Name, email or city fragment"
// @Param eventId query string true "Event ID"
// @Param teamId query string true "Team ID"
// @Success 200 {object} map[string]interface{} "Profiles wrapped in users array"
// @Failure 403 {object} httpresponse.ErrorResponse "NOT_ORGANIZER"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND, TEAM_NOT_FOUND"
// @Router /requests/search-users [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SearchUsers(c *gin.Context) {
	var q model.SearchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	users, err := h.service.SearchUsers(c.Request.Context(), middleware.UserID(c), &q)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"users": users})
}

// Accept handles POST /requests/:requestId/accept request.
func (h *Handler) Accept(c *gin.Context) {
	resp, err := h.service.Accept(c.Request.Context(), middleware.UserID(c), c.Param("requestId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Request accepted", "request": resp})
}

// Reject handles POST /requests/:requestId/reject request.
func (h *Handler) Reject(c *gin.Context) {
	resp, err := h.service.Reject(c.Request.Context(), middleware.UserID(c), c.Param("requestId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Request rejected", "request": resp})
}
