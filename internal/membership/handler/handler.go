// Package handler provides HTTP handlers for registration endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/membership/model"
	"github.com/festy23/street_sports/internal/membership/service"
	"github.com/festy23/street_sports/internal/middleware"
)

// Handler handles HTTP requests for registration endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new registration handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// JoinAudience handles POST /events/:eventId/audience/join request.
// @Summary Join the audience of a free event
// @Tags Registration
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpresponse.ErrorResponse "ALREADY_IN_AUDIENCE"
// @Failure 402 {object} httpresponse.ErrorResponse "PAYMENT_REQUIRED with fee and type"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId}/audience/join [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) JoinAudience(c *gin.Context) {
	if err := h.service.JoinAudience(c.Request.Context(), c.Param("eventId"), middleware.UserID(c)); err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Successfully joined the audience"})
}

// ListAudience handles GET /events/:eventId/audience request.
func (h *Handler) ListAudience(c *gin.Context) {
	resp, err := h.service.ListAudience(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"audience": resp})
}

// RemoveFromAudience handles DELETE /events/:eventId/audience/:userId request.
func (h *Handler) RemoveFromAudience(c *gin.Context) {
	err := h.service.RemoveFromAudience(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), c.Param("userId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "User removed from audience"})
}

// ApplyAsPlayer handles POST /events/:eventId/players/apply request.
// @Summary Apply to an event as a player without a team
// @Tags Registration
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpresponse.ErrorResponse "ALREADY_APPLIED or ALREADY_ON_TEAM"
// @Failure 402 {object} httpresponse.ErrorResponse "PAYMENT_REQUIRED with fee and type"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId}/players/apply [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ApplyAsPlayer(c *gin.Context) {
	if err := h.service.ApplyAsPlayer(c.Request.Context(), c.Param("eventId"), middleware.UserID(c)); err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Application submitted successfully"})
}

// ApplyToTeam handles POST /events/:eventId/players/apply-to-team/:teamId request.
func (h *Handler) ApplyToTeam(c *gin.Context) {
	err := h.service.ApplyToTeam(c.Request.Context(), c.Param("eventId"), c.Param("teamId"), middleware.UserID(c))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Successfully joined the team"})
}

// ListPendingPlayers handles GET /events/:eventId/players/pending request.
func (h *Handler) ListPendingPlayers(c *gin.Context) {
	resp, err := h.service.ListPendingPlayers(c.Request.Context(), middleware.UserID(c), c.Param("eventId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"players": resp})
}

// ApprovePlayer handles POST /events/:eventId/players/:userId/approve request.
// The body is optional; a teamId places the player on that team.
func (h *Handler) ApprovePlayer(c *gin.Context) {
	var req model.ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpresponse.BindError(c, err)
			return
		}
	}

	err := h.service.ApprovePlayer(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), c.Param("userId"), req.TeamID)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Player approved"})
}

// RejectPlayer handles POST /events/:eventId/players/:userId/reject request.
func (h *Handler) RejectPlayer(c *gin.Context) {
	err := h.service.RejectPlayer(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), c.Param("userId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"message": "Player rejected"})
}
