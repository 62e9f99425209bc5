// Package handler provides HTTP handlers for ticket endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/ticket/model"
	"github.com/festy23/street_sports/internal/ticket/service"
)

// Handler handles HTTP requests for ticket endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new ticket handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Validate handles POST /events/:eventId/validate-ticket request.
// @Summary Validate a bare ticket id
// @Tags Tickets
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body model.ValidateRequest true "Request"
// @Success 200 {object} model.ValidationResponse
// @Failure 400 {object} httpresponse.ErrorResponse "INVALID_TICKET_FORMAT, TICKET_USER_NOT_FOUND, TICKET_AMBIGUOUS_USER, TICKET_NOT_REGISTERED"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Router /events/{eventId}/validate-ticket [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Validate(c *gin.Context) {
	var req model.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.ValidateByID(c.Request.Context(), c.Param("eventId"), req.TicketID)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{
		"message": resp.Message,
		"ticket":  resp.Ticket,
		"user":    resp.User,
	})
}

// Verify handles POST /events/:eventId/verify-ticket request.
// @Summary Validate a scanned QR payload
// @Tags Tickets
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body model.VerifyRequest true "Request"
// @Success 200 {object} model.ValidationResponse
// @Failure 400 {object} httpresponse.ErrorResponse "INVALID_TICKET_DATA, TICKET_WRONG_EVENT, TICKET_NOT_REGISTERED"
// @Failure 404 {object} httpresponse.ErrorResponse "USER_NOT_FOUND, EVENT_NOT_FOUND"
// @Router /events/{eventId}/verify-ticket [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}
	payload, err := req.Payload()
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), c.Param("eventId"), payload)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{
		"message": resp.Message,
		"ticket":  resp.Ticket,
		"user":    resp.User,
	})
}

// Get handles GET /tickets/:ticketId request.
func (h *Handler) Get(c *gin.Context) {
	ticket, err := h.service.Get(c.Request.Context(), middleware.UserID(c), c.Param("ticketId"))
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"ticket": ticket})
}
