// Package handler provides HTTP handlers for checkout endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/httpresponse"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/payment/model"
	"github.com/festy23/street_sports/internal/payment/service"
)

// Handler handles HTTP requests for checkout endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new checkout handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateCheckoutSession handles POST /events/:eventId/create-checkout-session request.
// @Summary Start a card checkout for a paid registration
// @Tags Payments
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body model.CheckoutRequest true "Request"
// @Success 200 {object} model.CheckoutResponse
// @Failure 400 {object} httpresponse.ErrorResponse "EVENT_FREE, AMOUNT_BELOW_MINIMUM with minimumAmount and currentAmount"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND"
// @Failure 500 {object} httpresponse.ErrorResponse "PAYMENT_NOT_CONFIGURED, PAYMENT_PROCESSOR_ERROR"
// @Router /events/{eventId}/create-checkout-session [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.CreateCheckoutSession(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{"sessionId": resp.SessionID, "url": resp.URL})
}

// CompleteRegistration handles POST /events/:eventId/complete-registration request.
// @Summary Finalise a registration and issue its ticket
// @Tags Payments
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body model.CompleteRequest true "Request"
// @Success 200 {object} model.CompleteResponse
// @Failure 402 {object} httpresponse.ErrorResponse "PAYMENT_REQUIRED, PAYMENT_INCOMPLETE"
// @Failure 404 {object} httpresponse.ErrorResponse "EVENT_NOT_FOUND, SESSION_NOT_FOUND"
// @Failure 500 {object} httpresponse.ErrorResponse "PAYMENT_PROCESSOR_ERROR"
// @Router /events/{eventId}/complete-registration [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CompleteRegistration(c *gin.Context) {
	var req model.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresponse.BindError(c, err)
		return
	}

	resp, err := h.service.CompleteRegistration(c.Request.Context(), middleware.UserID(c), c.Param("eventId"), &req)
	if err != nil {
		httpresponse.Error(c, h.logger, err)
		return
	}
	httpresponse.Success(c, http.StatusOK, gin.H{
		"message": resp.Message,
		"type":    resp.Type,
		"ticket":  resp.Ticket,
	})
}
