// Package router provides checkout routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/payment/handler"
	"github.com/festy23/street_sports/internal/payment/service"
)

// RegisterRoutes registers checkout routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/events/:eventId/create-checkout-session", h.CreateCheckoutSession)
	r.POST("/events/:eventId/complete-registration", h.CompleteRegistration)
}
