// Package router provides ticket routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/ticket/handler"
	"github.com/festy23/street_sports/internal/ticket/service"
)

// RegisterRoutes registers ticket routes on an authenticated group.
// Issuing is not routed; it happens through registration completion.
func RegisterRoutes(r gin.IRouter, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/events/:eventId/validate-ticket", h.Validate)
	r.POST("/events/:eventId/verify-ticket", h.Verify)
	r.GET("/tickets/:ticketId", h.Get)
}
