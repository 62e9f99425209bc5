// Package router provides invitation routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/invitation/handler"
	"github.com/festy23/street_sports/internal/invitation/repository"
	"github.com/festy23/street_sports/internal/invitation/service"
	"github.com/festy23/street_sports/internal/realtime"
)

// RegisterRoutes registers invitation routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, publisher, logger)
	h := handler.New(svc, logger)

	r.POST("/events/:eventId/teams/:teamId/invite", h.Invite)

	requests := r.Group("/requests")
	requests.GET("/notifications", h.Notifications)
	requests.GET("/search-users", h.SearchUsers)
	requests.POST("/:requestId/accept", h.Accept)
	requests.POST("/:requestId/reject", h.Reject)
}
