// Package router provides registration routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/membership/handler"
	"github.com/festy23/street_sports/internal/membership/service"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

// RegisterRoutes registers audience and player routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	svc := service.New(db, userRepo.New(db, logger), logger)
	h := handler.New(svc, logger)

	event := r.Group("/events/:eventId")
	event.POST("/audience/join", h.JoinAudience)
	event.GET("/audience", h.ListAudience)
	event.DELETE("/audience/:userId", h.RemoveFromAudience)

	event.POST("/players/apply", h.ApplyAsPlayer)
	event.POST("/players/apply-to-team/:teamId", h.ApplyToTeam)
	event.GET("/players/pending", h.ListPendingPlayers)
	event.POST("/players/:userId/approve", h.ApprovePlayer)
	event.POST("/players/:userId/reject", h.RejectPlayer)
}
