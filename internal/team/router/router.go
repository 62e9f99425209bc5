// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/realtime"
	"github.com/festy23/street_sports/internal/team/handler"
	"github.com/festy23/street_sports/internal/team/repository"
	"github.com/festy23/street_sports/internal/team/service"
)

// RegisterRoutes registers team module routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, publisher, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/events/:eventId/teams")
	teams.POST("/create", h.CreateTeam)
	teams.GET("", h.ListTeams)
	teams.DELETE("/:teamId/members/:userId", h.RemoveMember)
	teams.PUT("/:teamId/members/:userId/promote", h.PromoteCaptain)
}
