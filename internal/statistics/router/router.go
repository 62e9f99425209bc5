// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	"github.com/festy23/street_sports/internal/statistics/handler"
	"github.com/festy23/street_sports/internal/statistics/repository"
	"github.com/festy23/street_sports/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, eventRepo.New(db, logger), logger)
	h := handler.New(svc, logger)

	r.GET("/events/:eventId/statistics", h.GetEventStatistics)
	r.GET("/events/:eventId/standings", h.GetStandings)
}
