// Package router provides event module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/event/handler"
	"github.com/festy23/street_sports/internal/event/repository"
	"github.com/festy23/street_sports/internal/event/service"
	"github.com/festy23/street_sports/internal/realtime"
)

// RegisterRoutes registers event module routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, publisher, logger)
	h := handler.New(svc, logger)

	events := r.Group("/events")
	events.POST("/create", h.Create)
	events.GET("/all", h.List)
	events.GET("/my-events", h.ListMine)
	events.GET("/my-participations", h.ListParticipations)
	events.GET("/:eventId", h.Get)
	events.PUT("/:eventId/poster", h.SetPoster)
	events.DELETE("/:eventId/poster", h.DeletePoster)
}
