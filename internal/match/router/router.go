// Package router provides match module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/match/handler"
	"github.com/festy23/street_sports/internal/match/repository"
	"github.com/festy23/street_sports/internal/match/service"
	"github.com/festy23/street_sports/internal/realtime"
)

// RegisterRoutes registers match module routes on an authenticated group.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, publisher, logger)
	h := handler.New(svc, logger)

	matches := r.Group("/events/:eventId/matches")
	matches.POST("/create", h.Create)
	matches.GET("", h.List)
	matches.PUT("/:matchId/result", h.UpdateResult)
	matches.POST("/:matchId/highlights", h.CreateHighlight)
	matches.GET("/:matchId/highlights", h.ListHighlights)
	matches.DELETE("/:matchId/highlights/:highlightId", h.DeleteHighlight)
}
