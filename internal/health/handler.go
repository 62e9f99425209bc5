// Package health reports whether the service can reach its database and
// how many realtime connections it holds.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/database"
	"github.com/festy23/street_sports/internal/realtime"
)

const pingTimeout = 5 * time.Second

// StatsSource reports realtime connection counts.
type StatsSource interface {
	Stats() realtime.Stats
}

// Handler handles health check requests.
type Handler struct {
	db       *gorm.DB
	realtime StatsSource
	logger   *zap.SugaredLogger
}

// New creates a health handler. rt may be nil.
func New(db *gorm.DB, rt StatsSource, logger *zap.SugaredLogger) *Handler {
	return &Handler{db: db, realtime: rt, logger: logger}
}

// DatabaseStatus is the pool view of the database.
type DatabaseStatus struct {
	OpenConnections int `json:"openConnections"`
	InUse           int `json:"inUse"`
	Idle            int `json:"idle"`
}

// Response is the body of GET /health.
type Response struct {
	Status   string          `json:"status"`
	Database *DatabaseStatus `json:"database,omitempty"`
	Realtime *realtime.Stats `json:"realtime,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{Status: "unhealthy"})
		return
	}

	resp := Response{Status: "ok"}
	if stats, err := database.GetStats(h.db); err == nil {
		resp.Database = &DatabaseStatus{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
		}
	}
	if h.realtime != nil {
		rt := h.realtime.Stats()
		resp.Realtime = &rt
	}
	c.JSON(http.StatusOK, resp)
}
