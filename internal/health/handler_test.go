package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/realtime"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.Check)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Check(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("healthy with realtime stats", func(t *testing.T) {
		hub := realtime.NewHub(4, logger)
		conn := hub.Connect()
		require.NoError(t, hub.Join(conn.ID(), "u1"))

		w := serve(New(setupTestDB(t), hub, logger), httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		require.NotNil(t, resp.Database)
		require.NotNil(t, resp.Realtime)
		assert.Equal(t, 1, resp.Realtime.Connections)
		assert.Equal(t, 1, resp.Realtime.Channels)
	})

	t.Run("healthy without hub", func(t *testing.T) {
		w := serve(New(setupTestDB(t), nil, logger), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "realtime")
	})

	t.Run("database closed", func(t *testing.T) {
		db := setupTestDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		w := serve(New(db, nil, logger), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})

	t.Run("nil database", func(t *testing.T) {
		w := serve(New(nil, nil, logger), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("cancelled request", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx)

		w := serve(New(setupTestDB(t), nil, logger), req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
