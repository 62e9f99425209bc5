package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/database/dbtest"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/realtime"
	"github.com/festy23/street_sports/internal/realtime/realtimetest"
	teamModel "github.com/festy23/street_sports/internal/team/model"
)

func TestTeamRoutes(t *testing.T) {
	db := dbtest.Open(t)
	for _, id := range []string{"org", "u1", "u2"} {
		dbtest.SeedUser(t, db, id, id)
	}
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org"})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, "org") })
	rec := realtimetest.NewRecorder()
	RegisterRoutes(router, db, rec, zap.NewNop().Sugar())

	base := "/events/" + event.ID + "/teams"

	body, _ := json.Marshal(teamModel.CreateTeamRequest{TeamName: "Lions", Users: []string{"u1", "u2"}})
	req := httptest.NewRequest(http.MethodPost, base+"/create", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Team teamModel.TeamResponse `json:"team"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	teamID := created.Team.ID

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, base, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"teamName":"Lions"`)
	})

	t.Run("promote then remove", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, base+"/"+teamID+"/members/u2/promote", nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"captainId":"u2"`)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, base+"/"+teamID+"/members/u1", nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), `"id":"u1"`)
	})

	t.Run("unknown team", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, base+"/nope/members/u2", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Team not found in this event")
	})

	assert.Equal(t,
		[]realtime.EventType{realtime.TeamCreated, realtime.TeamUpdated, realtime.TeamUpdated},
		rec.Events())
}
