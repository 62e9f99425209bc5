package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/database/dbtest"
	"github.com/festy23/street_sports/internal/match/model"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/realtime/realtimetest"
)

func TestMatchRoutes(t *testing.T) {
	db := dbtest.Open(t)
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org"})
	lions := dbtest.SeedTeam(t, db, event.ID, "Lions")
	tigers := dbtest.SeedTeam(t, db, event.ID, "Tigers")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, "org") })
	RegisterRoutes(r, db, realtimetest.NewRecorder(), zap.NewNop().Sugar())

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	base := "/events/" + event.ID + "/matches"

	w := do(http.MethodPost, base+"/create", `{"teamIds":["`+lions.ID+`"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "exactly two teams")

	w = do(http.MethodPost, base+"/create", `{"teamIds":["`+lions.ID+`","`+tigers.ID+`"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Match model.MatchView `json:"match"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Match.ID)

	w = do(http.MethodPut, base+"/"+created.Match.ID+"/result", `{"wonTeamId":"`+lions.ID+`","score":"3-0"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	w = do(http.MethodPut, base+"/"+created.Match.ID+"/result", `{"wonTeamId":"`+lions.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RESULT_ALREADY_RECORDED")
}

func TestHighlightRoutes(t *testing.T) {
	db := dbtest.Open(t)
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org"})
	lions := dbtest.SeedTeam(t, db, event.ID, "Lions")
	tigers := dbtest.SeedTeam(t, db, event.ID, "Tigers")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, c.GetHeader("X-Test-User")) })
	RegisterRoutes(r, db, realtimetest.NewRecorder(), zap.NewNop().Sugar())

	do := func(method, path, user, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	base := "/events/" + event.ID + "/matches"

	w := do(http.MethodPost, base+"/create", "org", `{"teamIds":["`+lions.ID+`","`+tigers.ID+`"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Match model.MatchView `json:"match"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	highlights := base + "/" + created.Match.ID + "/highlights"
	valid := `{"title":"Goal","mediaType":"photo","publicId":"p1","url":"https://media.example/p1.jpg"}`

	w = do(http.MethodPost, highlights, "org", `{"title":"Goal","mediaType":"gif","publicId":"p1","url":"https://media.example/p1.gif"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown media type")

	w = do(http.MethodPost, highlights, "fan", valid)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(http.MethodPost, base+"/missing/highlights", "org", valid)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "MATCH_NOT_FOUND")

	w = do(http.MethodPost, highlights, "org", valid)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Success   bool                `json:"success"`
		Highlight model.HighlightView `json:"highlight"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "org", resp.Highlight.CreatedBy.ID)

	w = do(http.MethodGet, highlights, "fan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.Highlight.ID)

	w = do(http.MethodDelete, highlights+"/"+resp.Highlight.ID, "org", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Highlight deleted successfully")

	w = do(http.MethodDelete, highlights+"/"+resp.Highlight.ID, "org", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "HIGHLIGHT_NOT_FOUND")
}
