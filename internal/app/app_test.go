package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/festy23/street_sports/internal/auth"
	"github.com/festy23/street_sports/internal/config"
	"github.com/festy23/street_sports/internal/database/dbtest"
	"github.com/festy23/street_sports/internal/realtime"
)

type client struct {
	t      *testing.T
	router http.Handler
	tokens *auth.Manager
}

func (c client) do(method, path, userID, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := c.tokens.Sign(userID, userID+"@example.com", "player")
		require.NoError(c.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func setup(t *testing.T) (client, *realtime.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t).Sugar()
	db := dbtest.Open(t)
	dbtest.SeedUser(t, db, "org", "Organiser")
	dbtest.SeedUser(t, db, "fan", "Fan")

	cfg := config.Config{
		Auth: config.AuthConfig{Secret: "app-test-secret-123456", Issuer: "street-sports", TokenTTL: time.Hour},
		Payment: config.PaymentConfig{
			Currency:      "inr",
			MinimumAmount: 40,
			FrontendURL:   "http://localhost:5173",
		},
		Realtime: config.RealtimeConfig{SendBuffer: 16, WriteTimeout: time.Second, PongTimeout: time.Minute},
	}
	hub := realtime.NewHub(cfg.Realtime.SendBuffer, logger)
	tokens := auth.NewManager(cfg.Auth)

	r := NewRouter(Options{DB: db, Hub: hub, Tokens: tokens, Config: cfg, Logger: logger})
	return client{t: t, router: r, tokens: tokens}, hub
}

func TestRouter_PublicAndProtected(t *testing.T) {
	c, _ := setup(t)

	w := c.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/events/all", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = c.do(http.MethodGet, "/events/all", "fan", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RegistrationToDoor(t *testing.T) {
	c, hub := setup(t)
	watcher := hub.Connect()

	start := time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339)
	deadline := time.Now().UTC().Add(5 * 24 * time.Hour).Format(time.RFC3339)
	w := c.do(http.MethodPost, "/events/create", "org", `{
		"eventName": "Street Cup",
		"sportType": "Football",
		"startDate": "`+start+`",
		"registrationDeadline": "`+deadline+`",
		"duration": 1
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Event struct {
			ID string `json:"id"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	eventID := created.Event.ID

	select {
	case frame := <-watcher.Messages():
		var msg realtime.Message
		require.NoError(t, json.Unmarshal(frame, &msg))
		assert.Equal(t, realtime.EventCreated, msg.Event)
	case <-time.After(time.Second):
		t.Fatal("eventCreated was not broadcast")
	}

	w = c.do(http.MethodPost, "/events/"+eventID+"/complete-registration", "fan", `{"type":"audience"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var completed struct {
		Ticket struct {
			ID string `json:"id"`
		} `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	require.NotEmpty(t, completed.Ticket.ID)

	w = c.do(http.MethodGet, "/events/"+eventID+"/audience", "org", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fan"`)

	w = c.do(http.MethodPost, "/events/"+eventID+"/validate-ticket", "org", `{"ticketId":"`+completed.Ticket.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"firstScan":true`)

	w = c.do(http.MethodGet, "/events/"+eventID+"/statistics", "org", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"ticketsScanned":1`)

	w = c.do(http.MethodPost, "/events/"+eventID+"/create-checkout-session", "fan", `{"type":"player"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "free registrations need no checkout")
}
