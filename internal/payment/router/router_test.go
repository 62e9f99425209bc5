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

	"github.com/festy23/street_sports/internal/config"
	"github.com/festy23/street_sports/internal/database/dbtest"
	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	membershipService "github.com/festy23/street_sports/internal/membership/service"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/payment/processor/processortest"
	"github.com/festy23/street_sports/internal/payment/repository"
	"github.com/festy23/street_sports/internal/payment/service"
	teamRepo "github.com/festy23/street_sports/internal/team/repository"
	ticketRepo "github.com/festy23/street_sports/internal/ticket/repository"
	ticketService "github.com/festy23/street_sports/internal/ticket/service"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

func TestPaymentRoutes(t *testing.T) {
	db := dbtest.Open(t)
	logger := zap.NewNop().Sugar()
	fake := processortest.New()

	users := userRepo.New(db, logger)
	events := eventRepo.New(db, logger)
	members := membershipService.New(db, users, logger)
	tickets := ticketService.New(ticketRepo.New(db, logger), events, users, members, false, logger)
	svc := service.New(repository.New(db, logger), events, teamRepo.New(db, logger), members, tickets, fake,
		config.PaymentConfig{Currency: "inr", MinimumAmount: 40, FrontendURL: "http://localhost:5173"}, logger)

	dbtest.SeedUser(t, db, "fan", "Fan")
	paid := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", AudienceFee: 100, PlayerFee: 10})
	free := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", Name: "Open Day"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, "fan") })
	RegisterRoutes(r, svc, logger)

	do := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid type", func(t *testing.T) {
		w := do("/events/"+paid.ID+"/create-checkout-session", `{"type":"vip"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("below minimum", func(t *testing.T) {
		w := do("/events/"+paid.ID+"/create-checkout-session", `{"type":"player"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 40.0, body["minimumAmount"])
		assert.Equal(t, 10.0, body["currentAmount"])
	})

	t.Run("free completion", func(t *testing.T) {
		w := do("/events/"+free.ID+"/complete-registration", `{"type":"audience"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"qrData"`)
	})

	t.Run("paid completion", func(t *testing.T) {
		w := do("/events/"+paid.ID+"/complete-registration", `{"type":"audience"}`)
		assert.Equal(t, http.StatusPaymentRequired, w.Code)

		w = do("/events/"+paid.ID+"/create-checkout-session", `{"type":"audience"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var checkout struct {
			SessionID string `json:"sessionId"`
			URL       string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
		require.NotEmpty(t, checkout.SessionID)

		complete := `{"type":"audience","sessionId":"` + checkout.SessionID + `"}`
		w = do("/events/"+paid.ID+"/complete-registration", complete)
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Contains(t, w.Body.String(), "PAYMENT_INCOMPLETE")

		fake.MarkPaid(checkout.SessionID)
		w = do("/events/"+paid.ID+"/complete-registration", complete)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), checkout.SessionID)
	})
}
