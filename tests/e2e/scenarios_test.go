//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/street_sports/internal/realtime"
)

func (s *E2ETestSuite) TestPaidAudienceRegistrationToDoor() {
	s.createUser("org", "Organiser")
	s.createUser("fan", "Fan")
	eventID := s.createEvent("org", 100, 0)
	base := "/events/" + eventID

	status, resp := s.doRequest(http.MethodPost, base+"/audience/join", "fan", "")
	s.Equal(http.StatusPaymentRequired, status)
	s.Equal(100.0, resp["fee"])
	s.Equal("audience", resp["type"])

	status, resp = s.doRequest(http.MethodPost, base+"/create-checkout-session", "fan", `{"type":"audience"}`)
	s.Require().Equal(http.StatusOK, status, resp)
	sessionID := resp["sessionId"].(string)

	complete := fmt.Sprintf(`{"type":"audience","sessionId":%q}`, sessionID)
	status, resp = s.doRequest(http.MethodPost, base+"/complete-registration", "fan", complete)
	s.Equal(http.StatusPaymentRequired, status)
	s.Equal("PAYMENT_INCOMPLETE", resp["code"])

	s.processor.MarkPaid(sessionID)
	status, resp = s.doRequest(http.MethodPost, base+"/complete-registration", "fan", complete)
	s.Require().Equal(http.StatusOK, status, resp)
	ticketID := resp["ticket"].(map[string]any)["id"].(string)

	status, again := s.doRequest(http.MethodPost, base+"/complete-registration", "fan", complete)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(ticketID, again["ticket"].(map[string]any)["id"], "completion is idempotent")

	validate := fmt.Sprintf(`{"ticketId":%q}`, ticketID)
	status, resp = s.doRequest(http.MethodPost, base+"/validate-ticket", "org", validate)
	s.Require().Equal(http.StatusOK, status, resp)
	s.Equal(true, resp["ticket"].(map[string]any)["firstScan"])
	s.Equal(100.0, resp["ticket"].(map[string]any)["amount"])

	status, resp = s.doRequest(http.MethodPost, base+"/validate-ticket", "org", validate)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(false, resp["ticket"].(map[string]any)["firstScan"])

	status, resp = s.doRequest(http.MethodGet, base+"/statistics", "org", "")
	s.Require().Equal(http.StatusOK, status, resp)
	stats := resp["statistics"].(map[string]any)
	s.Equal(1.0, stats["audienceCount"])
	s.Equal(1.0, stats["ticketsIssued"])
	s.Equal(1.0, stats["ticketsScanned"])
}

func (s *E2ETestSuite) TestConcurrentAudienceJoinKeepsRosterSingle() {
	s.createUser("org", "Organiser")
	s.createUser("fan", "Fan")
	const others = 10
	for i := 0; i < others; i++ {
		s.createUser(fmt.Sprintf("guest-%02d", i), "Guest")
	}
	eventID := s.createEvent("org", 0, 0)
	path := "/events/" + eventID + "/audience/join"

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = map[int]int{}
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, err := s.doRequestNoFail(http.MethodPost, path, "fan", "")
			if err != nil {
				return
			}
			mu.Lock()
			statuses[status]++
			mu.Unlock()
		}()
	}
	for i := 0; i < others; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, _, _ = s.doRequestNoFail(http.MethodPost, path, userID, "")
		}(fmt.Sprintf("guest-%02d", i))
	}
	wg.Wait()

	s.Equal(1, statuses[http.StatusOK], "exactly one join succeeds")
	s.Equal(9, statuses[http.StatusBadRequest])

	var count int64
	s.Require().NoError(s.db.Table("audience_members").Where("event_id = ?", eventID).Count(&count).Error)
	s.Equal(int64(others+1), count)
}

func (s *E2ETestSuite) TestInvitationNotifiesReceiverOverWebsocket() {
	s.createUser("org", "Organiser")
	s.createUser("striker", "Striker")
	eventID := s.createEvent("org", 0, 0)
	base := "/events/" + eventID

	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?token=" + s.token("striker")
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	defer ws.Close()
	s.Require().NoError(ws.WriteJSON(map[string]string{"type": "join-user-room", "userId": "striker"}))
	s.Require().Eventually(func() bool { return s.hub.Subscribers("striker") == 1 }, 2*time.Second, 10*time.Millisecond)

	status, resp := s.doRequest(http.MethodPost, base+"/players/apply", "striker", "")
	s.Require().Equal(http.StatusOK, status, resp)

	status, resp = s.doRequest(http.MethodPost, base+"/teams/create", "org", `{"teamName":"Lions"}`)
	s.Require().Equal(http.StatusCreated, status, resp)
	teamID := resp["team"].(map[string]any)["id"].(string)

	invite := `{"receiverId":"striker","message":"Join us"}`
	status, resp = s.doRequest(http.MethodPost, base+"/teams/"+teamID+"/invite", "org", invite)
	s.Require().Equal(http.StatusCreated, status, resp)
	requestID := resp["request"].(map[string]any)["id"].(string)

	status, _ = s.doRequest(http.MethodPost, base+"/teams/"+teamID+"/invite", "org", invite)
	s.Equal(http.StatusBadRequest, status, "one pending request per team and receiver")

	s.Equal(realtime.RequestReceived, readUntil(s, ws, realtime.RequestReceived).Event)

	status, resp = s.doRequest(http.MethodPost, "/requests/"+requestID+"/accept", "striker", "")
	s.Require().Equal(http.StatusOK, status, resp)

	status, _ = s.doRequest(http.MethodPost, "/requests/"+requestID+"/accept", "striker", "")
	s.Equal(http.StatusBadRequest, status)

	status, resp = s.doRequest(http.MethodGet, base+"/teams", "org", "")
	s.Require().Equal(http.StatusOK, status)
	raw, err := json.Marshal(resp)
	s.Require().NoError(err)
	s.Contains(string(raw), `"striker"`)
}

func (s *E2ETestSuite) TestMatchResultRecordedOnce() {
	s.createUser("org", "Organiser")
	eventID := s.createEvent("org", 0, 0)
	base := "/events/" + eventID

	teamIDs := make([]string, 0, 2)
	for _, name := range []string{"Lions", "Tigers"} {
		status, resp := s.doRequest(http.MethodPost, base+"/teams/create", "org", fmt.Sprintf(`{"teamName":%q}`, name))
		s.Require().Equal(http.StatusCreated, status, resp)
		teamIDs = append(teamIDs, resp["team"].(map[string]any)["id"].(string))
	}

	status, resp := s.doRequest(http.MethodPost, base+"/matches/create", "org",
		fmt.Sprintf(`{"teamIds":[%q,%q]}`, teamIDs[0], teamIDs[1]))
	s.Require().Equal(http.StatusCreated, status, resp)
	matchID := resp["match"].(map[string]any)["id"].(string)

	result := fmt.Sprintf(`{"wonTeamId":%q,"score":"2-1"}`, teamIDs[1])
	status, resp = s.doRequest(http.MethodPut, base+"/matches/"+matchID+"/result", "org", result)
	s.Require().Equal(http.StatusOK, status, resp)

	status, resp = s.doRequest(http.MethodPut, base+"/matches/"+matchID+"/result", "org", result)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("RESULT_ALREADY_RECORDED", resp["code"])

	status, resp = s.doRequest(http.MethodGet, base+"/standings", "org", "")
	s.Require().Equal(http.StatusOK, status, resp)
	teams := resp["teams"].([]any)
	s.Require().Len(teams, 2)
	s.Equal("Tigers", teams[0].(map[string]any)["teamName"])
	s.Equal(1.0, teams[0].(map[string]any)["matchesWon"])
}

// readUntil returns the first message of the wanted type, skipping broadcasts.
func readUntil(s *E2ETestSuite, ws *websocket.Conn, want realtime.EventType) realtime.Message {
	t := s.T()
	deadline := time.Now().Add(3 * time.Second)
	for {
		require.NoError(t, ws.SetReadDeadline(deadline))
		_, data, err := ws.ReadMessage()
		require.NoError(t, err, "no %s message", want)

		var msg realtime.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		if msg.Event == want {
			return msg
		}
		assert.NotEqual(t, realtime.RequestAccepted, msg.Event, "sender-only event leaked")
	}
}
