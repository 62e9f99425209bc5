package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestHub(t *testing.T, buffer int) *Hub {
	t.Helper()
	return NewHub(buffer, zaptest.NewLogger(t).Sugar())
}

func drain(c *Conn) []Message {
	var out []Message
	for {
		select {
		case data, ok := <-c.Messages():
			if !ok {
				return out
			}
			var msg Message
			if err := json.Unmarshal(data, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func TestHub_PublishToUserScoping(t *testing.T) {
	hub := newTestHub(t, 8)
	alice := hub.Connect()
	bob := hub.Connect()
	require.NoError(t, hub.Join(alice.ID(), "alice"))
	require.NoError(t, hub.Join(bob.ID(), "bob"))

	hub.PublishToUser("alice", RequestReceived, map[string]string{"requestId": "r1"})

	aliceMsgs := drain(alice)
	require.Len(t, aliceMsgs, 1)
	assert.Equal(t, RequestReceived, aliceMsgs[0].Event)
	assert.Empty(t, drain(bob))
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := newTestHub(t, 8)
	joined := hub.Connect()
	anonymous := hub.Connect()
	require.NoError(t, hub.Join(joined.ID(), "alice"))

	hub.Broadcast(EventCreated, map[string]string{"id": "e1"})

	assert.Len(t, drain(joined), 1)
	assert.Len(t, drain(anonymous), 1)
}

func TestHub_UnjoinedConnectionGetsNoUserNotifications(t *testing.T) {
	hub := newTestHub(t, 8)
	conn := hub.Connect()

	hub.PublishToUser("alice", RequestAccepted, nil)

	assert.Empty(t, drain(conn))
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := newTestHub(t, 8)
	phone := hub.Connect()
	laptop := hub.Connect()
	require.NoError(t, hub.Join(phone.ID(), "alice"))
	require.NoError(t, hub.Join(laptop.ID(), "alice"))
	assert.Equal(t, 2, hub.Subscribers("alice"))

	hub.PublishToUser("alice", RequestRejected, nil)

	assert.Len(t, drain(phone), 1)
	assert.Len(t, drain(laptop), 1)
}

func TestHub_Join(t *testing.T) {
	hub := newTestHub(t, 8)
	conn := hub.Connect()

	t.Run("unknown connection", func(t *testing.T) {
		assert.ErrorIs(t, hub.Join("missing", "alice"), ErrConnectionNotFound)
	})

	t.Run("empty user", func(t *testing.T) {
		assert.ErrorIs(t, hub.Join(conn.ID(), ""), ErrEmptyUserID)
	})

	t.Run("rejoin same user is a no-op", func(t *testing.T) {
		require.NoError(t, hub.Join(conn.ID(), "alice"))
		require.NoError(t, hub.Join(conn.ID(), "alice"))
		assert.Equal(t, 1, hub.Subscribers("alice"))
	})

	t.Run("cannot switch user", func(t *testing.T) {
		assert.ErrorIs(t, hub.Join(conn.ID(), "mallory"), ErrAlreadyJoined)
		assert.Equal(t, 0, hub.Subscribers("mallory"))
	})
}

func TestHub_Disconnect(t *testing.T) {
	hub := newTestHub(t, 8)
	conn := hub.Connect()
	require.NoError(t, hub.Join(conn.ID(), "alice"))

	hub.Disconnect(conn.ID())
	hub.Disconnect(conn.ID())

	_, open := <-conn.Messages()
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("alice"))
	assert.Equal(t, Stats{}, hub.Stats())

	assert.NotPanics(t, func() {
		hub.Broadcast(EventCreated, nil)
		hub.PublishToUser("alice", RequestReceived, nil)
	})
}

func TestHub_SlowClientDropsWithoutBlocking(t *testing.T) {
	hub := newTestHub(t, 2)
	slow := hub.Connect()
	fast := hub.Connect()

	for i := 0; i < 5; i++ {
		hub.Broadcast(MatchCreated, i)
		drain(fast)
	}

	assert.Len(t, drain(slow), 2)
	assert.Equal(t, int64(3), hub.Stats().Dropped)
}

func TestHub_MessageEnvelope(t *testing.T) {
	hub := newTestHub(t, 1)
	conn := hub.Connect()

	hub.Broadcast(PosterDeleted, map[string]string{"eventId": "e1"})

	data := <-conn.Messages()
	assert.JSONEq(t, `{"event":"posterDeleted","payload":{"eventId":"e1"}}`, string(data))
}
