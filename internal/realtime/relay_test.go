package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupRelay(t *testing.T) (*miniredis.Miniredis, *RedisRelay, *Hub) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zaptest.NewLogger(t).Sugar()
	hub := NewHub(8, logger)
	relay := NewRedisRelay(client, hub, "test:notifications", logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, relay.Start(ctx))

	return mr, relay, hub
}

func waitMessage(t *testing.T, c *Conn) Message {
	t.Helper()
	var got []Message
	require.Eventually(t, func() bool {
		got = append(got, drain(c)...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	return got[0]
}

func TestRedisRelay_Broadcast(t *testing.T) {
	_, relay, hub := setupRelay(t)
	conn := hub.Connect()

	relay.Broadcast(TeamCreated, map[string]string{"teamId": "t1"})

	msg := waitMessage(t, conn)
	assert.Equal(t, TeamCreated, msg.Event)
}

func TestRedisRelay_PublishToUser(t *testing.T) {
	_, relay, hub := setupRelay(t)
	alice := hub.Connect()
	bob := hub.Connect()
	require.NoError(t, hub.Join(alice.ID(), "alice"))
	require.NoError(t, hub.Join(bob.ID(), "bob"))

	relay.PublishToUser("alice", RequestAccepted, map[string]string{"requestId": "r1"})

	msg := waitMessage(t, alice)
	assert.Equal(t, RequestAccepted, msg.Event)
	assert.Never(t, func() bool { return len(drain(bob)) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRedisRelay_FallsBackToLocalHub(t *testing.T) {
	mr, relay, hub := setupRelay(t)
	conn := hub.Connect()
	mr.Close()

	relay.Broadcast(EventCreated, map[string]string{"id": "e1"})

	msgs := drain(conn)
	require.Len(t, msgs, 1)
	assert.Equal(t, EventCreated, msgs[0].Event)
}

func TestRedisRelay_IgnoresMalformedFrames(t *testing.T) {
	mr, relay, hub := setupRelay(t)
	conn := hub.Connect()

	mr.Publish("test:notifications", "{not json")
	relay.Broadcast(MatchCreated, nil)

	msg := waitMessage(t, conn)
	assert.Equal(t, MatchCreated, msg.Event)
}
