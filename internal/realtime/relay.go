package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishTimeout = time.Second

// envelope is the frame exchanged between instances.
type envelope struct {
	UserID string          `json:"userId,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// RedisRelay publishes notifications on a Redis channel so every instance's
// hub delivers them to its own connections. If Redis is unreachable the
// notification is delivered to the local hub only.
type RedisRelay struct {
	client  *redis.Client
	hub     *Hub
	channel string
	logger  *zap.SugaredLogger
}

// NewRedisRelay creates a relay in front of hub.
func NewRedisRelay(client *redis.Client, hub *Hub, channel string, logger *zap.SugaredLogger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		hub:     hub,
		channel: channel,
		logger:  logger,
	}
}

// Start subscribes to the relay channel and delivers incoming frames to the
// hub until ctx is cancelled. It returns once the subscription is confirmed.
func (r *RedisRelay) Start(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					r.logger.Warnw("discarding malformed relay frame", "error", err)
					continue
				}
				r.hub.Deliver(env.UserID, env.Data)
			}
		}
	}()

	r.logger.Infow("notification relay subscribed", "channel", r.channel)
	return nil
}

// Broadcast implements Publisher.
func (r *RedisRelay) Broadcast(event EventType, payload any) {
	r.publish("", event, payload)
}

// PublishToUser implements Publisher.
func (r *RedisRelay) PublishToUser(userID string, event EventType, payload any) {
	if userID == "" {
		return
	}
	r.publish(userID, event, payload)
}

func (r *RedisRelay) publish(userID string, event EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		r.logger.Errorw("failed to encode notification", "event", event, "error", err)
		return
	}
	frame, err := json.Marshal(envelope{UserID: userID, Data: data})
	if err != nil {
		r.logger.Errorw("failed to encode relay frame", "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.client.Publish(ctx, r.channel, frame).Err(); err != nil {
		r.logger.Warnw("relay publish failed, delivering locally", "event", event, "error", err)
		r.hub.Deliver(userID, data)
	}
}
