package config

import (
	"fmt"
	"time"
)

// RealtimeConfig holds websocket and relay configuration.
type RealtimeConfig struct {
	// SendBuffer is the per-connection outbound queue size.
	SendBuffer int
	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration
	// PongTimeout is how long a connection may stay silent before it is dropped.
	PongTimeout time.Duration
	// RedisAddr enables the cross-instance relay when set.
	RedisAddr string
	// RedisPassword is optional.
	RedisPassword string
	// RedisChannel is the pub/sub channel used by the relay.
	RedisChannel string
}

// LoadRealtimeConfigFromEnv loads realtime configuration from environment variables.
func LoadRealtimeConfigFromEnv() RealtimeConfig {
	return RealtimeConfig{
		SendBuffer:    GetEnvInt("WS_SEND_BUFFER", 64),
		WriteTimeout:  GetEnvDuration("WS_WRITE_TIMEOUT", 10*time.Second),
		PongTimeout:   GetEnvDuration("WS_PONG_TIMEOUT", 60*time.Second),
		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisChannel:  GetEnv("REDIS_CHANNEL", "street-sports:notifications"),
	}
}

// PingPeriod returns the keepalive interval, kept below PongTimeout.
func (c RealtimeConfig) PingPeriod() time.Duration {
	return c.PongTimeout * 9 / 10
}

// RelayEnabled reports whether notifications fan out through Redis.
func (c RealtimeConfig) RelayEnabled() bool {
	return c.RedisAddr != ""
}

// Validate validates realtime configuration.
func (c RealtimeConfig) Validate() error {
	if c.SendBuffer <= 0 {
		return fmt.Errorf("WS_SEND_BUFFER must be greater than 0")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("WS_WRITE_TIMEOUT must be greater than 0")
	}
	if c.PongTimeout <= 0 {
		return fmt.Errorf("WS_PONG_TIMEOUT must be greater than 0")
	}
	if c.RelayEnabled() && c.RedisChannel == "" {
		return fmt.Errorf("REDIS_CHANNEL must not be empty when REDIS_ADDR is set")
	}
	return nil
}
