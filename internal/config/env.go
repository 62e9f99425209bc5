package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parsed reads key and converts it with parse. Unset, blank or
// unparsable values yield def.
func parsed[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// GetEnv returns the variable or defaultValue when unset or empty.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt reads an integer variable.
func GetEnvInt(key string, defaultValue int) int {
	return parsed(key, defaultValue, strconv.Atoi)
}

// GetEnvFloat reads a float variable, e.g. PAYMENT_MINIMUM_AMOUNT.
func GetEnvFloat(key string, defaultValue float64) float64 {
	return parsed(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvDuration reads a time.ParseDuration value such as "15s".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return parsed(key, defaultValue, time.ParseDuration)
}

// GetEnvBool accepts anything strconv.ParseBool understands.
func GetEnvBool(key string, defaultValue bool) bool {
	return parsed(key, defaultValue, strconv.ParseBool)
}
