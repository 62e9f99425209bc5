// Package config reads Postgres connection settings from DB_* variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	appConfig "github.com/festy23/street_sports/internal/config"
	"github.com/festy23/street_sports/pkg/retry"
)

// Config holds database connection settings. URL, when set, wins over
// the discrete fields.
type Config struct {
	URL      string
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
}

// DSN returns URL or a keyword/value connection string.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return c.dsn(c.Password)
}

func (c Config) dsn(password string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, password, c.DBName, c.Port, c.SSLMode, c.TimeZone)
}

// Describe returns DSN with the password masked, for logs.
func (c Config) Describe() string {
	if c.URL == "" {
		return c.dsn("***")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return "<unparsable DATABASE_URL>"
	}
	return u.Redacted()
}

// LoadConfigFromEnv reads DATABASE_URL and DB_* variables.
func LoadConfigFromEnv() Config {
	return Config{
		URL:      appConfig.GetEnv("DATABASE_URL", ""),
		Host:     appConfig.GetEnv("DB_HOST", "localhost"),
		User:     appConfig.GetEnv("DB_USER", "postgres"),
		Password: appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:   appConfig.GetEnv("DB_NAME", "street_sports"),
		Port:     appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:  appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone: appConfig.GetEnv("DB_TIMEZONE", "UTC"),
	}
}

// SanitizeError wraps a connection error with every password occurrence masked.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	msg := strings.ReplaceAll(err.Error(), cfg.DSN(), cfg.Describe())
	secrets := []string{cfg.Password}
	if u, perr := url.Parse(cfg.URL); perr == nil && cfg.URL != "" {
		if pw, ok := u.User.Password(); ok {
			secrets = append(secrets, pw)
		}
	}
	for _, s := range secrets {
		if s != "" {
			msg = strings.ReplaceAll(msg, s, "***")
		}
	}
	return fmt.Errorf("failed to connect to database: %s", msg)
}

// LoadRetryConfigFromEnv overlays DB_RETRY_* variables on retry.PostgresConfig.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}
