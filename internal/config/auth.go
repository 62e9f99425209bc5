package config

import (
	"fmt"
	"time"
)

// AuthConfig holds bearer token configuration.
type AuthConfig struct {
	// Secret is the HMAC key used to sign and verify tokens.
	Secret string
	// Issuer is written to and required in the iss claim.
	Issuer string
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Secret:   GetEnv("JWT_SECRET", ""),
		Issuer:   GetEnv("JWT_ISSUER", "street-sports"),
		TokenTTL: GetEnvDuration("JWT_TTL", 7*24*time.Hour),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be greater than 0")
	}
	return nil
}
