package config

import (
	"fmt"
	"strings"
)

// PaymentConfig holds checkout configuration.
type PaymentConfig struct {
	// StripeSecretKey enables the card processor. Empty leaves checkout unconfigured.
	StripeSecretKey string
	// Currency is the ISO currency code sent to the processor.
	Currency string
	// MinimumAmount is the smallest fee, in major units, the processor accepts.
	MinimumAmount float64
	// FrontendURL is the base for success and cancel redirects.
	FrontendURL string
}

// LoadPaymentConfigFromEnv loads payment configuration from environment variables.
func LoadPaymentConfigFromEnv() PaymentConfig {
	return PaymentConfig{
		StripeSecretKey: GetEnv("STRIPE_SECRET_KEY", ""),
		Currency:        strings.ToLower(GetEnv("PAYMENT_CURRENCY", "inr")),
		MinimumAmount:   GetEnvFloat("PAYMENT_MINIMUM_AMOUNT", 40),
		FrontendURL:     strings.TrimRight(GetEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
	}
}

// Enabled reports whether a processor key is configured.
func (c PaymentConfig) Enabled() bool {
	return c.StripeSecretKey != ""
}

// Validate validates payment configuration.
func (c PaymentConfig) Validate() error {
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid PAYMENT_CURRENCY: %q (must be a 3-letter code)", c.Currency)
	}
	if c.MinimumAmount < 0 {
		return fmt.Errorf("PAYMENT_MINIMUM_AMOUNT must not be negative")
	}
	if c.FrontendURL == "" {
		return fmt.Errorf("FRONTEND_URL must not be empty")
	}
	return nil
}
