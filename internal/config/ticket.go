package config

// TicketConfig holds ticket validation settings.
type TicketConfig struct {
	// StrictResolution rejects legacy ticket ids whose user suffix matches
	// more than one user instead of taking the earliest match.
	StrictResolution bool
}

// LoadTicketConfigFromEnv loads ticket configuration from environment variables.
func LoadTicketConfigFromEnv() TicketConfig {
	return TicketConfig{
		StrictResolution: GetEnvBool("TICKET_STRICT_RESOLUTION", false),
	}
}
