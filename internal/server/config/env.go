package config

import "os"

// parseEnv overlays Config fields from the process environment.
//
// Recognized variables:
//
//	ADDRESS       — HTTP bind address (e.g., ":8080")
//	DATABASE_URL  — PostgreSQL DSN
//	SECRET_KEY    — session-signing secret
//	NTFY_ENDPOINT — base URL of the push service
//	NTFY_TOPIC    — push topic; empty disables dispatch
//	NTFY_CLICK_URL — click-through URL attached to notifications
//
// Unset variables leave the current (default) values untouched.
func parseEnv(config *Config) {
	setIfPresent := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setIfPresent("ADDRESS", &config.EndpointAddr)
	setIfPresent("DATABASE_URL", &config.DatabaseDSN)
	setIfPresent("SECRET_KEY", &config.SecretKey)
	setIfPresent("NTFY_ENDPOINT", &config.NtfyEndpoint)
	setIfPresent("NTFY_TOPIC", &config.NtfyTopic)
	setIfPresent("NTFY_CLICK_URL", &config.NtfyClickURL)
}
