package config

import "os"

// parseEnv overlays Config with values from the environment.
//
// Recognized variables:
//
//	AGRIVISION_API_BASE_URL  backend base URL
//	AGRIVISION_DB_PATH       local store path
func parseEnv(cfg *Config) {
	if v := os.Getenv("AGRIVISION_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("AGRIVISION_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
}
