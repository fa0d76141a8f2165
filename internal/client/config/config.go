package config

import "time"

// Config holds runtime settings for the AgriVision client.
//
// Fields:
//   - APIBaseURL: base URL of the advisory backend, including the /api
//     prefix. Request paths must not repeat it.
//   - DatabasePath: location of the local SQLite store.
//   - WeatherCacheTTL: how long a cached weather snapshot may seed the
//     dashboard before a fresh fetch is mandatory.
//   - DefaultLat/DefaultLon: prefilled coordinates for weather and
//     irrigation prompts.
type Config struct {
	APIBaseURL      string
	DatabasePath    string
	WeatherCacheTTL time.Duration
	DefaultLat      float64
	DefaultLon      float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.DatabasePath = "agrivision.db"
	c.WeatherCacheTTL = 10 * time.Minute
	c.DefaultLat = 18.52
	c.DefaultLon = 73.86
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
