package config

import (
	"encoding/json"
	"os"

	"github.com/agrivision/agrivision/internal/flagx"
	"github.com/agrivision/agrivision/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the cache TTL either as a string like
// "10m" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	DatabasePath    string         `json:"database_path"`
	WeatherCacheTTL timex.Duration `json:"weather_cache_ttl"`
	DefaultLat      *float64       `json:"default_lat"`
	DefaultLon      *float64       `json:"default_lon"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c or -config flags. Absent file means no overlay; read or parse
// errors panic (caller should recover if desired). Zero-valued fields in
// the file leave the corresponding Config fields untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.WeatherCacheTTL.Duration != 0 {
		cfg.WeatherCacheTTL = jc.WeatherCacheTTL.Duration
	}
	if jc.DefaultLat != nil {
		cfg.DefaultLat = *jc.DefaultLat
	}
	if jc.DefaultLon != nil {
		cfg.DefaultLon = *jc.DefaultLon
	}
}
