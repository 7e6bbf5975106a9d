package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/devfolio/internal/flagx"
	"github.com/dmitrijs2005/devfolio/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// timex.Duration so they may be written as "15s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	DatabasePath   string          `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	Hostname       string          `json:"hostname"`
	Verbose        *bool           `json:"verbose"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. Keys missing from the
// file keep their current values. Panics on read or unmarshal errors.
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
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Hostname != "" {
		cfg.Hostname = jc.Hostname
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
