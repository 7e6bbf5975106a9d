package config

import (
	"strings"
	"time"
)

// Well-known API roots picked by the hostname heuristic.
const (
	DevAPIURL        = "http://localhost:5000/api"
	ProductionAPIURL = "https://api.asafarim.com/api"
)

// DefaultDatabaseFile is resolved under ~/.devfolio unless a path is given.
const DefaultDatabaseFile = "devfolio.db"

// DataDirName is the per-user directory holding the local database.
const DataDirName = ".devfolio"

// Config holds runtime settings for the devfolio CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. https://api.asafarim.com/api.
//     Empty means "derive from Hostname".
//   - DemoMode: the client runs against a static demo deployment and every
//     server-dependent command is disabled.
//   - DatabasePath: local SQLite file keeping the session.
//   - RequestTimeout: per-request HTTP timeout.
//   - Hostname: deployment host the heuristic looks at.
//   - Verbose: log at debug level.
type Config struct {
	APIBaseURL     string
	DemoMode       bool
	DatabasePath   string
	RequestTimeout time.Duration
	Hostname       string
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.DemoMode = false
	c.DatabasePath = DefaultDatabaseFile
	c.RequestTimeout = 30 * time.Second
	c.Hostname = ""
	c.Verbose = false
}

// ResolveAPIBaseURL maps a hostname to an API root: localhost goes to the
// local development API, *.github.io is the static demo with no API, and
// anything else uses production.
func ResolveAPIBaseURL(hostname string) (apiURL string, demo bool) {
	host := strings.ToLower(strings.TrimSpace(hostname))
	switch {
	case host == "localhost" || host == "127.0.0.1":
		return DevAPIURL, false
	case strings.HasSuffix(host, ".github.io"):
		return "", true
	default:
		return ProductionAPIURL, false
	}
}

// applyHostname fills APIBaseURL from Hostname unless a URL was set
// explicitly. An explicit URL also turns demo mode off.
func (c *Config) applyHostname() {
	if c.APIBaseURL != "" {
		c.DemoMode = false
		return
	}
	c.APIBaseURL, c.DemoMode = ResolveAPIBaseURL(c.Hostname)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones; the hostname heuristic
// runs last and only when no API URL was given.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.applyHostname()
	return cfg
}
