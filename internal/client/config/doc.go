// Package config loads runtime configuration for the devfolio CLI.
//
// Later sources override earlier ones:
//
//  1. Defaults from (*Config).LoadDefaults.
//  2. A JSON file named with -c or -config.
//  3. DEVFOLIO_API_URL, DEVFOLIO_HOSTNAME, DEVFOLIO_DB and DEVFOLIO_VERBOSE.
//  4. Flags:
//
//	-a string   API base URL
//	-d string   local database file, or :memory:
//	-t int      request timeout (seconds)
//	-h string   deployment hostname
//	-v          debug logging
//
// When no source gave an API URL, ResolveAPIBaseURL derives one from the
// hostname: localhost is the development API, *.github.io is the static demo
// (no API, demo mode on) and anything else is production.
//
// The JSON file accepts
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "database_path": "/tmp/devfolio.db",
//	  "request_timeout": "15s",
//	  "hostname": "localhost",
//	  "verbose": true
//	}
//
// request_timeout may also be integer nanoseconds.
package config
