// Package seed fills a devfolio backend with demo data through its REST API.
//
// The procedure is deliberately simple: sign in once as an admin, then create
// users, tech stacks, repositories, per-user preferences and projects one
// request at a time with a fixed pause in between. A failed item is logged
// and skipped. Nothing is idempotent or resumable.
package seed

import (
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/config"
)

// Config controls one seeding run. It is hard-coded by DefaultConfig; the
// seed command takes no flags.
type Config struct {
	APIURL         string
	AdminEmail     string
	AdminPassword  string
	Users          int
	TechStacks     int
	Repositories   int
	Projects       int
	Delay          time.Duration
	RequestTimeout time.Duration
	// Seed feeds the random generator; 0 means time based.
	Seed uint64
	// UserPassword is given to every generated account.
	UserPassword string
}

func DefaultConfig() Config {
	return Config{
		APIURL:         config.DevAPIURL,
		AdminEmail:     "ali@asafarim.com",
		AdminPassword:  "Admin123!",
		Users:          10,
		TechStacks:     12,
		Repositories:   15,
		Projects:       25,
		Delay:          300 * time.Millisecond,
		RequestTimeout: 30 * time.Second,
		Seed:           0,
		UserPassword:   "Password123!",
	}
}
