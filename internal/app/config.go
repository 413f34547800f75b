package app

import (
	"time"

	"github.com/atomicstack/popular-movies/internal/netcheck"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

// Config describes user-provided application options.
type Config struct {
	APIKey         string
	BaseURL        string
	Language       string
	Sort           tmdb.SortOption
	Columns        int
	Width          int
	Height         int
	ShowFooter     bool
	Timeout        time.Duration
	Connectivity   netcheck.Mode
	StatusInterval time.Duration
}

// Redacted returns a copy that is safe to log.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "REDACTED"
	}
	return c
}
