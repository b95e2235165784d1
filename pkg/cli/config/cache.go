package config

import (
	"github.com/urfave/cli/v3"
)

// Cache holds download cache configuration
type Cache struct {
	Dir     string
	Disable bool
}

// Flags returns CLI flags for cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Directory for cached downloads (default: user cache dir)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("TIGERLINE_CACHE_DIR"),
		},
		&cli.BoolFlag{
			Name:        "no-cache",
			Usage:       "Download without writing to the local cache",
			Destination: &c.Disable,
			Sources:     cli.EnvVars("TIGERLINE_NO_CACHE"),
		},
	}
}

// Enabled reports whether downloads should be cached.
func (c *Cache) Enabled() bool {
	return !c.Disable
}
