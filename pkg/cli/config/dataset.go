package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// Dataset holds the shared dataset selection flags
type Dataset struct {
	Year       int64
	CB         bool
	Resolution string
	Protocol   string
	Timeout    time.Duration
}

// Flags returns CLI flags for dataset selection
func (c *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "year",
			Usage:       "Shapefile vintage (default: 2021)",
			Destination: &c.Year,
			Sources:     cli.EnvVars("TIGERLINE_YEAR"),
		},
		&cli.BoolFlag{
			Name:        "cb",
			Usage:       "Use the generalized cartographic boundary file",
			Destination: &c.CB,
			Sources:     cli.EnvVars("TIGERLINE_CB"),
		},
		&cli.StringFlag{
			Name:        "resolution",
			Usage:       "Cartographic boundary resolution (500k, 5m, 20m)",
			Destination: &c.Resolution,
			Sources:     cli.EnvVars("TIGERLINE_RESOLUTION"),
		},
		&cli.StringFlag{
			Name:        "protocol",
			Usage:       "Primary download transport (http or ftp)",
			Value:       "http",
			Destination: &c.Protocol,
			Sources:     cli.EnvVars("TIGERLINE_PROTOCOL"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout for a single download attempt",
			Value:       model.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("TIGERLINE_TIMEOUT"),
		},
	}
}
