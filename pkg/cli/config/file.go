package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File loads defaults from an optional TOML configuration file. Values
// on the command line or in the environment win over the file.
type File struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("TIGERLINE_CONFIG"),
		},
	}
}

type fileContent struct {
	Log struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"log"`
	Cache struct {
		Dir     string `toml:"dir"`
		Disable bool   `toml:"disable"`
	} `toml:"cache"`
	Dataset struct {
		Year       int64  `toml:"year"`
		CB         bool   `toml:"cb"`
		Resolution string `toml:"resolution"`
		Protocol   string `toml:"protocol"`
	} `toml:"dataset"`
}

// Apply merges file values into the given configs for every field the
// command line left at its zero value. A missing file with an empty
// Path is not an error.
func (c *File) Apply(logger *Logger, cache *Cache, dataset *Dataset) error {
	if c.Path == "" {
		return nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "reading config file", goerr.Value("path", c.Path))
	}

	var content fileContent
	if err := toml.Unmarshal(data, &content); err != nil {
		return goerr.Wrap(err, "parsing config file", goerr.Value("path", c.Path))
	}

	if logger != nil {
		if logger.Level == "" || logger.Level == "info" {
			if content.Log.Level != "" {
				logger.Level = content.Log.Level
			}
		}
		if !logger.JSON {
			logger.JSON = content.Log.JSON
		}
	}
	if cache != nil {
		if cache.Dir == "" {
			cache.Dir = content.Cache.Dir
		}
		if !cache.Disable {
			cache.Disable = content.Cache.Disable
		}
	}
	if dataset != nil {
		if dataset.Year == 0 {
			dataset.Year = content.Dataset.Year
		}
		if !dataset.CB {
			dataset.CB = content.Dataset.CB
		}
		if dataset.Resolution == "" {
			dataset.Resolution = content.Dataset.Resolution
		}
		if dataset.Protocol == "" || dataset.Protocol == "http" {
			if content.Dataset.Protocol != "" {
				dataset.Protocol = content.Dataset.Protocol
			}
		}
	}
	return nil
}
