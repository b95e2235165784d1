package cli

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/cli/config"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/infra/cache"
	"github.com/m-mizutani/tigerline/pkg/infra/fetch"
	"github.com/m-mizutani/tigerline/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// newTiger builds the dataset catalog from the cache configuration.
func newTiger(cacheCfg *config.Cache) (*usecase.Tiger, error) {
	store, err := cache.New(cacheCfg.Dir)
	if err != nil {
		return nil, err
	}
	return usecase.New(fetch.New(store)), nil
}

func datasetOptions(cacheCfg *config.Cache, d *config.Dataset) usecase.Options {
	return usecase.Options{
		Year:       int(d.Year),
		CB:         d.CB,
		Resolution: d.Resolution,
		Cache:      cacheCfg.Enabled(),
		Protocol:   model.Protocol(d.Protocol),
		Timeout:    d.Timeout,
	}
}

func cmdFetch(fileCfg *config.File, cacheCfg *config.Cache) *cli.Command {
	var (
		datasetCfg config.Dataset
		states     []string
		counties   []string
		layerType  string
		startsWith []string
	)

	flags := datasetCfg.Flags()
	flags = append(flags,
		&cli.StringSliceFlag{
			Name:        "state",
			Usage:       "State name, postal abbreviation, or FIPS code (repeatable)",
			Destination: &states,
		},
		&cli.StringSliceFlag{
			Name:        "county",
			Usage:       "County name or FIPS code (repeatable)",
			Destination: &counties,
		},
		&cli.StringFlag{
			Name:        "type",
			Usage:       "Layer variant (school districts: unified/elementary/secondary; legislative: upper/lower; new-england: necta/combined/divisions)",
			Destination: &layerType,
		},
		&cli.StringSliceFlag{
			Name:        "starts-with",
			Usage:       "ZCTA code prefix filter (repeatable)",
			Destination: &startsWith,
		},
	)

	return &cli.Command{
		Name:      "fetch",
		Usage:     "Download a geography dataset and print a summary",
		ArgsUsage: "<geography>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one geography argument is required, e.g. counties")
			}
			geography := c.Args().First()

			// Flags and env vars win; the file only fills unset values.
			if err := fileCfg.Apply(nil, nil, &datasetCfg); err != nil {
				return err
			}

			t, err := newTiger(cacheCfg)
			if err != nil {
				return err
			}
			opt := datasetOptions(cacheCfg, &datasetCfg)

			fc, err := t.FetchGeography(ctx, geography, opt, usecase.GeographyQuery{
				States:     states,
				Counties:   counties,
				LayerType:  layerType,
				StartsWith: startsWith,
			})
			if err != nil {
				return err
			}

			printSummary(fc, geography)
			return nil
		},
	}
}

func printSummary(fc *model.FeatureCollection, geography string) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.SetStyle(table.StyleRounded)
	w.AppendHeader(table.Row{"Geography", "Features", "Attributes", "Bound"})

	bound := fc.Bound()
	w.AppendRow(table.Row{
		geography,
		fc.Len(),
		len(fc.PropertyKeys()),
		bound,
	})
	w.Render()
}
