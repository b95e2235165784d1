package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/infra/geocoder"
	"github.com/urfave/cli/v3"
)

func cmdGeocode() *cli.Command {
	var (
		address   string
		street    string
		city      string
		state     string
		zip       string
		lon       float64
		lat       float64
		reverse   bool
		benchmark string
		vintage   string
		geography string
		limit     int64
		keepGeo   bool
	)

	return &cli.Command{
		Name:  "geocode",
		Usage: "Resolve an address to coordinates and Census geographies, or reverse",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "address",
				Usage:       "One-line address to geocode",
				Destination: &address,
			},
			&cli.StringFlag{
				Name:        "street",
				Usage:       "Street for a structured address query",
				Destination: &street,
			},
			&cli.StringFlag{
				Name:        "city",
				Destination: &city,
			},
			&cli.StringFlag{
				Name:        "state",
				Destination: &state,
			},
			&cli.StringFlag{
				Name:        "zip",
				Destination: &zip,
			},
			&cli.FloatFlag{
				Name:        "lon",
				Usage:       "Longitude for reverse lookup",
				Destination: &lon,
			},
			&cli.FloatFlag{
				Name:        "lat",
				Usage:       "Latitude for reverse lookup",
				Destination: &lat,
			},
			&cli.BoolFlag{
				Name:        "reverse",
				Usage:       "Look up the geographies containing --lon/--lat",
				Destination: &reverse,
			},
			&cli.StringFlag{
				Name:        "benchmark",
				Usage:       "Geocoder benchmark",
				Value:       model.DefaultBenchmark,
				Destination: &benchmark,
			},
			&cli.StringFlag{
				Name:        "vintage",
				Usage:       "Geography vintage",
				Value:       model.DefaultVintage,
				Destination: &vintage,
			},
			&cli.StringFlag{
				Name:        "geography",
				Usage:       "Geography layer to report",
				Value:       model.DefaultGeography,
				Destination: &geography,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "Maximum number of matches",
				Value:       1,
				Destination: &limit,
			},
			&cli.BoolFlag{
				Name:        "keep-geography",
				Usage:       "Include all geography attributes in the output",
				Destination: &keepGeo,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client := geocoder.New()

			if reverse {
				records, err := client.Lookup(ctx, model.LookupRequest{
					Longitude: lon,
					Latitude:  lat,
					Benchmark: benchmark,
					Vintage:   vintage,
					Geography: geography,
					Limit:     int(limit),

					KeepGeographyColumns: keepGeo,
				})
				if err != nil {
					return err
				}

				w := table.NewWriter()
				w.SetOutputMirror(os.Stdout)
				w.SetStyle(table.StyleRounded)
				w.AppendHeader(table.Row{"GEOID", "Attributes"})
				for _, r := range records {
					w.AppendRow(table.Row{r.GEOID, len(r.Attributes)})
				}
				w.Render()
				return nil
			}

			if address == "" && street == "" {
				return goerr.New("either --address or --street is required (or --reverse with --lon/--lat)")
			}

			matches, err := client.Geocode(ctx, model.GeocodeRequest{
				Address:   address,
				Street:    street,
				City:      city,
				State:     state,
				Zip:       zip,
				Benchmark: benchmark,
				Vintage:   vintage,
				Geography: geography,
				Limit:     int(limit),

				KeepGeographyColumns: keepGeo,
			})
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Println("no matches")
				return nil
			}

			w := table.NewWriter()
			w.SetOutputMirror(os.Stdout)
			w.SetStyle(table.StyleRounded)
			w.AppendHeader(table.Row{"Matched address", "Longitude", "Latitude", "GEOID"})
			for _, m := range matches {
				w.AppendRow(table.Row{m.MatchedAddress, m.Longitude, m.Latitude, m.GEOID})
			}
			w.Render()
			return nil
		},
	}
}
