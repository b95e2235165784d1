package cli

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/infra/censusapi"
	"github.com/urfave/cli/v3"
)

func cmdCensus() *cli.Command {
	var (
		dataset   string
		year      int64
		variables []string
		forClause string
		inClause  string
		apiKey    string
		apiURL    string
		geoid     bool
		head      int64
	)

	return &cli.Command{
		Name:  "census",
		Usage: "Query the Census data API and print the result table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dataset",
				Usage:       "Dataset path, e.g. acs/acs5 or dec/pl",
				Required:    true,
				Destination: &dataset,
			},
			&cli.Int64Flag{
				Name:        "year",
				Usage:       "Data year (omit for timeseries datasets)",
				Destination: &year,
			},
			&cli.StringSliceFlag{
				Name:        "get",
				Usage:       "Variable to retrieve (repeatable)",
				Required:    true,
				Destination: &variables,
			},
			&cli.StringFlag{
				Name:        "for",
				Usage:       "Geography clause, e.g. 'county:*'",
				Destination: &forClause,
			},
			&cli.StringFlag{
				Name:        "in",
				Usage:       "Containing geography clause, e.g. 'state:48'",
				Destination: &inClause,
			},
			&cli.StringFlag{
				Name:        "api-key",
				Usage:       "Census API key",
				Sources:     cli.EnvVars("TIGERLINE_CENSUS_API_KEY"),
				Destination: &apiKey,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "Data API endpoint override",
				Destination: &apiURL,
			},
			&cli.BoolFlag{
				Name:        "geoid",
				Usage:       "Collapse geography identifier columns into a GEOID column",
				Destination: &geoid,
			},
			&cli.Int64Flag{
				Name:        "head",
				Usage:       "Number of rows to print",
				Value:       10,
				Destination: &head,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var opts []censusapi.Option
			if apiKey != "" {
				opts = append(opts, censusapi.WithAPIKey(apiKey))
			}
			if apiURL != "" {
				opts = append(opts, censusapi.WithBaseURL(apiURL))
			}
			client := censusapi.New(opts...)

			params := map[string]string{}
			if forClause != "" {
				params["for"] = forClause
			}
			if inClause != "" {
				params["in"] = inClause
			}

			result, err := client.Get(ctx, model.CensusRequest{
				Dataset:     dataset,
				Year:        int(year),
				Variables:   variables,
				Params:      params,
				ReturnGEOID: geoid,
			})
			if err != nil {
				return err
			}

			w := table.NewWriter()
			w.SetOutputMirror(os.Stdout)
			w.SetStyle(table.StyleRounded)

			header := make(table.Row, len(result.Columns))
			for i, col := range result.Columns {
				header[i] = col
			}
			w.AppendHeader(header)
			for _, row := range result.Head(int(head)).Rows {
				r := make(table.Row, len(row))
				for i, v := range row {
					r[i] = v
				}
				w.AppendRow(r)
			}
			w.AppendFooter(table.Row{"rows", len(result.Rows)})
			w.Render()
			return nil
		},
	}
}
