package cli

import (
	"context"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/cli/config"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLodes(cacheCfg *config.Cache) *cli.Command {
	var (
		state     string
		year      int64
		lodesType string
		part      string
		jobType   string
		segment   string
		head      int64
		timeout   time.Duration
		protocol  string
	)

	return &cli.Command{
		Name:  "lodes",
		Usage: "Fetch a LODES commuting-data extract",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "state",
				Usage:       "State name, postal abbreviation, or FIPS code",
				Required:    true,
				Destination: &state,
			},
			&cli.Int64Flag{
				Name:        "year",
				Usage:       "Data year",
				Required:    true,
				Destination: &year,
			},
			&cli.StringFlag{
				Name:        "type",
				Usage:       "LODES file family (od, rac, wac)",
				Value:       "od",
				Destination: &lodesType,
			},
			&cli.StringFlag{
				Name:        "part",
				Usage:       "od file part (main or aux)",
				Value:       "main",
				Destination: &part,
			},
			&cli.StringFlag{
				Name:        "job-type",
				Usage:       "Job type code",
				Value:       "JT00",
				Destination: &jobType,
			},
			&cli.StringFlag{
				Name:        "segment",
				Usage:       "Workforce segment for rac/wac files",
				Value:       "S000",
				Destination: &segment,
			},
			&cli.Int64Flag{
				Name:        "head",
				Usage:       "Number of rows to print",
				Value:       10,
				Destination: &head,
			},
			&cli.StringFlag{
				Name:        "protocol",
				Usage:       "Primary download transport (http or ftp)",
				Value:       "http",
				Destination: &protocol,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Timeout for a single download attempt",
				Value:       model.DefaultTimeout,
				Destination: &timeout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			t, err := newTiger(cacheCfg)
			if err != nil {
				return err
			}

			result, err := t.Lodes(ctx, usecase.LodesOptions{
				Type:     usecase.LodesType(lodesType),
				Part:     part,
				JobType:  jobType,
				Segment:  segment,
				Cache:    cacheCfg.Enabled(),
				Protocol: model.Protocol(protocol),
				Timeout:  timeout,
			}, state, int(year))
			if err != nil {
				return err
			}
			if len(result.Columns) == 0 {
				return goerr.New("extract has no columns")
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
