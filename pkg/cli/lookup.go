package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/cli/config"
	"github.com/m-mizutani/tigerline/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLookup(cacheCfg *config.Cache) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Resolve a state (and optionally county) to FIPS codes",
		ArgsUsage: "<state> [county]",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 || c.Args().Len() > 2 {
				return goerr.New("usage: lookup <state> [county]")
			}

			state, err := usecase.ValidateState(ctx, c.Args().Get(0))
			if err != nil {
				return err
			}

			if c.Args().Len() == 1 {
				fmt.Println(state)
				return nil
			}

			t, err := newTiger(cacheCfg)
			if err != nil {
				return err
			}
			county, err := t.ValidateCounty(ctx, state, c.Args().Get(1), usecase.Options{
				Cache: cacheCfg.Enabled(),
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s%s\n", state, county)
			return nil
		},
	}
}
