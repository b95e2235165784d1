package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/tigerline/pkg/cli/config"
	"github.com/m-mizutani/tigerline/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		fileCfg   config.File
		loggerCfg config.Logger
		cacheCfg  config.Cache
		logger    *slog.Logger
	)

	flags := fileCfg.Flags()
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, cacheCfg.Flags()...)

	app := &cli.Command{
		Name:    "tigerline",
		Usage:   "US Census TIGER/Line and cartographic data access",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := fileCfg.Apply(&loggerCfg, &cacheCfg, nil); err != nil {
				return nil, err
			}

			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdCensus(),
			cmdFetch(&fileCfg, &cacheCfg),
			cmdGeocode(),
			cmdLodes(&cacheCfg),
			cmdLookup(&cacheCfg),
			cmdServe(&cacheCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
