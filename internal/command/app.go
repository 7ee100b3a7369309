// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/logging"
)

// App holds what every subcommand shares.
type App struct {
	out io.Writer
}

// NewApp builds the shoprecctl command tree writing to out.
func NewApp(out io.Writer, version string) *cli.Command {
	if out == nil {
		out = os.Stdout
	}
	a := &App{out: out}

	return &cli.Command{
		Name:    "shoprecctl",
		Usage:   "inspect the catalog, the recommendation cache and the recommender",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "product catalog JSON (overrides DATA_PATH)",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "cache directory (overrides CACHE_DIR)",
			},
			&cli.StringFlag{
				Name:  "cache-backend",
				Usage: "file or badger (overrides CACHE_BACKEND)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "debug logging on stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := "warn"
			if cmd.Bool("verbose") {
				level = "debug"
			}
			logging.Init(logging.Config{Level: level, Format: "console", Output: os.Stderr})
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.catalogCommand(),
			a.cacheCommand(),
			a.recommendCommand(),
		},
	}
}

// loadConfig reads the server configuration and applies global flag
// overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := cmd.String("catalog"); v != "" {
		cfg.Catalog.DataPath = v
	}
	if v := cmd.String("cache-dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := cmd.String("cache-backend"); v != "" {
		cfg.Cache.Backend = v
	}
	return cfg, nil
}
