// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/logging"
)

func (a *App) cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "inspect and maintain the recommendation cache",
		Description: "The badger backend holds an exclusive lock on its directory; " +
			"stop the server before using these commands against it.",
		Commands: []*cli.Command{
			{Name: "stats", Usage: "show entry counts and size", Action: a.cacheStats},
			{Name: "sweep", Usage: "remove expired and unreadable entries", Action: a.cacheSweep},
			{
				Name:  "clear",
				Usage: "remove every entry",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
				},
				Action: a.cacheClear,
			},
		},
	}
}

func openStore(cmd *cli.Command) (cache.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cache.New(cfg.Cache.Backend, cfg.Cache.Dir, cache.Options{
		TTL:    cfg.Cache.TTL(),
		Logger: logging.WithComponent("cache"),
	})
}

func (a *App) cacheStats(ctx context.Context, cmd *cli.Command) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "backend:   %s\n", s.Backend)
	fmt.Fprintf(a.out, "location:  %s\n", s.Location)
	fmt.Fprintf(a.out, "ttl:       %g hours\n", s.TTLHours)
	fmt.Fprintf(a.out, "entries:   %s total, %s active, %s expired, %s corrupt\n",
		humanize.Comma(int64(s.TotalEntries)),
		humanize.Comma(int64(s.ActiveEntries)),
		humanize.Comma(int64(s.ExpiredEntries)),
		humanize.Comma(int64(s.CorruptEntries)))
	fmt.Fprintf(a.out, "size:      %s\n", s.TotalSizeHuman)
	return nil
}

func (a *App) cacheSweep(ctx context.Context, cmd *cli.Command) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.SweepExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "removed %s %s\n", humanize.Comma(int64(removed)), plural(removed, "entry", "entries"))
	return nil
}

func (a *App) cacheClear(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return errors.New("refusing to clear the cache without --yes")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.ClearAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "removed %s %s\n", humanize.Comma(int64(removed)), plural(removed, "entry", "entries"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
