// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/llm"
	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/validation"
)

func (a *App) recommendCommand() *cli.Command {
	return &cli.Command{
		Name:      "recommend",
		Usage:     "run one recommendation request locally",
		UsageText: "shoprecctl recommend [--price-range 50-200] [--category C]... [--brand B]... [--history ID]...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "price-range", Usage: `"all" or "<min>-<max>"`, Value: models.PriceRangeAll},
			&cli.StringSliceFlag{Name: "category", Usage: "preferred category (repeatable)"},
			&cli.StringSliceFlag{Name: "brand", Usage: "preferred brand (repeatable)"},
			&cli.StringSliceFlag{Name: "history", Usage: "browsed product id (repeatable)"},
			&cli.BoolFlag{Name: "candidates-only", Usage: "print the scored candidate set without calling the model"},
			&cli.BoolFlag{Name: "no-cache", Usage: "bypass the recommendation cache"},
		},
		Action: a.recommend,
	}
}

func (a *App) recommend(ctx context.Context, cmd *cli.Command) error {
	req := models.RecommendationRequest{
		Preferences: models.UserPreferences{
			PriceRange: cmd.String("price-range"),
			Categories: cmd.StringSlice("category"),
			Brands:     cmd.StringSlice("brand"),
		},
		BrowsingHistory: cmd.StringSlice("history"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return verr
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.Catalog.DataPath)
	if err != nil {
		return err
	}

	deps := recommend.Deps{Completer: llm.NewClient(cfg.LLM.ClientConfig(), logging.WithComponent("llm"))}
	if cfg.Cache.Enabled && !cmd.Bool("no-cache") && !cmd.Bool("candidates-only") {
		store, err := cache.New(cfg.Cache.Backend, cfg.Cache.Dir, cache.Options{
			TTL:    cfg.Cache.TTL(),
			Logger: logging.WithComponent("cache"),
		})
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Cache = store
	}

	orch, err := recommend.NewOrchestrator(ctx, cfg.RecommendConfig(), deps, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	if cmd.Bool("candidates-only") {
		a.writeCandidates(orch.Candidates(req.Preferences, req.BrowsingHistory, cat))
		return nil
	}

	result, err := orch.GenerateRecommendations(ctx, req.Preferences, req.BrowsingHistory, cat)
	if err != nil {
		return err
	}
	a.writeResult(result)
	if result.Error != "" {
		return fmt.Errorf("model reply could not be used: %s", result.Error)
	}
	return nil
}

func (a *App) writeCandidates(candidates []recommend.ScoredCandidate) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tID\tNAME\tCATEGORY\tBREAKDOWN")
	for i := range candidates {
		c := &candidates[i]
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\n", c.Score, c.Product.ID, c.Product.Name, c.Product.Category, formatBreakdown(c.Breakdown))
	}
	_ = tw.Flush()
}

func formatBreakdown(b map[string]float64) string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, b[name])
	}
	return strings.Join(parts, " ")
}

func (a *App) writeResult(result *models.RecommendationResult) {
	if result.Error != "" {
		fmt.Fprintf(a.out, "error: %s\n", result.Error)
		return
	}
	source := "model"
	if result.Cached {
		source = "cache"
	}
	fmt.Fprintf(a.out, "%d recommendations (from %s)\n\n", result.Count, source)
	for i, r := range result.Recommendations {
		fmt.Fprintf(a.out, "%d. %s [%s] score %g\n   %s\n", i+1, r.Product.Name, r.Product.ID, r.ConfidenceScore, r.Explanation)
	}
}
