// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/models"
)

func (a *App) catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "inspect the product catalog",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "list products",
				UsageText: "shoprecctl catalog list [--category C] [--brand B] [--q TEXT]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "exact category, case-insensitive"},
					&cli.StringFlag{Name: "brand", Usage: "exact brand, case-insensitive"},
					&cli.StringFlag{Name: "q", Usage: "substring of name, description, category or brand"},
					&cli.FloatFlag{Name: "min-rating", Usage: "minimum rating"},
				},
				Action: a.catalogList,
			},
			{
				Name:   "facets",
				Usage:  "list distinct categories and brands",
				Action: a.catalogFacets,
			},
		},
	}
}

func openCatalog(cmd *cli.Command) (*catalog.Catalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.Catalog.DataPath)
}

func (a *App) catalogList(_ context.Context, cmd *cli.Command) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}

	products := cat.Filter(catalog.Filter{
		Search:    cmd.String("q"),
		Category:  cmd.String("category"),
		Brand:     cmd.String("brand"),
		MinRating: cmd.Float("min-rating"),
	})

	writeProducts(a.out, products)
	fmt.Fprintf(a.out, "\n%s of %s products\n", humanize.Comma(int64(len(products))), humanize.Comma(int64(cat.Len())))
	return nil
}

func (a *App) catalogFacets(_ context.Context, cmd *cli.Command) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	f := cat.Facets()
	fmt.Fprintf(a.out, "categories: %s\n", strings.Join(f.Categories, ", "))
	fmt.Fprintf(a.out, "brands:     %s\n", strings.Join(f.Brands, ", "))
	return nil
}

func writeProducts(out io.Writer, products []models.Product) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tBRAND\tPRICE\tRATING")
	for i := range products {
		p := &products[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t$%s\t%.1f\n",
			p.ID, p.Name, p.Category, p.Brand, humanize.CommafWithDigits(p.Price, 2), p.Rating)
	}
	_ = tw.Flush()
}
