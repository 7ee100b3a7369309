// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Command shoprecctl inspects the catalog and recommendation cache and runs
// one-off recommendation requests without the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tomtom215/shoprec/internal/command"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := command.NewApp(os.Stdout, version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
