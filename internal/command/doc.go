// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package command implements the shoprecctl command tree on urfave/cli v3.
// It reads the same configuration as the server and operates on the
// catalog and cache directly.
package command
