// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package cache stores recommendation results so that repeated identical
// requests do not call the language model again.
//
// Entries are keyed by Fingerprint(preferences, history) and expire TTL
// after they were written. Two backends implement Store:
//
//   - FileStore: one <fingerprint>.json file per entry, written atomically
//   - BadgerStore: the same records in an embedded BadgerDB
//
// A stored record looks like:
//
//	{
//	  "timestamp": 1767355200.123,
//	  "recommendations": {"recommendations": [...], "count": 5},
//	  "metadata": {
//	    "cache_date": "2026-01-02T12:00:00Z",
//	    "expires_at": "2026-01-03T12:00:00Z",
//	    "preferences": {"priceRange": "all", "categories": [], "brands": []},
//	    "browsing_history_count": 3
//	  }
//	}
//
// Records that fail to decode are never returned and are removed by
// SweepExpired. Hits, misses, evictions and entry counts are exported as
// Prometheus metrics labelled by backend.
package cache
