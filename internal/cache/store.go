// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/models"
)

// Backend names accepted by New.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

var (
	// ErrInvalidKey is returned by Put for keys that are not fingerprints.
	ErrInvalidKey = errors.New("cache: invalid key")

	// ErrCorruptEntry marks a stored record that cannot be decoded.
	ErrCorruptEntry = errors.New("cache: corrupt entry")
)

// Store persists recommendation results keyed by request fingerprint.
//
// Get never fails: missing, expired, undecodable and concurrently removed
// entries are all misses. Implementations are safe for concurrent use; Put
// on the same key from two goroutines leaves one complete record.
type Store interface {
	Get(ctx context.Context, key string) (*models.RecommendationResult, bool)
	Put(ctx context.Context, key string, result *models.RecommendationResult, meta Meta) error
	SweepExpired(ctx context.Context) (int, error)
	ClearAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Meta describes the request an entry was produced for. It is stored
// alongside the result for operators inspecting the cache.
type Meta struct {
	Preferences  models.UserPreferences
	HistoryCount int
}

// Entry is the persisted record. Timestamp is Unix seconds with fractional
// part.
type Entry struct {
	Timestamp       float64                      `json:"timestamp"`
	Recommendations *models.RecommendationResult `json:"recommendations"`
	Metadata        EntryMetadata                `json:"metadata"`
}

// EntryMetadata is informational only; expiry is computed from Timestamp.
type EntryMetadata struct {
	CacheDate            string                 `json:"cache_date"`
	ExpiresAt            string                 `json:"expires_at"`
	Preferences          models.UserPreferences `json:"preferences"`
	BrowsingHistoryCount int                    `json:"browsing_history_count"`
}

// CreatedAt returns Timestamp as a time.
func (e *Entry) CreatedAt() time.Time {
	sec, frac := math.Modf(e.Timestamp)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// Stats is a point-in-time view of the cache. Active, expired and corrupt
// entries are classified with the same rule Get uses.
type Stats struct {
	Enabled        bool    `json:"enabled"`
	Backend        string  `json:"backend"`
	Location       string  `json:"location"`
	TotalEntries   int     `json:"total_entries"`
	ActiveEntries  int     `json:"active_entries"`
	ExpiredEntries int     `json:"expired_entries"`
	CorruptEntries int     `json:"corrupt_entries"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeKB    float64 `json:"total_size_kb"`
	TotalSizeHuman string  `json:"total_size_human"`
	TTLHours       float64 `json:"ttl_hours"`
}

// Options are shared by all backends.
type Options struct {
	// TTL is the maximum entry age. Zero or negative expires everything.
	TTL time.Duration

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	Logger zerolog.Logger
}

func (o *Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// expired reports whether an entry created at createdAt is past its TTL.
func (o *Options) expired(createdAt, now time.Time) bool {
	if o.TTL <= 0 {
		return true
	}
	return now.Sub(createdAt) > o.TTL
}

// New opens the store for backend rooted at dir.
func New(backend, dir string, opts Options) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir, opts), nil
	case BackendBadger:
		return OpenBadgerStore(dir, opts)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

func newEntry(result *models.RecommendationResult, meta Meta, now time.Time, ttl time.Duration) *Entry {
	stored := *result
	stored.Cached = false
	return &Entry{
		Timestamp:       float64(now.UnixNano()) / 1e9,
		Recommendations: &stored,
		Metadata: EntryMetadata{
			CacheDate:            now.UTC().Format(time.RFC3339),
			ExpiresAt:            now.Add(ttl).UTC().Format(time.RFC3339),
			Preferences:          meta.Preferences,
			BrowsingHistoryCount: meta.HistoryCount,
		},
	}
}

// decodeEntry parses a stored record. A record without a timestamp or
// result is treated as corrupt.
func decodeEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}
	if e.Timestamp <= 0 || e.Recommendations == nil {
		return nil, ErrCorruptEntry
	}
	return &e, nil
}

// validKey accepts lowercase hex strings, which is what Fingerprint emits.
// Anything else could escape the cache directory when used as a filename.
func validKey(key string) bool {
	if key == "" || len(key) > 128 {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// statsAccumulator builds Stats while scanning entries.
type statsAccumulator struct {
	stats Stats
}

func (a *statsAccumulator) add(size int64, entry *Entry, decodeErr error, opts *Options, now time.Time) {
	a.stats.TotalEntries++
	a.stats.TotalSizeBytes += size
	switch {
	case decodeErr != nil:
		a.stats.CorruptEntries++
	case opts.expired(entry.CreatedAt(), now):
		a.stats.ExpiredEntries++
	default:
		a.stats.ActiveEntries++
	}
}

func (a *statsAccumulator) finish(backend, location string, ttl time.Duration) Stats {
	s := a.stats
	s.Enabled = true
	s.Backend = backend
	s.Location = location
	s.TotalSizeKB = math.Round(float64(s.TotalSizeBytes)/1024*100) / 100
	s.TotalSizeHuman = humanize.IBytes(uint64(s.TotalSizeBytes))
	s.TTLHours = ttl.Hours()
	return s
}
