// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/models"
)

const entrySuffix = ".json"

// FileStore keeps one JSON file per entry in a directory.
//
// The directory is created by the first Put. Writes go to a temporary file
// in the same directory and are renamed into place, so readers see either
// the old record or the new one. Temporary files start with "." and end in
// ".tmp" and are never listed as entries.
type FileStore struct {
	dir  string
	opts Options
}

// NewFileStore returns a store rooted at dir. No filesystem access happens
// until the first operation.
func NewFileStore(dir string, opts Options) *FileStore {
	opts.Logger = opts.Logger.With().Str("component", "cache").Str("backend", BackendFile).Logger()
	return &FileStore{dir: dir, opts: opts}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+entrySuffix)
}

// Get returns the stored result when it exists, decodes, and is within TTL.
func (s *FileStore) Get(_ context.Context, key string) (*models.RecommendationResult, bool) {
	if !validKey(key) {
		metrics.RecordCacheLookup(BackendFile, false)
		return nil, false
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.opts.Logger.Debug().Err(err).Str("key", key).Msg("Cache read failed")
		}
		metrics.RecordCacheLookup(BackendFile, false)
		return nil, false
	}

	entry, err := decodeEntry(data)
	if err != nil {
		s.opts.Logger.Debug().Err(err).Str("key", key).Msg("Ignoring corrupt cache entry")
		metrics.RecordCacheLookup(BackendFile, false)
		return nil, false
	}

	if s.opts.expired(entry.CreatedAt(), s.opts.now()) {
		metrics.RecordCacheLookup(BackendFile, false)
		return nil, false
	}

	metrics.RecordCacheLookup(BackendFile, true)
	return entry.Recommendations, true
}

// Put writes the result atomically.
func (s *FileStore) Put(_ context.Context, key string, result *models.RecommendationResult, meta Meta) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if result == nil {
		return errors.New("cache: nil result")
	}

	data, err := json.Marshal(newEntry(result, meta, s.opts.now(), s.opts.TTL))
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := s.writeAtomic(key, data); err != nil {
		metrics.CacheWriteErrors.WithLabelValues(BackendFile).Inc()
		return err
	}
	return nil
}

func (s *FileStore) writeAtomic(key string, data []byte) (err error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("rename cache entry: %w", err)
	}
	return nil
}

// entryNames lists entry filenames. A missing directory is an empty cache.
func (s *FileStore) entryNames() ([]os.DirEntry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list cache directory: %w", err)
	}
	out := dirEntries[:0]
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, entrySuffix) {
			continue
		}
		out = append(out, de)
	}
	return out, nil
}

// SweepExpired removes expired and undecodable entries. Entries that vanish
// while the sweep runs are skipped and not counted.
func (s *FileStore) SweepExpired(ctx context.Context) (int, error) {
	names, err := s.entryNames()
	if err != nil {
		return 0, err
	}

	now := s.opts.now()
	removed := 0
	for _, de := range names {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		path := filepath.Join(s.dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.opts.Logger.Warn().Err(err).Str("file", de.Name()).Msg("Cannot read cache entry during sweep")
			}
			continue
		}

		entry, decodeErr := decodeEntry(data)
		if decodeErr == nil && !s.opts.expired(entry.CreatedAt(), now) {
			continue
		}

		if err := os.Remove(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.opts.Logger.Warn().Err(err).Str("file", de.Name()).Msg("Cannot remove cache entry")
			}
			continue
		}
		removed++
	}

	metrics.RecordCacheEvictions(BackendFile, removed)
	if removed > 0 {
		s.opts.Logger.Info().Int("removed", removed).Msg("Swept expired cache entries")
	}
	return removed, nil
}

// ClearAll removes every entry.
func (s *FileStore) ClearAll(ctx context.Context) (int, error) {
	names, err := s.entryNames()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, de := range names {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := os.Remove(filepath.Join(s.dir, de.Name())); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return removed, fmt.Errorf("remove cache entry %s: %w", de.Name(), err)
			}
			continue
		}
		removed++
	}

	metrics.RecordCacheEvictions(BackendFile, removed)
	metrics.CacheSize.WithLabelValues(BackendFile).Set(0)
	s.opts.Logger.Info().Int("removed", removed).Msg("Cleared cache")
	return removed, nil
}

// Stats scans the directory. It does not modify anything.
func (s *FileStore) Stats(ctx context.Context) (Stats, error) {
	var acc statsAccumulator

	names, err := s.entryNames()
	if err != nil {
		return Stats{}, err
	}

	now := s.opts.now()
	for _, de := range names {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		data, err := os.ReadFile(filepath.Join(s.dir, de.Name()))
		if err != nil {
			continue
		}
		entry, decodeErr := decodeEntry(data)
		acc.add(int64(len(data)), entry, decodeErr, &s.opts, now)
	}

	stats := acc.finish(BackendFile, s.dir, s.opts.TTL)
	metrics.CacheSize.WithLabelValues(BackendFile).Set(float64(stats.ActiveEntries))
	return stats, nil
}

// Close is a no-op; the store holds no open resources.
func (s *FileStore) Close() error {
	return nil
}
