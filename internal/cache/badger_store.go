// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/models"
)

const badgerKeyPrefix = "rec:"

// BadgerStore keeps entries in an embedded BadgerDB. Each Put is a single
// transaction, so records are replaced atomically.
//
// Expiry is evaluated against the record timestamp exactly as FileStore
// does; badger's own TTL is not used so that Stats can still report
// expired entries until they are swept.
type BadgerStore struct {
	db       *badger.DB
	location string
	opts     Options
}

// OpenBadgerStore opens (creating if needed) a database in dir.
func OpenBadgerStore(dir string, opts Options) (*BadgerStore, error) {
	bopts := badger.DefaultOptions(dir)
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return NewBadgerStoreFromDB(db, dir, opts), nil
}

// NewBadgerStoreFromDB wraps an already open database. Close closes db.
func NewBadgerStoreFromDB(db *badger.DB, location string, opts Options) *BadgerStore {
	opts.Logger = opts.Logger.With().Str("component", "cache").Str("backend", BackendBadger).Logger()
	return &BadgerStore{db: db, location: location, opts: opts}
}

func badgerKey(key string) []byte {
	return []byte(badgerKeyPrefix + key)
}

// Get returns the stored result when present, decodable, and within TTL.
func (s *BadgerStore) Get(_ context.Context, key string) (*models.RecommendationResult, bool) {
	if !validKey(key) {
		metrics.RecordCacheLookup(BackendBadger, false)
		return nil, false
	}

	var entry *Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			e, err := decodeEntry(val)
			if err != nil {
				return err
			}
			entry = e
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.opts.Logger.Debug().Err(err).Str("key", key).Msg("Ignoring unreadable cache entry")
		}
		metrics.RecordCacheLookup(BackendBadger, false)
		return nil, false
	}

	if s.opts.expired(entry.CreatedAt(), s.opts.now()) {
		metrics.RecordCacheLookup(BackendBadger, false)
		return nil, false
	}

	metrics.RecordCacheLookup(BackendBadger, true)
	return entry.Recommendations, true
}

// Put stores the result in one transaction.
func (s *BadgerStore) Put(_ context.Context, key string, result *models.RecommendationResult, meta Meta) error {
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

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(key), data)
	})
	if err != nil {
		metrics.CacheWriteErrors.WithLabelValues(BackendBadger).Inc()
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// scan visits every entry. fn receives the key, the raw value size and the
// decode result.
func (s *BadgerStore) scan(ctx context.Context, fn func(key []byte, size int64, entry *Entry, decodeErr error)) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			key := item.KeyCopy(nil)
			err := item.Value(func(val []byte) error {
				entry, decodeErr := decodeEntry(val)
				fn(key, int64(len(val)), entry, decodeErr)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) deleteKeys(keys [][]byte) (int, error) {
	removed := 0
	for _, k := range keys {
		err := s.db.Update(func(txn *badger.Txn) error {
			if _, err := txn.Get(k); err != nil {
				return err
			}
			return txn.Delete(k)
		})
		if err != nil {
			// Gone already, or rewritten by a concurrent Put that wins.
			if errors.Is(err, badger.ErrKeyNotFound) || errors.Is(err, badger.ErrConflict) {
				continue
			}
			return removed, fmt.Errorf("delete cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}

// SweepExpired removes expired and undecodable entries.
func (s *BadgerStore) SweepExpired(ctx context.Context) (int, error) {
	now := s.opts.now()
	var doomed [][]byte
	err := s.scan(ctx, func(key []byte, _ int64, entry *Entry, decodeErr error) {
		if decodeErr != nil || s.opts.expired(entry.CreatedAt(), now) {
			doomed = append(doomed, key)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("scan cache: %w", err)
	}

	removed, err := s.deleteKeys(doomed)
	metrics.RecordCacheEvictions(BackendBadger, removed)
	if removed > 0 {
		s.opts.Logger.Info().Int("removed", removed).Msg("Swept expired cache entries")
	}
	return removed, err
}

// ClearAll removes every entry.
func (s *BadgerStore) ClearAll(ctx context.Context) (int, error) {
	var all [][]byte
	err := s.scan(ctx, func(key []byte, _ int64, _ *Entry, _ error) {
		all = append(all, key)
	})
	if err != nil {
		return 0, fmt.Errorf("scan cache: %w", err)
	}

	removed, err := s.deleteKeys(all)
	metrics.RecordCacheEvictions(BackendBadger, removed)
	metrics.CacheSize.WithLabelValues(BackendBadger).Set(0)
	s.opts.Logger.Info().Int("removed", removed).Msg("Cleared cache")
	return removed, err
}

// Stats reports entry counts and value sizes.
func (s *BadgerStore) Stats(ctx context.Context) (Stats, error) {
	var acc statsAccumulator
	now := s.opts.now()
	err := s.scan(ctx, func(_ []byte, size int64, entry *Entry, decodeErr error) {
		acc.add(size, entry, decodeErr, &s.opts, now)
	})
	if err != nil {
		return Stats{}, fmt.Errorf("scan cache: %w", err)
	}

	stats := acc.finish(BackendBadger, s.location, s.opts.TTL)
	metrics.CacheSize.WithLabelValues(BackendBadger).Set(float64(stats.ActiveEntries))
	return stats, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
