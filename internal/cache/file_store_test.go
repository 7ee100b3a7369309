// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/models"
)

func TestFileStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T, opts Options) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "cache"), opts)
	})
}

func TestFileStore_LazyDirectory(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	s := NewFileStore(dir, Options{TTL: time.Hour, Logger: zerolog.Nop()})

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory should not exist before first Put, stat err = %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() on missing dir error = %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("Stats().TotalEntries = %d, want 0", stats.TotalEntries)
	}
	if n, err := s.SweepExpired(ctx); err != nil || n != 0 {
		t.Errorf("SweepExpired() on missing dir = %d, %v", n, err)
	}

	key := Fingerprint(models.UserPreferences{PriceRange: "all"}, nil)
	if err := s.Put(ctx, key, sampleResult("p1"), Meta{}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, key+".json")); err != nil {
		t.Errorf("entry file missing after Put: %v", err)
	}
}

func TestFileStore_RecordFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	clock := newFakeClock()
	s := NewFileStore(dir, Options{TTL: 24 * time.Hour, Clock: clock.Now, Logger: zerolog.Nop()})

	prefs := models.UserPreferences{PriceRange: "10-50", Categories: []string{"electronics"}}
	key := Fingerprint(prefs, []string{"a", "b", "c"})
	if err := s.Put(ctx, key, sampleResult("p1"), Meta{Preferences: prefs, HistoryCount: 3}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, key+".json"))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}

	if ts, _ := raw["timestamp"].(float64); ts != float64(clock.Now().Unix()) {
		t.Errorf("timestamp = %v, want %d", raw["timestamp"], clock.Now().Unix())
	}
	meta, _ := raw["metadata"].(map[string]interface{})
	if meta["cache_date"] != "2026-01-02T12:00:00Z" {
		t.Errorf("metadata.cache_date = %v", meta["cache_date"])
	}
	if meta["expires_at"] != "2026-01-03T12:00:00Z" {
		t.Errorf("metadata.expires_at = %v", meta["expires_at"])
	}
	if meta["browsing_history_count"] != float64(3) {
		t.Errorf("metadata.browsing_history_count = %v", meta["browsing_history_count"])
	}
	if _, ok := raw["recommendations"].(map[string]interface{}); !ok {
		t.Errorf("recommendations missing: %s", data)
	}
}

func TestFileStore_CorruptEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir, Options{TTL: time.Hour, Logger: zerolog.Nop()})

	good := Fingerprint(models.UserPreferences{PriceRange: "all"}, nil)
	if err := s.Put(ctx, good, sampleResult("p1"), Meta{}); err != nil {
		t.Fatal(err)
	}

	bad := "00000000000000000000000000000bad"
	if err := os.WriteFile(filepath.Join(dir, bad+".json"), []byte(`{"timestamp": 12`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get(ctx, bad); ok {
		t.Error("Get() = hit for corrupt entry")
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.CorruptEntries != 1 || stats.ActiveEntries != 1 {
		t.Errorf("Stats() = %+v, want 1 corrupt and 1 active", stats)
	}

	removed, err := s.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("SweepExpired() = %d, want 1", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, bad+".json")); !os.IsNotExist(err) {
		t.Error("corrupt entry should have been removed")
	}
	if _, ok := s.Get(ctx, good); !ok {
		t.Error("valid entry should survive sweep")
	}
}

func TestFileStore_IgnoresForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir, Options{TTL: 0, Logger: zerolog.Nop()})

	for _, name := range []string{".abc.123.tmp", "notes.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := s.ClearAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("ClearAll() = %d, want 0", removed)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("foreign files were touched, %d remain", len(entries))
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir, Options{TTL: time.Hour, Logger: zerolog.Nop()})

	for _, pr := range []string{"1-2", "3-4"} {
		if err := s.Put(ctx, Fingerprint(models.UserPreferences{PriceRange: pr}, nil), sampleResult("p"), Meta{}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("got %d files, want 2", len(entries))
	}
}
