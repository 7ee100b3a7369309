// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "http-server").
		WithGroup("restart").
		Info("service restarted", "attempt", 2, "backoff", "15s")

	out := buf.String()
	for _, want := range []string{
		`"message":"service restarted"`,
		`"service":"http-server"`,
		`"restart.attempt":2`,
		`"restart.backoff":"15s"`,
		`"level":"info"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatermillAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillAdapter(NewTestLogger(&buf)).
		With(watermill.LogFields{"handler": "recorder"})

	adapter.Info("handler started", watermill.LogFields{"topic": "cache.swept"})
	adapter.Error("handler failed", errors.New("decode"), nil)

	out := buf.String()
	for _, want := range []string{
		`"handler":"recorder"`,
		`"topic":"cache.swept"`,
		`"message":"handler failed"`,
		`"error":"decode"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}
