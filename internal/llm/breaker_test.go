// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubCompleter struct {
	calls int
	err   error
	out   string
}

func (s *stubCompleter) Complete(context.Context, string, string, int, float64) (string, error) {
	s.calls++
	return s.out, s.err
}

func testSettings(name string) BreakerSettings {
	s := DefaultBreakerSettings()
	s.Name = name
	s.MinRequests = 3
	s.Timeout = time.Hour
	return s
}

func TestBreakerClient_PassesThrough(t *testing.T) {
	stub := &stubCompleter{out: "hello"}
	b := NewBreakerClient(stub, testSettings("test-pass"), zerolog.Nop())

	out, err := b.Complete(context.Background(), "s", "u", 1, 0)
	if err != nil || out != "hello" {
		t.Fatalf("Complete() = %q, %v", out, err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerClient_OpensAfterFailures(t *testing.T) {
	upstream := errors.New("boom")
	stub := &stubCompleter{err: upstream}
	b := NewBreakerClient(stub, testSettings("test-open"), zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := b.Complete(context.Background(), "s", "u", 1, 0); !errors.Is(err, upstream) {
			t.Fatalf("call %d error = %v, want upstream error", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Complete(context.Background(), "s", "u", 1, 0)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if stub.calls != 3 {
		t.Errorf("upstream calls = %d, want 3", stub.calls)
	}
}

func TestBreakerClient_CancellationIsNotFailure(t *testing.T) {
	stub := &stubCompleter{err: context.Canceled}
	b := NewBreakerClient(stub, testSettings("test-cancel"), zerolog.Nop())

	for i := 0; i < 5; i++ {
		_, _ = b.Complete(context.Background(), "s", "u", 1, 0)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}
