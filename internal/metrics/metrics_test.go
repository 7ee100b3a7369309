// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func histogramSampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("test-lookup"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("test-lookup"))

	RecordCacheLookup("test-lookup", true)
	RecordCacheLookup("test-lookup", false)
	RecordCacheLookup("test-lookup", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test-lookup")) - hitsBefore; got != 1 {
		t.Errorf("cache hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test-lookup")) - missesBefore; got != 2 {
		t.Errorf("cache misses delta = %v, want 2", got)
	}
}

func TestRecordCacheEvictions_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(CacheEvictions.WithLabelValues("test-evict"))

	RecordCacheEvictions("test-evict", 0)
	RecordCacheEvictions("test-evict", 3)

	if got := testutil.ToFloat64(CacheEvictions.WithLabelValues("test-evict")) - before; got != 3 {
		t.Errorf("evictions delta = %v, want 3", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("cached"))

	RecordRecommendation("cached", -1, 2*time.Millisecond)

	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues("cached")) - before; got != 1 {
		t.Errorf("recommendation requests delta = %v, want 1", got)
	}
}

func TestRecordRecommendation_CandidateHistogram(t *testing.T) {
	durBefore := histogramSampleCount(t, RecommendationDuration)
	candBefore := histogramSampleCount(t, RecommendationCandidates)

	RecordRecommendation("generated", 12, 40*time.Millisecond)
	RecordRecommendation("cached", -1, time.Millisecond)

	if got := histogramSampleCount(t, RecommendationDuration) - durBefore; got != 2 {
		t.Errorf("duration samples delta = %d, want 2", got)
	}
	// Negative candidate counts are not observed.
	if got := histogramSampleCount(t, RecommendationCandidates) - candBefore; got != 1 {
		t.Errorf("candidate samples delta = %d, want 1", got)
	}
}

func TestRecordLLMRequest_SkipsZeroDuration(t *testing.T) {
	before := histogramSampleCount(t, LLMRequestDuration)

	RecordLLMRequest("rejected", 0)
	RecordLLMRequest("success", 250*time.Millisecond)

	if got := histogramSampleCount(t, LLMRequestDuration) - before; got != 1 {
		t.Errorf("llm duration samples delta = %d, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/products", "200", time.Millisecond)
	RecordLLMRequest("success", 300*time.Millisecond)
	RecordEvent("cache.swept", "ok")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
