package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/acucogn/site/internal/cache"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ArticleFetch("list", OutcomeSuccess)
	m.ArticleFetch("list", OutcomeSuccess)
	m.ArticleFetch("get", OutcomeNotFound)
	m.LeadSubmission(OutcomeInvalid)
	m.ChatMessage(OutcomeFallback, 0.2)

	if got := testutil.ToFloat64(m.ArticleFetchesTotal.WithLabelValues("list", OutcomeSuccess)); got != 2 {
		t.Errorf("list/success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ArticleFetchesTotal.WithLabelValues("get", OutcomeNotFound)); got != 1 {
		t.Errorf("get/not_found = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LeadSubmissionTotal.WithLabelValues(OutcomeInvalid)); got != 1 {
		t.Errorf("leads/invalid = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ChatMessagesTotal.WithLabelValues(OutcomeFallback)); got != 1 {
		t.Errorf("chat/fallback = %v, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ArticleFetch("list", OutcomeError)
	m.LeadSubmission(OutcomeSuccess)
	m.ChatMessage(OutcomeSuccess, 1)
}

func TestRegisterCacheStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()

	RegisterCacheStats(reg, cache.BackendMemory, c)

	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	count, err := testutil.GatherAndCount(reg, "acucogn_cache_hits_total", "acucogn_cache_misses_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 2 {
		t.Errorf("series = %d, want 2", count)
	}
}
