package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_RegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamSuccess("tmdb")
	c.RecordUpstreamFailure("kitsu")
	c.RecordUpstreamLatency(150 * time.Millisecond)
	c.RecordHTTPStatus(200)
	c.RecordHistoryAppend()
	c.RecordHistoryDedupSkip()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}

	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}

	wanted := []string{
		"aniflix_upstream_success_total",
		"aniflix_upstream_fail_total",
		"aniflix_upstream_latency_seconds",
		"aniflix_http_status_total",
		"aniflix_history_append_total",
		"aniflix_history_dedup_skip_total",
	}
	for _, name := range wanted {
		if !found[name] {
			t.Errorf("metric %q was not gathered", name)
		}
	}
}

func TestCollector_CountsByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamSuccess("tmdb")
	c.RecordUpstreamSuccess("tmdb")
	c.RecordUpstreamSuccess("kitsu")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}

	for _, fam := range families {
		if fam.GetName() != "aniflix_upstream_success_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			var provider string
			for _, l := range m.GetLabel() {
				if l.GetName() == "provider" {
					provider = l.GetValue()
				}
			}
			got := m.GetCounter().GetValue()
			switch provider {
			case "tmdb":
				if got != 2 {
					t.Errorf("tmdb successes = %v, want 2", got)
				}
			case "kitsu":
				if got != 1 {
					t.Errorf("kitsu successes = %v, want 1", got)
				}
			}
		}
	}
}

func TestHandler_ServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHistoryAppend()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "aniflix_history_append_total 1") {
		t.Errorf("scrape output should contain the counter value:\n%s", rec.Body.String())
	}
}

func TestSetupMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	SetupMetricsRoute(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
