package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegistryWith_FreshRegistries(t *testing.T) {
	// registering twice on separate registries must not panic
	first := NewMetricsRegistryWith(prometheus.NewRegistry())
	second := NewMetricsRegistryWith(prometheus.NewRegistry())

	first.NightTimeComputationsTotal.Inc()

	if got := testutil.ToFloat64(first.NightTimeComputationsTotal); got != 1 {
		t.Errorf("Expected 1 computation, got %f", got)
	}
	if got := testutil.ToFloat64(second.NightTimeComputationsTotal); got != 0 {
		t.Errorf("Expected registries to be independent, got %f", got)
	}
}

func TestRecomputeFlightsTotal_Labels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsRegistryWith(reg)

	m.RecomputeFlightsTotal.WithLabelValues("recompute_night_times", OutcomeUpdated).Add(3)
	m.RecomputeFlightsTotal.WithLabelValues("recompute_night_times", OutcomeFailed).Inc()

	if got := testutil.ToFloat64(m.RecomputeFlightsTotal.WithLabelValues("recompute_night_times", OutcomeUpdated)); got != 3 {
		t.Errorf("Expected 3 updated, got %f", got)
	}
	if got := testutil.CollectAndCount(&m.RecomputeFlightsTotal); got != 2 {
		t.Errorf("Expected 2 label combinations, got %d", got)
	}
}
