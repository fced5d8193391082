package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	m := NewNop()

	// All recorders must be safe no-ops.
	m.RecordDrawDuration(0.5, "success")
	m.RecordDrawAttempts(10)
	m.RecordBestCollisions(2)
	m.RecordValidationFailure()
	m.RecordStoreOperationDuration("put", 0.001)
	m.RecordRequest("assigner.draw", "ok", 0.1)
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg, "assigner_test")

	m.RecordDrawDuration(0.25, "success")
	m.RecordDrawAttempts(3)
	m.RecordBestCollisions(1)
	m.RecordValidationFailure()
	m.RecordStoreOperationDuration("get", 0.002)
	m.RecordRequest("assigner.draw", "ok", 0.05)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["assigner_test_engine_draw_duration_seconds"])
	require.True(t, names["assigner_test_engine_validation_failures_total"])
	require.True(t, names["assigner_test_service_requests_total"])
}
