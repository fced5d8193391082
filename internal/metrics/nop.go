// Package metrics provides MetricsCollector implementations for the
// groups-assigner library.
package metrics

import "github.com/xlittlerag/groups-assigner/types"

// NopMetrics is a no-op metrics collector that discards all measurements.
//
// Used as the default when no collector is injected, so components never need
// nil checks before recording.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: Collector that performs no operations
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordDrawDuration discards the measurement.
func (n *NopMetrics) RecordDrawDuration(_ /* seconds */ float64, _ /* outcome */ string) {}

// RecordDrawAttempts discards the measurement.
func (n *NopMetrics) RecordDrawAttempts(_ /* count */ int) {}

// RecordBestCollisions discards the measurement.
func (n *NopMetrics) RecordBestCollisions(_ /* count */ int) {}

// RecordValidationFailure discards the event.
func (n *NopMetrics) RecordValidationFailure() {}

// RecordStoreOperationDuration discards the measurement.
func (n *NopMetrics) RecordStoreOperationDuration(_ /* operation */ string, _ /* seconds */ float64) {
}

// RecordRequest discards the measurement.
func (n *NopMetrics) RecordRequest(_ /* subject */ string, _ /* outcome */ string, _ /* seconds */ float64) {
}
