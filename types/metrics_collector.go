package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from concurrent request handlers and must be
// thread-safe.
//
// This interface composes smaller, domain-focused interfaces so components
// only depend on the metrics they emit.
type MetricsCollector interface {
	EngineMetrics
	StoreMetrics
	ServiceMetrics
}

// EngineMetrics defines metrics for draw engine operations.
type EngineMetrics interface {
	// RecordDrawDuration records the wall-clock time of one Engine.Run call.
	//
	// Parameters:
	//   - seconds: Time taken in seconds
	//   - outcome: "success", "invalid", "canceled", "error" or "exhausted"
	RecordDrawDuration(seconds float64, outcome string)

	// RecordDrawAttempts records how many placement attempts one draw used.
	RecordDrawAttempts(count int)

	// RecordBestCollisions records the collision count of the returned
	// assignment.
	RecordBestCollisions(count int)

	// RecordValidationFailure records a rejected input set.
	RecordValidationFailure()
}

// StoreMetrics defines metrics for dataset/result store operations.
type StoreMetrics interface {
	// RecordStoreOperationDuration records store operation latency.
	//
	// Parameters:
	//   - operation: Operation type ("put", "get")
	//   - seconds: Time taken in seconds
	RecordStoreOperationDuration(operation string, seconds float64)
}

// ServiceMetrics defines metrics for the transport layer.
type ServiceMetrics interface {
	// RecordRequest records one handled request.
	//
	// Parameters:
	//   - subject: Request subject (e.g. "assigner.draw")
	//   - outcome: "ok" or "error"
	//   - seconds: Handling time in seconds
	RecordRequest(subject string, outcome string, seconds float64)
}
