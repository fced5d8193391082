package assigner

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	strategy Strategy
	metrics  MetricsCollector
	logger   Logger
}

// WithStrategy sets a custom placement strategy.
//
// Parameters:
//   - strategy: Strategy implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	eng, err := assigner.NewEngine(&cfg, assigner.WithStrategy(strategy.NewSystematic()))
func WithStrategy(strategy Strategy) Option {
	return func(o *engineOptions) {
		o.strategy = strategy
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "assigner")
//	eng, err := assigner.NewEngine(&cfg, assigner.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	logger := logging.NewSlogDefault()
//	eng, err := assigner.NewEngine(&cfg, assigner.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}
