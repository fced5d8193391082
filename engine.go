package assigner

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/xlittlerag/groups-assigner/internal/collision"
	"github.com/xlittlerag/groups-assigner/internal/logging"
	"github.com/xlittlerag/groups-assigner/internal/metrics"
	"github.com/xlittlerag/groups-assigner/strategy"
	"github.com/xlittlerag/groups-assigner/types"
)

// Engine validates draw inputs and runs the randomized-restart search for a
// low-collision assignment.
//
// An Engine is immutable after construction and safe for concurrent use; all
// per-draw state lives in the call.
type Engine struct {
	cfg      Config
	strategy Strategy
	metrics  MetricsCollector
	logger   Logger
}

// NewEngine creates a draw engine.
//
// Parameters:
//   - cfg: Search budget configuration; defaults are filled in for zero fields
//   - opts: Optional strategy, metrics collector and logger
//
// Returns:
//   - *Engine: Configured engine
//   - error: Wrapped ErrInvalidConfig if the configuration is invalid
//
// Example:
//
//	cfg := assigner.DefaultConfig()
//	eng, err := assigner.NewEngine(&cfg,
//	    assigner.WithLogger(logging.NewSlogDefault()),
//	    assigner.WithMetrics(metrics.NewPrometheus(nil, "assigner")),
//	)
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	eng := &Engine{
		cfg:      *cfg,
		strategy: options.strategy,
		metrics:  options.metrics,
		logger:   options.logger,
	}
	if eng.strategy == nil {
		eng.strategy = strategy.NewSystematic()
	}
	if eng.metrics == nil {
		eng.metrics = metrics.NewNop()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	return eng, nil
}

// Run validates the request and searches for the lowest-collision assignment.
//
// With minimization enabled (the default), the engine runs up to
// cfg.MaxAttempts placement passes, attempt i seeded with seed+i, keeping the
// strictly best result and stopping early on zero collisions. The wall-clock
// budget is checked before each attempt; a running attempt is never cut off.
// With minimization disabled, exactly one pass runs.
//
// Parameters:
//   - ctx: Cancels the search between attempts
//   - req: Draw inputs and per-request search overrides
//
// Returns:
//   - *types.Assignment: Best assignment found; Seed holds the attempt seed
//     that produced it
//   - error: *ValidationError for bad inputs, ErrBudgetExhausted if no attempt
//     completed in time, ctx.Err() if canceled before any attempt completed
func (e *Engine) Run(ctx context.Context, req DrawRequest) (*types.Assignment, error) {
	start := time.Now()

	if e.strategy == nil {
		// Zero-value Engine; NewEngine always installs a strategy.
		return nil, ErrStrategyRequired
	}

	if err := e.Validate(req.Competitors, req.Groups, req.FixedPositions); err != nil {
		e.metrics.RecordDrawDuration(time.Since(start).Seconds(), "invalid")

		return nil, err
	}

	// The top-level source only picks the base seed for unseeded requests; all
	// placement randomness flows through the call-scoped PCG in attempt, so
	// concurrent draws never share a generator.
	baseSeed := rand.Int64N(1 << 62) //nolint:gosec // draw seed, not security
	if req.Seed != nil {
		baseSeed = *req.Seed
	}

	minimize := true
	if req.Minimize != nil {
		minimize = *req.Minimize
	}

	if !minimize {
		a, err := e.attempt(req, baseSeed)
		if err != nil {
			e.metrics.RecordDrawDuration(time.Since(start).Seconds(), "error")

			return nil, err
		}
		e.recordSuccess(start, 1, a)

		return a, nil
	}

	budget := req.TimeBudget
	if budget <= 0 {
		budget = e.cfg.TimeBudget
	}
	deadline := start.Add(budget)

	var best *types.Assignment
	attempts := 0
	for i := 0; i < e.cfg.MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			if best == nil {
				e.metrics.RecordDrawDuration(time.Since(start).Seconds(), "canceled")

				return nil, err
			}

			break
		}
		if !time.Now().Before(deadline) {
			break
		}

		a, err := e.attempt(req, baseSeed+int64(i))
		if err != nil {
			e.metrics.RecordDrawDuration(time.Since(start).Seconds(), "error")

			return nil, err
		}
		attempts++

		if best == nil || a.CollisionCount < best.CollisionCount {
			best = a
			e.logger.Debug("new best assignment",
				"attempt", i,
				"seed", a.Seed,
				"collisions", a.CollisionCount,
			)
		}
		if best.CollisionCount == 0 {
			break
		}
	}

	if best == nil {
		e.metrics.RecordDrawDuration(time.Since(start).Seconds(), "exhausted")

		return nil, fmt.Errorf("%w: no attempt completed within %v", ErrBudgetExhausted, budget)
	}

	e.recordSuccess(start, attempts, best)

	return best, nil
}

func (e *Engine) attempt(req DrawRequest, seed int64) (*types.Assignment, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0)) //nolint:gosec // reproducible draw
	a, err := e.strategy.Assign(req.Competitors, req.Groups, req.FixedPositions, rng)
	if err != nil {
		return nil, err
	}
	a.Seed = seed

	return a, nil
}

func (e *Engine) recordSuccess(start time.Time, attempts int, a *types.Assignment) {
	elapsed := time.Since(start)
	e.metrics.RecordDrawDuration(elapsed.Seconds(), "success")
	e.metrics.RecordDrawAttempts(attempts)
	e.metrics.RecordBestCollisions(a.CollisionCount)
	e.logger.Info("draw completed",
		"attempts", attempts,
		"collisions", a.CollisionCount,
		"seed", a.Seed,
		"elapsed", elapsed,
	)
}

// Evaluate computes the collision metric for an arbitrary seat mapping.
//
// Parameters:
//   - seats: Seat to competitor-ID mapping
//   - competitors: Competitor list the IDs refer to
//
// Returns:
//   - int: Total same-country pairs
//   - map[string]int: Pairs per country (zero-pair countries absent)
func (e *Engine) Evaluate(
	seats map[types.SeatKey]string,
	competitors []types.Competitor,
) (int, map[string]int) {
	return collision.Count(seats, collision.Index(competitors))
}

// FormatSeats renders an assignment as display rows ordered by group ID and
// seat label.
//
// Parameters:
//   - a: Completed assignment
//   - competitors: Competitor list for name and country lookup
//
// Returns:
//   - []types.SeatAssignment: One row per seat, deterministically ordered
func FormatSeats(a *types.Assignment, competitors []types.Competitor) []types.SeatAssignment {
	byID := collision.Index(competitors)

	keys := make([]types.SeatKey, 0, len(a.Seats))
	for key := range a.Seats {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, types.SeatKey.Compare)

	rows := make([]types.SeatAssignment, 0, len(keys))
	for _, key := range keys {
		comp := byID[a.Seats[key]]
		rows = append(rows, types.SeatAssignment{
			GroupID: key.GroupID,
			Seat:    key.Seat,
			Name:    comp.Name,
			Country: comp.Country,
		})
	}

	return rows
}
