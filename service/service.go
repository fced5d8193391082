package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	assigner "github.com/xlittlerag/groups-assigner"
	"github.com/xlittlerag/groups-assigner/internal/logging"
	"github.com/xlittlerag/groups-assigner/internal/metrics"
	"github.com/xlittlerag/groups-assigner/store"
	"github.com/xlittlerag/groups-assigner/types"
)

// Config configures the NATS service.
type Config struct {
	// SubjectPrefix is prepended to every service subject.
	//
	// Default: "assigner"
	SubjectPrefix string `yaml:"subjectPrefix"`

	// QueueGroup is the queue group handlers subscribe in, so multiple
	// instances share the load.
	//
	// Default: "assigner"
	QueueGroup string `yaml:"queueGroup"`

	// RequestTimeout bounds the handling of one request, draw included.
	//
	// Default: 30 seconds
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// SetDefaults fills in zero-valued fields with production defaults.
func (c *Config) SetDefaults() {
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = "assigner"
	}
	if c.QueueGroup == "" {
		c.QueueGroup = "assigner"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
}

// Service wires the engine and a store to NATS request/reply subjects.
type Service struct {
	cfg     Config
	nc      *nats.Conn
	engine  *assigner.Engine
	store   store.Store
	logger  types.Logger
	metrics types.ServiceMetrics

	mu      sync.Mutex
	subs    []*nats.Subscription
	started bool
}

// Option configures a Service with optional dependencies.
type Option func(*Service)

// WithLogger sets a logger.
func WithLogger(logger types.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets a metrics collector.
func WithMetrics(collector types.ServiceMetrics) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// New creates a Service.
//
// Parameters:
//   - cfg: Service configuration; defaults are filled in for zero fields
//   - nc: Established NATS connection
//   - engine: Draw engine
//   - st: Dataset and result store
//   - opts: Optional logger and metrics collector
//
// Returns:
//   - *Service: Service ready to Start
//   - error: ErrConnRequired, ErrEngineRequired or ErrStoreRequired for
//     missing dependencies
func New(cfg Config, nc *nats.Conn, engine *assigner.Engine, st store.Store, opts ...Option) (*Service, error) {
	if nc == nil {
		return nil, types.ErrConnRequired
	}
	if engine == nil {
		return nil, types.ErrEngineRequired
	}
	if st == nil {
		return nil, types.ErrStoreRequired
	}

	cfg.SetDefaults()
	s := &Service{
		cfg:    cfg,
		nc:     nc,
		engine: engine,
		store:  st,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNop()
	}

	return s, nil
}

// Start subscribes all service handlers.
//
// Returns:
//   - error: ErrAlreadyStarted if called twice, or subscription failure
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return types.ErrAlreadyStarted
	}

	handlers := map[string]nats.MsgHandler{
		"competitors.put": s.wrap("competitors.put", s.handlePutCompetitors),
		"groups.put":      s.wrap("groups.put", s.handlePutGroups),
		"fixed.put":       s.wrap("fixed.put", s.handlePutFixed),
		"validate":        s.wrap("validate", s.handleValidate),
		"draw":            s.wrap("draw", s.handleDraw),
		"result.get":      s.wrap("result.get", s.handleResultGet),
		"result.export":   s.wrap("result.export", s.handleResultExport),
	}

	for suffix, handler := range handlers {
		subject := s.cfg.SubjectPrefix + "." + suffix
		sub, err := s.nc.QueueSubscribe(subject, s.cfg.QueueGroup, handler)
		if err != nil {
			s.unsubscribeLocked()

			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}

	s.started = true
	s.logger.Info("service started",
		"prefix", s.cfg.SubjectPrefix,
		"queue", s.cfg.QueueGroup,
	)

	return nil
}

// Stop unsubscribes all service handlers.
//
// Returns:
//   - error: ErrNotStarted if the service is not running
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.ErrNotStarted
	}
	s.unsubscribeLocked()
	s.started = false
	s.logger.Info("service stopped")

	return nil
}

func (s *Service) unsubscribeLocked() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = nil
}

// errorResponse is the reply shape for any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// wrap adapts a request handler to a NATS message handler, adding timeout,
// reply encoding and per-request metrics.
func (s *Service) wrap(name string, handle func(ctx context.Context, data []byte) (any, error)) nats.MsgHandler {
	subject := s.cfg.SubjectPrefix + "." + name

	return func(msg *nats.Msg) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
		defer cancel()

		resp, err := handle(ctx, msg.Data)
		outcome := "ok"
		if err != nil {
			outcome = "error"
			s.logger.Warn("request failed", "subject", subject, "error", err)
			resp = errorResponse{Error: err.Error()}
		}

		data, merr := json.Marshal(resp)
		if merr != nil {
			s.logger.Error("failed to encode reply", "subject", subject, "error", merr)
			data, _ = json.Marshal(errorResponse{Error: "internal error"})
		}
		if rerr := msg.Respond(data); rerr != nil {
			s.logger.Error("failed to respond", "subject", subject, "error", rerr)
		}

		s.metrics.RecordRequest(subject, outcome, time.Since(start).Seconds())
	}
}

// uploadResponse is the reply shape for dataset uploads.
type uploadResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Hash   string `json:"hash"`
}

func (s *Service) handlePutCompetitors(ctx context.Context, data []byte) (any, error) {
	var competitors []types.Competitor
	if err := json.Unmarshal(data, &competitors); err != nil {
		return nil, fmt.Errorf("invalid competitor payload: %w", err)
	}
	for i, c := range competitors {
		if c.ID == "" || c.Name == "" || c.Country == "" {
			return nil, fmt.Errorf("competitor %d is missing id, name or country", i)
		}
	}

	key, err := s.store.PutCompetitors(ctx, competitors)
	if err != nil {
		return nil, err
	}

	return uploadResponse{Status: "ok", Count: len(competitors), Hash: key}, nil
}

func (s *Service) handlePutGroups(ctx context.Context, data []byte) (any, error) {
	var groups []types.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("invalid group payload: %w", err)
	}
	for i, g := range groups {
		if g.ID == "" {
			return nil, fmt.Errorf("group %d is missing an id", i)
		}
		if g.Capacity < types.MinGroupCapacity || g.Capacity > types.MaxGroupCapacity {
			return nil, fmt.Errorf("group %q has capacity %d, must be %d or %d",
				g.ID, g.Capacity, types.MinGroupCapacity, types.MaxGroupCapacity)
		}
	}

	key, err := s.store.PutGroups(ctx, groups)
	if err != nil {
		return nil, err
	}

	return uploadResponse{Status: "ok", Count: len(groups), Hash: key}, nil
}

func (s *Service) handlePutFixed(ctx context.Context, data []byte) (any, error) {
	var fixed []types.FixedPosition
	if err := json.Unmarshal(data, &fixed); err != nil {
		return nil, fmt.Errorf("invalid fixed position payload: %w", err)
	}
	for i, f := range fixed {
		if f.CompetitorID == "" || f.GroupID == "" || f.Seat == "" {
			return nil, fmt.Errorf("fixed position %d is missing competitor, group or position", i)
		}
	}

	key, err := s.store.PutFixedPositions(ctx, fixed)
	if err != nil {
		return nil, err
	}

	return uploadResponse{Status: "ok", Count: len(fixed), Hash: key}, nil
}

// datasetRefs references uploaded datasets by their keys. FixedHash may be
// empty when the draw has no pinned seats.
type datasetRefs struct {
	CompetitorsHash string `json:"competitors_hash"`
	GroupsHash      string `json:"groups_hash"`
	FixedHash       string `json:"fixed_hash"`
}

func (s *Service) resolve(ctx context.Context, refs datasetRefs) ([]types.Competitor, []types.Group, []types.FixedPosition, error) {
	competitors, err := s.store.Competitors(ctx, refs.CompetitorsHash)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("competitors %q: %w", refs.CompetitorsHash, err)
	}
	groups, err := s.store.Groups(ctx, refs.GroupsHash)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("groups %q: %w", refs.GroupsHash, err)
	}

	var fixed []types.FixedPosition
	if refs.FixedHash != "" {
		fixed, err = s.store.FixedPositions(ctx, refs.FixedHash)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fixed positions %q: %w", refs.FixedHash, err)
		}
	}

	return competitors, groups, fixed, nil
}

// validateResponse is the reply shape for validation requests.
type validateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func (s *Service) handleValidate(ctx context.Context, data []byte) (any, error) {
	var refs datasetRefs
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("invalid validate payload: %w", err)
	}

	competitors, groups, fixed, err := s.resolve(ctx, refs)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Validate(competitors, groups, fixed); err != nil {
		if assigner.IsValidationError(err) {
			return validateResponse{Valid: false, Message: err.Error()}, nil
		}

		return nil, err
	}

	return validateResponse{Valid: true}, nil
}

// drawRequest is the request shape for draw requests.
type drawRequest struct {
	datasetRefs
	Seed     *int64 `json:"seed,omitempty"`
	Minimize *bool  `json:"minimize,omitempty"`

	// MaxTimeSeconds overrides the engine's wall-clock budget for this draw.
	// Zero or absent uses the engine default.
	MaxTimeSeconds float64 `json:"max_time_seconds,omitempty"`
}

// drawResponse is the reply shape for draw and result.get requests.
type drawResponse struct {
	ResultHash string                 `json:"result_hash"`
	Assignment []types.SeatAssignment `json:"assignment"`
	Summary    store.Summary          `json:"summary"`
}

func (s *Service) handleDraw(ctx context.Context, data []byte) (any, error) {
	var req drawRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid draw payload: %w", err)
	}

	competitors, groups, fixed, err := s.resolve(ctx, req.datasetRefs)
	if err != nil {
		return nil, err
	}

	a, err := s.engine.Run(ctx, assigner.DrawRequest{
		Competitors:    competitors,
		Groups:         groups,
		FixedPositions: fixed,
		Seed:           req.Seed,
		Minimize:       req.Minimize,
		TimeBudget:     time.Duration(req.MaxTimeSeconds * float64(time.Second)),
	})
	if err != nil {
		return nil, err
	}

	result := &store.Result{
		Assignment: assigner.FormatSeats(a, competitors),
		Summary: store.Summary{
			TotalCollisions:      a.CollisionCount,
			PerCountryCollisions: a.PerCountryCollisions,
			RandomSeed:           a.Seed,
		},
		CreatedAt: time.Now().UTC(),
	}

	key := store.ResultKey(req.CompetitorsHash, req.GroupsHash, req.FixedHash, a.Seed)
	if err := s.store.PutResult(ctx, key, result); err != nil {
		return nil, err
	}

	s.logger.Info("draw stored",
		"result_hash", key,
		"collisions", a.CollisionCount,
		"seed", a.Seed,
	)

	return drawResponse{ResultHash: key, Assignment: result.Assignment, Summary: result.Summary}, nil
}

// resultRef references a stored result by key.
type resultRef struct {
	ResultHash string `json:"result_hash"`
}

func (s *Service) handleResultGet(ctx context.Context, data []byte) (any, error) {
	var ref resultRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("invalid result payload: %w", err)
	}

	result, err := s.store.Result(ctx, ref.ResultHash)
	if err != nil {
		if errors.Is(err, types.ErrResultNotFound) {
			return nil, fmt.Errorf("result %q: %w", ref.ResultHash, err)
		}

		return nil, err
	}

	return drawResponse{ResultHash: ref.ResultHash, Assignment: result.Assignment, Summary: result.Summary}, nil
}

// exportResponse is the reply shape for CSV export requests.
type exportResponse struct {
	Filename string `json:"filename"`
	CSV      string `json:"csv"`
}

func (s *Service) handleResultExport(ctx context.Context, data []byte) (any, error) {
	var ref resultRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("invalid export payload: %w", err)
	}

	result, err := s.store.Result(ctx, ref.ResultHash)
	if err != nil {
		return nil, err
	}

	csvData, err := ExportCSV(result.Assignment)
	if err != nil {
		return nil, err
	}

	return exportResponse{
		Filename: "assignment_" + ref.ResultHash + ".csv",
		CSV:      string(csvData),
	}, nil
}
