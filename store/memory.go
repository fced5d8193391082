package store

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/xlittlerag/groups-assigner/internal/fingerprint"
	"github.com/xlittlerag/groups-assigner/internal/metrics"
	"github.com/xlittlerag/groups-assigner/types"
)

// Memory is an in-process Store backed by concurrent maps.
//
// Suitable for single-node deployments and tests. Stored slices are shared,
// not copied; callers must treat values returned by getters as read-only.
type Memory struct {
	competitors *xsync.Map[string, []types.Competitor]
	groups      *xsync.Map[string, []types.Group]
	fixed       *xsync.Map[string, []types.FixedPosition]
	results     *xsync.Map[string, *Result]
	metrics     types.StoreMetrics
}

// Compile-time assertion that Memory implements Store.
var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-process store.
//
// Parameters:
//   - collector: Store metrics sink (a no-op collector is used if nil)
//
// Returns:
//   - *Memory: Ready-to-use store
func NewMemory(collector types.StoreMetrics) *Memory {
	if collector == nil {
		collector = metrics.NewNop()
	}

	return &Memory{
		competitors: xsync.NewMap[string, []types.Competitor](),
		groups:      xsync.NewMap[string, []types.Group](),
		fixed:       xsync.NewMap[string, []types.FixedPosition](),
		results:     xsync.NewMap[string, *Result](),
		metrics:     collector,
	}
}

func (m *Memory) observe(op string, start time.Time) {
	m.metrics.RecordStoreOperationDuration(op, time.Since(start).Seconds())
}

// PutCompetitors stores a competitor list and returns its fingerprint key.
func (m *Memory) PutCompetitors(_ context.Context, competitors []types.Competitor) (string, error) {
	defer m.observe("put_competitors", time.Now())

	key, err := fingerprint.Sum(competitors)
	if err != nil {
		return "", err
	}
	m.competitors.Store(key, competitors)

	return key, nil
}

// Competitors returns the competitor list stored under key.
func (m *Memory) Competitors(_ context.Context, key string) ([]types.Competitor, error) {
	defer m.observe("get_competitors", time.Now())

	competitors, ok := m.competitors.Load(key)
	if !ok {
		return nil, types.ErrDatasetNotFound
	}

	return competitors, nil
}

// PutGroups stores a group list and returns its fingerprint key.
func (m *Memory) PutGroups(_ context.Context, groups []types.Group) (string, error) {
	defer m.observe("put_groups", time.Now())

	key, err := fingerprint.Sum(groups)
	if err != nil {
		return "", err
	}
	m.groups.Store(key, groups)

	return key, nil
}

// Groups returns the group list stored under key.
func (m *Memory) Groups(_ context.Context, key string) ([]types.Group, error) {
	defer m.observe("get_groups", time.Now())

	groups, ok := m.groups.Load(key)
	if !ok {
		return nil, types.ErrDatasetNotFound
	}

	return groups, nil
}

// PutFixedPositions stores a fixed-position list and returns its fingerprint key.
func (m *Memory) PutFixedPositions(_ context.Context, fixed []types.FixedPosition) (string, error) {
	defer m.observe("put_fixed", time.Now())

	key, err := fingerprint.Sum(fixed)
	if err != nil {
		return "", err
	}
	m.fixed.Store(key, fixed)

	return key, nil
}

// FixedPositions returns the fixed-position list stored under key.
func (m *Memory) FixedPositions(_ context.Context, key string) ([]types.FixedPosition, error) {
	defer m.observe("get_fixed", time.Now())

	fixed, ok := m.fixed.Load(key)
	if !ok {
		return nil, types.ErrDatasetNotFound
	}

	return fixed, nil
}

// PutResult stores a draw result under key.
func (m *Memory) PutResult(_ context.Context, key string, result *Result) error {
	defer m.observe("put_result", time.Now())

	m.results.Store(key, result)

	return nil
}

// Result returns the draw result stored under key.
func (m *Memory) Result(_ context.Context, key string) (*Result, error) {
	defer m.observe("get_result", time.Now())

	result, ok := m.results.Load(key)
	if !ok {
		return nil, types.ErrResultNotFound
	}

	return result, nil
}
