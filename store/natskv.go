package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/xlittlerag/groups-assigner/internal/fingerprint"
	"github.com/xlittlerag/groups-assigner/internal/metrics"
	"github.com/xlittlerag/groups-assigner/types"
)

// NATSKVConfig configures the JetStream-backed store.
type NATSKVConfig struct {
	// Bucket is the KV bucket name holding all datasets and results.
	//
	// Default: "assigner"
	Bucket string `yaml:"bucket"`

	// TTL is how long entries remain in the bucket (0 = no expiration).
	TTL time.Duration `yaml:"ttl"`
}

// SetDefaults fills in zero-valued fields with production defaults.
func (c *NATSKVConfig) SetDefaults() {
	if c.Bucket == "" {
		c.Bucket = "assigner"
	}
}

// NATSKV is a Store backed by a NATS JetStream key-value bucket.
//
// All datasets and results share one bucket; entry kind is encoded in the key
// prefix ("competitors.<key>", "groups.<key>", "fixed.<key>", "results.<key>").
// Values are JSON. Safe for concurrent use from multiple processes.
type NATSKV struct {
	kv      jetstream.KeyValue
	metrics types.StoreMetrics
}

// Compile-time assertion that NATSKV implements Store.
var _ Store = (*NATSKV)(nil)

// NewNATSKV creates or opens the configured KV bucket and returns a store
// on top of it.
//
// Bucket creation handles races with other processes creating the same bucket
// and retries transient failures with backoff.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - nc: Established NATS connection with JetStream enabled
//   - cfg: Bucket configuration; defaults are filled in for zero fields
//   - collector: Store metrics sink (a no-op collector is used if nil)
//
// Returns:
//   - *NATSKV: Ready-to-use store
//   - error: ErrConnRequired if nc is nil, or bucket creation failure
func NewNATSKV(ctx context.Context, nc *nats.Conn, cfg NATSKVConfig, collector types.StoreMetrics) (*NATSKV, error) {
	if nc == nil {
		return nil, types.ErrConnRequired
	}
	if collector == nil {
		collector = metrics.NewNop()
	}
	cfg.SetDefaults()

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := ensureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "groups-assigner datasets and draw results",
		TTL:         cfg.TTL,
	})
	if err != nil {
		return nil, err
	}

	return &NATSKV{kv: kv, metrics: collector}, nil
}

// ensureBucket creates or opens a KV bucket, retrying transient failures.
// Handles the race where multiple processes create the same bucket at once.
func ensureBucket(ctx context.Context, js jetstream.JetStream, config jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	const maxRetries = 3

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		kv, err := js.CreateKeyValue(ctx, config)
		if err == nil {
			return kv, nil
		}

		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, err := js.KeyValue(ctx, config.Bucket)
			if err == nil {
				return kv, nil
			}
			lastErr = fmt.Errorf("bucket exists but failed to open: %w", err)
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during KV bucket creation: %w", ctx.Err())
		}

		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is bounded
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to create/open KV bucket %s after %d attempts: %w",
		config.Bucket, maxRetries, lastErr)
}

func (s *NATSKV) observe(op string, start time.Time) {
	s.metrics.RecordStoreOperationDuration(op, time.Since(start).Seconds())
}

func (s *NATSKV) putDataset(ctx context.Context, prefix string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s dataset: %w", prefix, err)
	}

	key := fingerprint.SumBytes(data)
	if _, err := s.kv.Put(ctx, prefix+"."+key, data); err != nil {
		return "", fmt.Errorf("failed to store %s dataset: %w", prefix, err)
	}

	return key, nil
}

func (s *NATSKV) getDataset(ctx context.Context, prefix, key string, out any) error {
	entry, err := s.kv.Get(ctx, prefix+"."+key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return types.ErrDatasetNotFound
		}

		return fmt.Errorf("failed to load %s dataset: %w", prefix, err)
	}
	if err := json.Unmarshal(entry.Value(), out); err != nil {
		return fmt.Errorf("failed to decode %s dataset: %w", prefix, err)
	}

	return nil
}

// PutCompetitors stores a competitor list and returns its fingerprint key.
func (s *NATSKV) PutCompetitors(ctx context.Context, competitors []types.Competitor) (string, error) {
	defer s.observe("put_competitors", time.Now())

	return s.putDataset(ctx, "competitors", competitors)
}

// Competitors returns the competitor list stored under key.
func (s *NATSKV) Competitors(ctx context.Context, key string) ([]types.Competitor, error) {
	defer s.observe("get_competitors", time.Now())

	var competitors []types.Competitor
	if err := s.getDataset(ctx, "competitors", key, &competitors); err != nil {
		return nil, err
	}

	return competitors, nil
}

// PutGroups stores a group list and returns its fingerprint key.
func (s *NATSKV) PutGroups(ctx context.Context, groups []types.Group) (string, error) {
	defer s.observe("put_groups", time.Now())

	return s.putDataset(ctx, "groups", groups)
}

// Groups returns the group list stored under key.
func (s *NATSKV) Groups(ctx context.Context, key string) ([]types.Group, error) {
	defer s.observe("get_groups", time.Now())

	var groups []types.Group
	if err := s.getDataset(ctx, "groups", key, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// PutFixedPositions stores a fixed-position list and returns its fingerprint key.
func (s *NATSKV) PutFixedPositions(ctx context.Context, fixed []types.FixedPosition) (string, error) {
	defer s.observe("put_fixed", time.Now())

	return s.putDataset(ctx, "fixed", fixed)
}

// FixedPositions returns the fixed-position list stored under key.
func (s *NATSKV) FixedPositions(ctx context.Context, key string) ([]types.FixedPosition, error) {
	defer s.observe("get_fixed", time.Now())

	var fixed []types.FixedPosition
	if err := s.getDataset(ctx, "fixed", key, &fixed); err != nil {
		return nil, err
	}

	return fixed, nil
}

// PutResult stores a draw result under key.
func (s *NATSKV) PutResult(ctx context.Context, key string, result *Result) error {
	defer s.observe("put_result", time.Now())

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := s.kv.Put(ctx, "results."+key, data); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	return nil
}

// Result returns the draw result stored under key.
func (s *NATSKV) Result(ctx context.Context, key string) (*Result, error) {
	defer s.observe("get_result", time.Now())

	entry, err := s.kv.Get(ctx, "results."+key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, types.ErrResultNotFound
		}

		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	var result Result
	if err := json.Unmarshal(entry.Value(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}

	return &result, nil
}
