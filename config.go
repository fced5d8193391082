package assigner

import (
	"fmt"
	"time"
)

// Config defines the engine's search budget.
//
// The optimizer runs repeated seeded placement attempts until it finds a
// zero-collision assignment, uses up MaxAttempts, or runs out of TimeBudget,
// whichever comes first.
type Config struct {
	// MaxAttempts caps how many seeded placement passes one draw may run when
	// optimization is enabled. Each attempt derives its seed from the request
	// seed, so the whole search is reproducible.
	//
	// Default: 100
	MaxAttempts int `yaml:"maxAttempts"`

	// TimeBudget is the wall-clock limit for one draw. The budget is checked
	// before each attempt starts; an attempt already running is never
	// interrupted, so a draw can overshoot the budget by at most one attempt.
	//
	// Default: 10 seconds
	TimeBudget time.Duration `yaml:"timeBudget"`
}

// DefaultConfig returns a Config with production defaults.
//
// Returns:
//   - Config: Configuration with MaxAttempts 100 and TimeBudget 10s
func DefaultConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()

	return cfg
}

// SetDefaults fills in zero-valued fields with production defaults.
// Negative values are left alone for Validate to reject.
func (c *Config) SetDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 100
	}
	if c.TimeBudget == 0 {
		c.TimeBudget = 10 * time.Second
	}
}

// Validate checks the configuration for invalid values.
//
// Returns:
//   - error: Wrapped ErrInvalidConfig describing the first bad field, or nil
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: maxAttempts must be at least 1, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.TimeBudget <= 0 {
		return fmt.Errorf("%w: timeBudget must be positive, got %v", ErrInvalidConfig, c.TimeBudget)
	}

	return nil
}

// TestConfig returns a Config tuned for fast tests: few attempts and a short
// budget so exhaustion paths are cheap to exercise.
func TestConfig() Config {
	return Config{
		MaxAttempts: 10,
		TimeBudget:  2 * time.Second,
	}
}
