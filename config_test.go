package assigner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 100, cfg.MaxAttempts)
	require.Equal(t, 10*time.Second, cfg.TimeBudget)
	require.NoError(t, cfg.Validate())
}

func TestConfigSetDefaults(t *testing.T) {
	cfg := Config{MaxAttempts: 25}
	cfg.SetDefaults()

	require.Equal(t, 25, cfg.MaxAttempts)
	require.Equal(t, 10*time.Second, cfg.TimeBudget)
}

func TestConfigValidate(t *testing.T) {
	t.Run("rejects non-positive attempts", func(t *testing.T) {
		cfg := Config{MaxAttempts: -1, TimeBudget: time.Second}

		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("rejects non-positive budget", func(t *testing.T) {
		cfg := Config{MaxAttempts: 1, TimeBudget: -time.Second}

		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := Config{MaxAttempts: -5}

	_, err := NewEngine(&cfg)

	require.ErrorIs(t, err, ErrInvalidConfig)
}
