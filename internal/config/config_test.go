package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TOKEN", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN", "x")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/rafflebot?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "fa", cfg.DefaultLocale)
	require.Equal(t, 10*time.Second, cfg.MinEventDuration)
	require.Equal(t, 5*time.Minute, cfg.RescanInterval)
	require.Equal(t, 5, cfg.ResolveMaxAttempts)
	require.True(t, cfg.RerollExcludeWinners)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOKEN", "x")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/rafflebot?sslmode=disable")
	t.Setenv("MIN_EVENT_DURATION", "30s")
	t.Setenv("RESCAN_INTERVAL", "1m")
	t.Setenv("RESOLVE_MAX_ATTEMPTS", "3")
	t.Setenv("REROLL_EXCLUDE_WINNERS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.MinEventDuration)
	require.Equal(t, time.Minute, cfg.RescanInterval)
	require.Equal(t, 3, cfg.ResolveMaxAttempts)
	require.False(t, cfg.RerollExcludeWinners)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TOKEN", "x")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/rafflebot?sslmode=disable")

	t.Setenv("MIN_EVENT_DURATION", "ten seconds")
	_, err := Load()
	require.Error(t, err)
	t.Setenv("MIN_EVENT_DURATION", "")

	t.Setenv("RESOLVE_MAX_ATTEMPTS", "0")
	_, err = Load()
	require.Error(t, err)
	t.Setenv("RESOLVE_MAX_ATTEMPTS", "")

	t.Setenv("EVENT_ENCRYPTION_KEY", "short")
	_, err = Load()
	require.Error(t, err)
}
