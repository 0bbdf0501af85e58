package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BIDBOARD_DATABASE_URL", "postgres://localhost/bidboard_test")
	t.Setenv("BIDBOARD_SESSION_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BIDBOARD_DATABASE_URL", "postgres://localhost/bidboard_test")
	t.Setenv("BIDBOARD_SESSION_SECRET", "test-secret")
	t.Setenv("BIDBOARD_SERVER_ADDRESS", "127.0.0.1:9090")
	t.Setenv("BIDBOARD_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.ServerAddress)
	require.False(t, cfg.IsDevelopment())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("BIDBOARD_SESSION_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
}
