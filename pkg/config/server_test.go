package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 0.0, cfg.WriteRateLimit)
	assert.False(t, cfg.TrackResponseSize)
	assert.True(t, cfg.ExcludeMetricsEndpoint)
}

func TestLoadServerConfig_FromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("REQUEST_TIMEOUT", "10s")
	t.Setenv("WRITE_RATE_LIMIT", "5")
	t.Setenv("WRITE_RATE_BURST", "20")
	t.Setenv("TRACK_RESPONSE_SIZE", "true")
	t.Setenv("EXCLUDE_METRICS_ENDPOINT", "false")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5.0, cfg.WriteRateLimit)
	assert.Equal(t, 20, cfg.WriteRateBurst)
	assert.True(t, cfg.TrackResponseSize)
	assert.False(t, cfg.ExcludeMetricsEndpoint)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	t.Setenv("WRITE_RATE_LIMIT", "5")
	t.Setenv("WRITE_RATE_BURST", "0")

	_, err := LoadServerConfig()
	assert.Error(t, err)
}
