package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	var cfg Config
	require.NoError(t, viper.Unmarshal(&cfg))

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Task.Interval)
	assert.Equal(t, "https://api.blockchair.com/ethereum/stats", cfg.Upstream.URL)
	assert.Equal(t, 10, cfg.Upstream.Timeout)
	assert.Equal(t, 100, cfg.API.PageSizeMax)
	assert.Equal(t, "chainstats", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestUpstreamTimeoutDuration(t *testing.T) {
	cfg := UpstreamConfig{Timeout: 10}
	assert.Equal(t, "10s", cfg.TimeoutDuration().String())
}
