package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.LedgerBackend)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, "base64", cfg.OwnerEncoding)
}

func TestLoadConfigFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("LEDGER_BACKEND", "Pebble")
	t.Setenv("PEBBLE_DIR", "/tmp/ledger")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendPebble, cfg.LedgerBackend)
	assert.Equal(t, "/tmp/ledger", cfg.PebbleDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigRejectsBadBackend(t *testing.T) {
	viper.Reset()
	t.Setenv("LEDGER_BACKEND", "cassandra")
	_, err := LoadConfig()
	assert.Error(t, err)

	viper.Reset()
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("PGSQL_URL", "")
	_, err = LoadConfig()
	assert.Error(t, err)
}
