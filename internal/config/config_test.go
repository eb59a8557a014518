package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "SOL", cfg.Symbol)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.CoinGecko.Enabled)
	assert.True(t, cfg.CoinCap.Enabled)
	assert.True(t, cfg.Binance.Enabled)
	assert.Empty(t, cfg.CoinGecko.APIKey)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server":{"port":"9090","request_timeout_sec":3},"binance":{"enabled":false,"endpoint":"https://example.test"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Server.RequestTimeoutSec)
	assert.False(t, cfg.Binance.Enabled)
	assert.Equal(t, "https://example.test", cfg.Binance.Endpoint)
	// untouched sections keep defaults
	assert.True(t, cfg.CoinGecko.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"coingecko":{"api_key":"from-file"}}`), 0o600))

	t.Setenv("COINGECKO_API_KEY", "from-env")
	t.Setenv("SYMBOL", "sol")
	t.Setenv("COINCAP_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.CoinGecko.APIKey)
	assert.Equal(t, "SOL", cfg.Symbol, "symbol is upper-cased")
	assert.False(t, cfg.CoinCap.Enabled)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
