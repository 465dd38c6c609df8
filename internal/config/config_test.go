package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/transactions.csv", cfg.Data.TransactionsFile)
	assert.Equal(t, "data/user_countries.csv", cfg.Data.CountriesFile)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Security.EnableRateLimit)
	assert.Equal(t, "localhost:8084", cfg.Address())
}

func TestLoad_FromFile(t *testing.T) {
	configContent := `
[server]
host = "0.0.0.0"
port = 9000

[data]
transactions_file = "/var/data/ledger.csv"
countries_file = "/var/data/countries.csv"

[logger]
level = "debug"
format = "text"

[security]
rate_limit_rps = 50
`

	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/var/data/ledger.csv", cfg.Data.TransactionsFile)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
	assert.Equal(t, 50, cfg.Security.RateLimitRPS)

	// Unset sections keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10, cfg.Security.RateLimitBurst)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "[server]\nport = 70000\n"},
		{"bad log level", "[logger]\nlevel = \"verbose\"\n"},
		{"bad log format", "[logger]\nformat = \"xml\"\n"},
		{"empty ledger path", "[data]\ntransactions_file = \"\"\n"},
		{"zero rps", "[security]\nrate_limit_rps = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			_, err := Load(configPath)
			assert.Error(t, err)
		})
	}
}
