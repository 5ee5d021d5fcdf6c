package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "https://api.example.com/"
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, "/accounts/admin/login", cfg.API.LoginPath)
	assert.Equal(t, "/accounts/profile", cfg.API.ProfilePath)
	assert.Equal(t, "/api/refreshToken", cfg.API.RefreshPath)
	assert.Equal(t, 30000, cfg.API.Timeout)
	assert.Equal(t, "session:", cfg.Session.KeyPrefix)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "console_sid", cfg.Server.CookieName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.RateLimit.LoginRPS)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_BACKOFFICE_BACKEND", "https://staging.example.com")
	path := writeConfig(t, `
api:
  base_url: "${TEST_BACKOFFICE_BACKEND}"
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	path := writeConfig(t, `
api:
  base_url: "https://api.example.com"
session:
  backend: memory
server:
  port: 8000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing base url",
			body:    "session:\n  backend: memory\n",
			wantErr: "api.base_url is required",
		},
		{
			name:    "redis backend without address",
			body:    "api:\n  base_url: http://x\nsession:\n  backend: redis\n",
			wantErr: "database.redis.address is required",
		},
		{
			name:    "unknown backend",
			body:    "api:\n  base_url: http://x\nsession:\n  backend: cookie\n",
			wantErr: "unknown session.backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
