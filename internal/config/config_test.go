package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "/intelligence/{code}", cfg.API.IntelligencePath)
	assert.Equal(t, 3*time.Minute, cfg.Fetch.MainTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Fetch.ProbeTimeout)
	assert.Equal(t, 15*time.Second, cfg.Fetch.ColdStartAfter)
	assert.Equal(t, 2*time.Second, cfg.Fetch.ProgressInterval)
	assert.Equal(t, 5, cfg.Fetch.ProgressStep)
	assert.Equal(t, 3, cfg.Registry.Attempts)
	assert.Equal(t, time.Second, cfg.Registry.Backoff)
	assert.Equal(t, "planar", cfg.Resolver.Metric)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadReadsConfigFileFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "briefly")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[api]
base_url = "https://brieflyglobal-1.onrender.com"
countries_path = "/api/v1/news/countries"
intelligence_path = "/api/v1/news/{code}"
ping_path = "/api/v1/ping"
requests_per_minute = 30

[resolver]
metric = "central-angle"
`), 0o600))

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://brieflyglobal-1.onrender.com", cfg.API.BaseURL)
	assert.Equal(t, "/api/v1/news/{code}", cfg.API.IntelligencePath)
	assert.Equal(t, 30, cfg.API.RequestsPerMinute)
	assert.Equal(t, "central-angle", cfg.Resolver.Metric)
	assert.Equal(t, 3, cfg.Registry.Attempts)
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[registry]\nbackoff = \"5s\"\n"), 0o600))

	t.Setenv("BRIEFLY_REGISTRY_BACKOFF", "1ms")
	t.Setenv("BRIEFLY_FETCH_MAIN_TIMEOUT", "90s")

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, time.Millisecond, cfg.Registry.Backoff)
	assert.Equal(t, 90*time.Second, cfg.Fetch.MainTimeout)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "relative base url", env: map[string]string{"BRIEFLY_API_BASE_URL": "localhost:8000"}, wantErr: "api.base_url"},
		{name: "unknown metric", env: map[string]string{"BRIEFLY_RESOLVER_METRIC": "manhattan"}, wantErr: "unknown metric"},
		{name: "zero timeout", env: map[string]string{"BRIEFLY_FETCH_MAIN_TIMEOUT": "0s"}, wantErr: "fetch.main_timeout"},
		{name: "no attempts", env: map[string]string{"BRIEFLY_REGISTRY_ATTEMPTS": "0"}, wantErr: "registry.attempts"},
		{name: "bad log level", env: map[string]string{"BRIEFLY_LOG_LEVEL": "chatty"}, wantErr: "log.level"},
		{name: "negative rpm", env: map[string]string{"BRIEFLY_API_REQUESTS_PER_MINUTE": "-1"}, wantErr: "api.requests_per_minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			v, err := NewViper("")
			require.NoError(t, err)
			_, err = Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\n"), 0o600))

	v, err := NewViper(path)
	require.NoError(t, err)
	_, err = Load(v)
	assert.ErrorContains(t, err, "read config file")
}
