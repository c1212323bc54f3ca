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
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, TraceNone, cfg.Trace.Backend)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
max_steps: 50
trace:
  backend: redis
redis:
  addr: redis:6379
  ttl: 1h
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.MaxSteps)
	assert.Equal(t, TraceRedis, cfg.Trace.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "turing:trace:", cfg.Redis.Prefix, "unset fields keep defaults")
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turing.json")
	data := `{"port": 9090, "color": "never", "step_delay": "500ms", "redis": {"ttl": "1h"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, 500*time.Millisecond, cfg.StepDelay)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trace:\n  backend: tape-drive\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown trace backend")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
