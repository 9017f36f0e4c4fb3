package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("LSS_STR", "  value ")
	t.Setenv("LSS_BLANK", "   ")
	t.Setenv("LSS_INT", "12")
	t.Setenv("LSS_BAD_INT", "twelve")
	t.Setenv("LSS_DUR", "90s")
	t.Setenv("LSS_BAD_DUR", "soon")

	assert.Equal(t, "value", Get("LSS_STR", "x"))
	assert.Equal(t, "x", Get("LSS_BLANK", "x"))
	assert.Equal(t, "x", Get("LSS_UNSET", "x"))
	assert.Equal(t, 12, GetInt("LSS_INT", 1))
	assert.Equal(t, 1, GetInt("LSS_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, GetDuration("LSS_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("LSS_BAD_DUR", time.Second))
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("BATCH_WORKERS", "8")
	t.Setenv("CACHE_TTL", "5m")

	cfg := ServerFromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, 8, cfg.BatchWorkers)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LSS_FROM_FILE=42\n"), 0o600))
	t.Setenv("LSS_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("LSS_FROM_FILE"))

	Load(path)
	assert.Equal(t, 42, GetInt("LSS_FROM_FILE", 0))
}
