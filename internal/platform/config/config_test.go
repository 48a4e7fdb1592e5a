package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/flight_booking/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, config.FavoritesPostgres, cfg.FavoritesStore)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "APP_PORT: \"9000\"\nSESSION_TTL: 5m\nFAVORITES_STORE: redis\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_DB=3\nAPP_PORT=9100\n"), 0o600))
	t.Setenv("ENV", "production")
	t.Setenv("API_BASE_URL", "https://api.example.com")

	cfg, err := config.Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.AppPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, config.FavoritesRedis, cfg.FavoritesStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownFavoritesStore(t *testing.T) {
	t.Setenv("FAVORITES_STORE", "sqlite")

	_, err := config.Load(t.TempDir())

	assert.ErrorContains(t, err, "FAVORITES_STORE")
}
