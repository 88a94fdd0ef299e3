package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("SITE_URL", "https://example.org/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "https://example.org", cfg.Site.BaseURL)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TokenExpiry)
	assert.Equal(t, "0 0 * * *", cfg.Worker.ClearCacheAt)
}

func TestLoad_RejectsUnknownCacheDriver(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_DRIVER")
}

func TestLoad_RejectsEmptyRedisPrefix(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CACHE_PREFIX", " ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_PREFIX")

	t.Setenv("CACHE_DRIVER", "memory")
	_, err = Load()
	assert.NoError(t, err)
}

func TestValidate_ProductionNeedsSecrets(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "production"},
		Database: DatabaseConfig{Host: "db", Password: "pw"},
		Cache:    CacheConfig{Driver: "memory"},
		JWT:      JWTConfig{Secret: defaultJWTSecret},
	}
	require.Error(t, cfg.Validate())

	cfg.JWT.Secret = "s3cret"
	require.NoError(t, cfg.Validate())
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	dbCfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, dbCfg.Port)
	assert.Equal(t, 250*time.Millisecond, dbCfg.RetryDelay)

	t.Setenv("DB_MAX_RETRIES", "lots")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}
