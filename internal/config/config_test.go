package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	// Reset viper state
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test server defaults
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, 30, cfg.Server.WriteTimeoutSeconds)
	assert.Equal(t, 120, cfg.Server.IdleTimeoutSeconds)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	// Test database defaults
	assert.Equal(t, "./data/recipes.db", cfg.Database.Path)

	// Test Redis defaults
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)

	// Test log defaults
	assert.Equal(t, "info", cfg.Log.Level)

	// Test auth defaults
	assert.Equal(t, "change-me-in-production", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.TokenDuration)

	// Test search defaults
	assert.Equal(t, 4, cfg.Search.SimilarDefaultLimit)
	assert.Equal(t, 20, cfg.Search.SimilarMaxLimit)

	// Test cache defaults
	assert.Equal(t, 300, cfg.Cache.BrowseTTLSeconds)

	// Test rate limit defaults
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, float64(20), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
}

func TestConfigFromFile(t *testing.T) {
	// Create temporary config file
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
environment: "test"
server:
  port: 9090
  host: "127.0.0.1"
  read_timeout_seconds: 60
  write_timeout_seconds: 60
  idle_timeout_seconds: 240
  allowed_origins:
    - "http://localhost:3000"

database:
  path: "/tmp/test.db"

redis:
  enabled: true
  host: "redis-server"
  port: 6380
  password: "secret"
  db: 1

log:
  level: "debug"

auth:
  jwt_secret: "test-secret"
  token_duration: 48

search:
  similar_default_limit: 6
  similar_max_limit: 12

cache:
  browse_ttl_seconds: 60

rate_limit:
  enabled: false
  requests_per_second: 5.5
  burst: 10
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset viper and set config path
	viper.Reset()
	viper.AddConfigPath(tempDir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test that file values override defaults
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis-server", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 48, cfg.Auth.TokenDuration)
	assert.Equal(t, 6, cfg.Search.SimilarDefaultLimit)
	assert.Equal(t, 12, cfg.Search.SimilarMaxLimit)
	assert.Equal(t, 60, cfg.Cache.BrowseTTLSeconds)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestConfigFromEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"RECIPEFINDER_ENVIRONMENT":                   "production",
		"RECIPEFINDER_SERVER_PORT":                   "8090",
		"RECIPEFINDER_DATABASE_PATH":                 "/data/prod.db",
		"RECIPEFINDER_REDIS_ENABLED":                 "true",
		"RECIPEFINDER_REDIS_HOST":                    "redis.example.com",
		"RECIPEFINDER_REDIS_DB":                      "2",
		"RECIPEFINDER_LOG_LEVEL":                     "warn",
		"RECIPEFINDER_AUTH_JWT_SECRET":               "super-secret-key",
		"RECIPEFINDER_AUTH_TOKEN_DURATION":           "12",
		"RECIPEFINDER_SEARCH_SIMILAR_DEFAULT_LIMIT":  "3",
		"RECIPEFINDER_CACHE_BROWSE_TTL_SECONDS":      "30",
		"RECIPEFINDER_RATE_LIMIT_REQUESTS_PER_SECOND": "50",
		"RECIPEFINDER_RATE_LIMIT_BURST":              "100",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	// Reset viper state
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test that environment variables override defaults
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "/data/prod.db", cfg.Database.Path)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.example.com", cfg.Redis.Host)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "super-secret-key", cfg.Auth.JWTSecret)
	assert.Equal(t, 12, cfg.Auth.TokenDuration)
	assert.Equal(t, 3, cfg.Search.SimilarDefaultLimit)
	assert.Equal(t, 30, cfg.Cache.BrowseTTLSeconds)
	assert.Equal(t, float64(50), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}

func TestConfigFileNotFound(t *testing.T) {
	// Reset viper and set a non-existent config path
	viper.Reset()
	viper.AddConfigPath("/non/existent/path")

	// Should not error when config file is not found, should use defaults
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestConfigInvalidYaml(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	invalidYaml := `
server:
  port: 8080
  invalid yaml here [[[
database:
  path: /tmp/test.db
`

	err := os.WriteFile(configFile, []byte(invalidYaml), 0644)
	require.NoError(t, err)

	viper.Reset()
	viper.AddConfigPath(tempDir)

	_, err = Load()
	require.Error(t, err)
}

func TestConfigMixedSources(t *testing.T) {
	// Environment variables override file values
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
server:
  port: 8080
  host: "localhost"
database:
  path: "/tmp/file.db"
redis:
  host: "localhost"
  port: 6379
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("RECIPEFINDER_SERVER_PORT", "9090")
	t.Setenv("RECIPEFINDER_REDIS_HOST", "redis-server")

	viper.Reset()
	viper.AddConfigPath(tempDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)             // overridden by env var
	assert.Equal(t, "localhost", cfg.Server.Host)      // from file
	assert.Equal(t, "/tmp/file.db", cfg.Database.Path) // from file
	assert.Equal(t, "redis-server", cfg.Redis.Host)    // overridden by env var
	assert.Equal(t, 6379, cfg.Redis.Port)              // from file
}

func TestConfigDotEnv(t *testing.T) {
	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, ".env"), []byte("RECIPEFINDER_LOG_LEVEL=error\n"), 0644)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("RECIPEFINDER_LOG_LEVEL")
	})

	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

// Benchmark config loading
func BenchmarkConfigLoad(b *testing.B) {
	for i := 0; i < b.N; i++ {
		viper.Reset()
		_, err := Load()
		if err != nil {
			b.Fatal(err)
		}
	}
}
