package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fabienpiette/recipe_finder/internal/config"
	"github.com/fabienpiette/recipe_finder/internal/database"
	"github.com/fabienpiette/recipe_finder/internal/models"
)

// RedisIntegrationEnv enables tests that need a Redis container
const RedisIntegrationEnv = "RECIPEFINDER_REDIS_INTEGRATION"

// TestConfig provides test configuration settings
type TestConfig struct {
	*config.Config
	TestDir string
	DBPath  string
}

// SetupTestDB creates a migrated SQLite database in a temporary directory
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.Initialize(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupTestRedis starts a Redis container for testing. It skips the test
// unless RedisIntegrationEnv is set, since it needs a Docker daemon.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	if os.Getenv(RedisIntegrationEnv) == "" {
		t.Skipf("set %s=1 to run Redis integration tests", RedisIntegrationEnv)
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, mappedPort.Port()),
		DB:   0,
	})

	err = redisClient.Ping(ctx).Err()
	require.NoError(t, err)

	t.Cleanup(func() {
		redisClient.Close()
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	return redisClient
}

// GetTestConfig returns a configuration for testing
func GetTestConfig(t *testing.T) *TestConfig {
	t.Helper()

	testDir := t.TempDir()
	dbPath := filepath.Join(testDir, "test.db")

	cfg := &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Port:                8080,
			Host:                "localhost",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 30,
			IdleTimeoutSeconds:  120,
			AllowedOrigins:      []string{"*"},
		},
		Database: config.DatabaseConfig{
			Path: dbPath,
		},
		Redis: config.RedisConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    6379,
			DB:      1, // Use DB 1 for tests
		},
		Log: config.LogConfig{
			Level: "debug",
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-testing-only",
			TokenDuration: 24,
		},
		Search: config.SearchConfig{
			SimilarDefaultLimit: 4,
			SimilarMaxLimit:     20,
		},
		Cache: config.CacheConfig{
			BrowseTTLSeconds: 60,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 100,
			Burst:             100,
		},
	}

	return &TestConfig{
		Config:  cfg,
		TestDir: testDir,
		DBPath:  dbPath,
	}
}

// SetupTestLogger creates a logger for testing. Output is discarded unless
// the test runs verbose.
func SetupTestLogger(t *testing.T) *logrus.Logger {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		TimestampFormat: time.RFC3339,
	})

	if testing.Verbose() {
		logger.SetOutput(os.Stdout)
	} else {
		logger.SetOutput(io.Discard)
	}

	return logger
}

// RecipeSeed describes a recipe to insert for a test
type RecipeSeed struct {
	Name        string
	Ingredients string
	Description string
	Category    string
	Difficulty  string
	PrepTime    int
	CookTime    int
	QuickMeal   bool
	Featured    bool
	Tags        []string
}

// NutritionSeed describes a stored nutrition record
type NutritionSeed struct {
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
	FiberG   float64
}

// TestDataSeeder inserts fixtures directly through SQL
type TestDataSeeder struct {
	DB *sql.DB
	t  *testing.T
}

// NewTestDataSeeder creates a new test data seeder
func NewTestDataSeeder(t *testing.T, db *sql.DB) *TestDataSeeder {
	return &TestDataSeeder{DB: db, t: t}
}

// Recipe inserts a recipe with its tags and returns its ID
func (s *TestDataSeeder) Recipe(seed RecipeSeed) int64 {
	s.t.Helper()

	res, err := s.DB.Exec(`
		INSERT INTO recipes (name, ingredients, description, category, difficulty,
			prep_time, cook_time, is_quick_meal, is_featured)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seed.Name, seed.Ingredients, seed.Description, nullable(seed.Category), nullable(seed.Difficulty),
		seed.PrepTime, seed.CookTime, seed.QuickMeal, seed.Featured)
	require.NoError(s.t, err)

	id, err := res.LastInsertId()
	require.NoError(s.t, err)

	for _, tag := range seed.Tags {
		_, err := s.DB.Exec(`INSERT INTO recipe_tags (recipe_id, tag_name) VALUES (?, ?)`, id, tag)
		require.NoError(s.t, err)
	}

	return id
}

// Nutrition stores a nutrition record for a recipe
func (s *TestDataSeeder) Nutrition(recipeID int64, n NutritionSeed) {
	s.t.Helper()

	_, err := s.DB.Exec(`
		INSERT INTO recipe_nutrition (recipe_id, calories, protein_g, carbs_g, fat_g, fiber_g)
		VALUES (?, ?, ?, ?, ?, ?)`,
		recipeID, n.Calories, n.ProteinG, n.CarbsG, n.FatG, n.FiberG)
	require.NoError(s.t, err)
}

// Rating stores a rating row for a recipe
func (s *TestDataSeeder) Rating(recipeID int64, sessionID string, rating int) {
	s.t.Helper()

	_, err := s.DB.Exec(`INSERT INTO recipe_ratings (recipe_id, session_id, rating) VALUES (?, ?, ?)`,
		recipeID, sessionID, rating)
	require.NoError(s.t, err)
}

// RatingOf returns the stored rating for a session, or nil when none exists
func (s *TestDataSeeder) RatingOf(recipeID int64, sessionID string) *models.Rating {
	s.t.Helper()

	rating := &models.Rating{}
	err := s.DB.QueryRow(`
		SELECT id, recipe_id, session_id, rating, created_at
		FROM recipe_ratings WHERE recipe_id = ? AND session_id = ?`,
		recipeID, sessionID).Scan(&rating.ID, &rating.RecipeID, &rating.SessionID, &rating.Rating, &rating.CreatedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(s.t, err)
	return rating
}

// Views appends count view events for a recipe
func (s *TestDataSeeder) Views(recipeID int64, count int) {
	s.t.Helper()

	for i := 0; i < count; i++ {
		_, err := s.DB.Exec(`INSERT INTO recipe_views (recipe_id, session_id) VALUES (?, ?)`,
			recipeID, fmt.Sprintf("seed-session-%d", i))
		require.NoError(s.t, err)
	}
}

// User inserts a user and returns its ID
func (s *TestDataSeeder) User(username, email string) int64 {
	s.t.Helper()

	res, err := s.DB.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, "not-a-real-hash")
	require.NoError(s.t, err)

	id, err := res.LastInsertId()
	require.NoError(s.t, err)
	return id
}

// Count returns the number of rows in table
func (s *TestDataSeeder) Count(table string) int {
	s.t.Helper()

	var n int
	err := s.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	require.NoError(s.t, err)
	return n
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
