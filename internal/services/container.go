package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/activity"
	"github.com/fabienpiette/recipe_finder/internal/auth"
	"github.com/fabienpiette/recipe_finder/internal/config"
	"github.com/fabienpiette/recipe_finder/internal/favorites"
	"github.com/fabienpiette/recipe_finder/internal/redis"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
	"github.com/fabienpiette/recipe_finder/internal/search"
)

// Container holds all the application services
type Container struct {
	// Configuration
	config *config.Config
	logger *logrus.Logger

	// Infrastructure
	db    *sql.DB
	cache *redis.Client

	// Repositories
	recipeRepo   repositories.RecipeRepository
	activityRepo repositories.ActivityRepository
	favoriteRepo repositories.FavoriteRepository
	userRepo     repositories.UserRepository

	// Core Services
	recorder         *activity.Recorder
	searchService    *search.Service
	browseService    *search.BrowseService
	favoritesService *favorites.Service

	// Auth Services
	jwtManager     *auth.JWTManager
	passwordHasher *auth.PasswordHasher

	startedAt time.Time
}

// NewContainer wires every service. cache may be nil when Redis is disabled.
func NewContainer(db *sql.DB, cache *redis.Client, cfg *config.Config, logger *logrus.Logger) *Container {
	container := &Container{
		config:    cfg,
		logger:    logger,
		db:        db,
		cache:     cache,
		startedAt: time.Now(),
	}

	container.initializeRepositories()
	container.initializeCoreServices()

	return container
}

// GetSearchService returns the search service
func (c *Container) GetSearchService() *search.Service {
	return c.searchService
}

// GetBrowseService returns the browse listings service
func (c *Container) GetBrowseService() *search.BrowseService {
	return c.browseService
}

// GetFavoritesService returns the favorites service
func (c *Container) GetFavoritesService() *favorites.Service {
	return c.favoritesService
}

// GetJWTManager returns the JWT manager
func (c *Container) GetJWTManager() *auth.JWTManager {
	return c.jwtManager
}

// GetPasswordHasher returns the password hasher
func (c *Container) GetPasswordHasher() *auth.PasswordHasher {
	return c.passwordHasher
}

// GetUserRepository returns the user repository
func (c *Container) GetUserRepository() repositories.UserRepository {
	return c.userRepo
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() *logrus.Logger {
	return c.logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

func (c *Container) initializeRepositories() {
	c.recipeRepo = repositories.NewRecipeRepository(c.db)
	c.activityRepo = repositories.NewActivityRepository(c.db)
	c.favoriteRepo = repositories.NewFavoriteRepository(c.db)
	c.userRepo = repositories.NewUserRepository(c.db)

	c.logger.Debug("Repositories initialized")
}

func (c *Container) initializeCoreServices() {
	c.recorder = activity.NewRecorder(c.activityRepo, c.logger)

	c.searchService = search.NewService(c.recipeRepo, c.recorder, c.logger, search.Options{
		SimilarDefaultLimit: c.config.Search.SimilarDefaultLimit,
		SimilarMaxLimit:     c.config.Search.SimilarMaxLimit,
	})

	// A nil *redis.Client must not become a non-nil Cache interface
	var cache search.Cache
	if c.cache != nil {
		cache = c.cache
	}
	ttl := time.Duration(c.config.Cache.BrowseTTLSeconds) * time.Second
	c.browseService = search.NewBrowseService(c.recipeRepo, cache, ttl, c.logger)

	c.favoritesService = favorites.NewService(c.favoriteRepo, c.recipeRepo, c.logger)

	c.jwtManager = auth.NewJWTManager(c.config.Auth.JWTSecret, c.config.Auth.TokenDuration)
	c.passwordHasher = auth.NewPasswordHasher()

	c.logger.Debug("Core services initialized")
}

// HealthCheck pings the store and, when configured, the cache. The cache
// only degrades health since browse reads fall back to the store.
func (c *Container) HealthCheck(ctx context.Context) map[string]interface{} {
	services := map[string]interface{}{}
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(c.startedAt).Round(time.Second).String(),
		"services":  services,
	}

	if err := c.db.PingContext(ctx); err != nil {
		c.logger.WithError(err).Error("Database health check failed")
		services["database"] = map[string]interface{}{"status": "unhealthy"}
		health["status"] = "unhealthy"
	} else {
		services["database"] = map[string]interface{}{"status": "healthy"}
	}

	if c.cache == nil {
		services["redis"] = map[string]interface{}{"status": "disabled"}
	} else if err := c.cache.Health(ctx); err != nil {
		c.logger.WithError(err).Warn("Redis health check failed")
		services["redis"] = map[string]interface{}{"status": "unhealthy"}
		if health["status"] == "healthy" {
			health["status"] = "degraded"
		}
	} else {
		services["redis"] = map[string]interface{}{"status": "healthy"}
	}

	return health
}
