package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/enrich"
	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/redis"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// Browse listing sizes
const (
	PopularLimit        = 8
	QuickMealLimit      = 10
	QuickMealMaxMinutes = 30
	FeaturedLimit       = 6
	TagCloudLimit       = 20
)

// Cache stores JSON-encoded values with expiry. *redis.Client implements it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// BrowseService serves the catalog listings. Aggregate listings go through
// the cache when one is configured; recipe lists always hit the store.
type BrowseService struct {
	recipes repositories.RecipeRepository
	cache   Cache
	ttl     time.Duration
	logger  *logrus.Logger
}

// NewBrowseService creates a browse service. cache may be nil.
func NewBrowseService(recipes repositories.RecipeRepository, cache Cache, ttl time.Duration, logger *logrus.Logger) *BrowseService {
	return &BrowseService{
		recipes: recipes,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Popular returns the most viewed recipes
func (b *BrowseService) Popular(ctx context.Context) ([]models.Recipe, error) {
	return b.list(ctx, "popular recipes", func() ([]models.RecipeRow, error) {
		return b.recipes.Popular(ctx, PopularLimit)
	})
}

// QuickMeals returns recipes flagged quick OR ready within QuickMealMaxMinutes
func (b *BrowseService) QuickMeals(ctx context.Context) ([]models.Recipe, error) {
	return b.list(ctx, "quick meals", func() ([]models.RecipeRow, error) {
		return b.recipes.QuickMeals(ctx, QuickMealMaxMinutes, QuickMealLimit)
	})
}

// Featured returns the newest featured recipes
func (b *BrowseService) Featured(ctx context.Context) ([]models.Recipe, error) {
	return b.list(ctx, "featured recipes", func() ([]models.RecipeRow, error) {
		return b.recipes.Featured(ctx, FeaturedLimit)
	})
}

// Categories returns every category with its recipe count
func (b *BrowseService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	return cached(ctx, b, redis.CacheKeyCategories, func() ([]models.CategoryCount, error) {
		return b.recipes.Categories(ctx)
	})
}

// Tags returns the most used tags
func (b *BrowseService) Tags(ctx context.Context) ([]models.TagCount, error) {
	return cached(ctx, b, fmt.Sprintf(redis.CacheKeyTags, TagCloudLimit), func() ([]models.TagCount, error) {
		return b.recipes.Tags(ctx, TagCloudLimit)
	})
}

// Stats returns catalog totals
func (b *BrowseService) Stats(ctx context.Context) (*models.CatalogStats, error) {
	return cached(ctx, b, redis.CacheKeyStats, func() (*models.CatalogStats, error) {
		return b.recipes.Stats(ctx)
	})
}

func (b *BrowseService) list(ctx context.Context, op string, load func() ([]models.RecipeRow, error)) ([]models.Recipe, error) {
	rows, err := load()
	if err != nil {
		b.logger.WithError(err).Errorf("Failed to load %s", op)
		return nil, models.StoreError(op, err)
	}
	return enrich.Recipes(rows), nil
}

// cached serves key from the cache, or from load on a miss. Cache errors are
// logged and fall through to the store.
func cached[T any](ctx context.Context, b *BrowseService, key string, load func() (T, error)) (T, error) {
	var value T

	if b.cache != nil {
		err := b.cache.GetJSON(ctx, key, &value)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			b.logger.WithError(err).WithField("key", key).Warn("Browse cache read failed")
		}
	}

	value, err := load()
	if err != nil {
		b.logger.WithError(err).WithField("key", key).Error("Failed to load browse listing")
		var zero T
		return zero, models.StoreError(key, err)
	}

	if b.cache != nil {
		if err := b.cache.SetJSON(ctx, key, value, b.ttl); err != nil {
			b.logger.WithError(err).WithField("key", key).Warn("Browse cache write failed")
		}
	}
	return value, nil
}
