package repositories

import (
	"context"
	"time"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

// RecipeFilters represents the filters of the basic recipe scan. Empty
// strings and a nil MaxTotalMinutes mean "no filter".
type RecipeFilters struct {
	Text            string
	Category        string
	Difficulty      string
	MaxTotalMinutes *int
}

// RecipeRepository defines the read side of the recipe catalog. Every method
// returning recipes yields rows of the same shape, ready for enrichment.
type RecipeRepository interface {
	Search(ctx context.Context, filters RecipeFilters) ([]models.RecipeRow, error)
	AdvancedSearch(ctx context.Context, text, category, difficulty string, maxTotalMinutes *int, tags []string) ([]models.RecipeRow, error)
	GetByID(ctx context.Context, id int64) (*models.RecipeRow, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetTags(ctx context.Context, recipeID int64) ([]string, error)
	Similar(ctx context.Context, recipeID int64, limit int) ([]models.RecipeRow, error)
	ByCategory(ctx context.Context, category string) ([]models.RecipeRow, error)
	Popular(ctx context.Context, limit int) ([]models.RecipeRow, error)
	QuickMeals(ctx context.Context, maxTotalMinutes, limit int) ([]models.RecipeRow, error)
	Featured(ctx context.Context, limit int) ([]models.RecipeRow, error)
	Categories(ctx context.Context) ([]models.CategoryCount, error)
	Tags(ctx context.Context, limit int) ([]models.TagCount, error)
	Stats(ctx context.Context) (*models.CatalogStats, error)
}

// ActivityRepository defines the write side of anonymous session activity
type ActivityRepository interface {
	UpsertRating(ctx context.Context, recipeID int64, sessionID string, rating int, at time.Time) error
	RecordView(ctx context.Context, recipeID int64, sessionID string, at time.Time) error
	RecordSearch(ctx context.Context, entry *models.SearchLogEntry) error
}

// FavoriteRepository defines the interface for user favorites
type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]models.RecipeRow, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdateLastLogin(ctx context.Context, id int64, loginTime time.Time) error
}
