package models

import (
	"database/sql"
	"time"
)

// Recipe is the display-ready form of a recipe: stored attributes plus the
// fields derived at read time (ratings, views, total time, nutrition).
type Recipe struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Ingredients string    `json:"ingredients"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	PrepTime    int       `json:"prep_time"`
	CookTime    int       `json:"cook_time"`
	IsQuickMeal bool      `json:"is_quick_meal"`
	IsFeatured  bool      `json:"is_featured"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Derived
	TotalTime   int        `json:"total_time"`
	AvgRating   float64    `json:"avg_rating"`
	ReviewCount int        `json:"review_count"`
	ViewCount   int        `json:"view_count"`
	Nutrition   Nutrition  `json:"nutrition"`
	Tags        []string   `json:"tags,omitempty"`
	FavoritedAt *time.Time `json:"favorited_at,omitempty"`
}

// Nutrition is the nutrition block attached to every enriched recipe.
// Macros are rendered as strings with a "g" suffix.
type Nutrition struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Fiber    string `json:"fiber"`
}

// RecipeRow is the raw shape every recipe query and store routine returns.
// Nullable columns stay nullable here; enrichment decides the defaults.
type RecipeRow struct {
	ID          int64
	Name        string
	Ingredients sql.NullString
	Description sql.NullString
	Category    sql.NullString
	Difficulty  sql.NullString
	PrepTime    sql.NullInt64
	CookTime    sql.NullInt64
	IsQuickMeal bool
	IsFeatured  bool
	ImageURL    sql.NullString
	CreatedAt   time.Time

	AvgRating   sql.NullFloat64
	ReviewCount sql.NullInt64
	ViewCount   sql.NullInt64

	// NutritionRecord columns, all NULL when the recipe has no record
	Calories sql.NullInt64
	ProteinG sql.NullFloat64
	CarbsG   sql.NullFloat64
	FatG     sql.NullFloat64
	FiberG   sql.NullFloat64

	Tags        []string
	FavoritedAt sql.NullTime
}

// CategoryCount is a category name with the number of recipes in it
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagCount is a tag name with its usage count across recipes
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CatalogStats summarizes the catalog for the stats endpoint
type CatalogStats struct {
	TotalRecipes      int             `json:"total_recipes"`
	TotalCategories   int             `json:"total_categories"`
	TotalTags         int             `json:"total_tags"`
	TotalViews        int             `json:"total_views"`
	PopularCategories []CategoryCount `json:"popular_categories"`
}
