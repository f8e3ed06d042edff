// Package enrich turns raw recipe rows into display-ready recipes. Everything
// here is pure: no I/O, and malformed numeric fields default instead of failing.
package enrich

import (
	"database/sql"
	"strconv"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

// Recipe derives the display fields of a single row
func Recipe(row models.RecipeRow) models.Recipe {
	prep := nonNegative(row.PrepTime)
	cook := nonNegative(row.CookTime)

	recipe := models.Recipe{
		ID:          row.ID,
		Name:        row.Name,
		Ingredients: row.Ingredients.String,
		Description: row.Description.String,
		Category:    row.Category.String,
		Difficulty:  row.Difficulty.String,
		PrepTime:    prep,
		CookTime:    cook,
		IsQuickMeal: row.IsQuickMeal,
		IsFeatured:  row.IsFeatured,
		CreatedAt:   row.CreatedAt,
		TotalTime:   prep + cook,
		AvgRating:   row.AvgRating.Float64,
		ReviewCount: nonNegative(row.ReviewCount),
		ViewCount:   nonNegative(row.ViewCount),
		Nutrition:   nutrition(row),
		Tags:        row.Tags,
	}

	if row.ImageURL.Valid && row.ImageURL.String != "" {
		url := row.ImageURL.String
		recipe.ImageURL = &url
	}
	if row.FavoritedAt.Valid {
		at := row.FavoritedAt.Time
		recipe.FavoritedAt = &at
	}

	return recipe
}

// Recipes enriches rows independently, keeping their order
func Recipes(rows []models.RecipeRow) []models.Recipe {
	recipes := make([]models.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, Recipe(row))
	}
	return recipes
}

func nutrition(row models.RecipeRow) models.Nutrition {
	calories := EstimateCalories(row.Ingredients.String)
	if row.Calories.Valid {
		calories = int(row.Calories.Int64)
	}

	return models.Nutrition{
		Calories: calories,
		Protein:  grams(row.ProteinG),
		Carbs:    grams(row.CarbsG),
		Fat:      grams(row.FatG),
		Fiber:    grams(row.FiberG),
	}
}

// grams renders a macro value as "<value>g", with a missing value as "0g"
func grams(v sql.NullFloat64) string {
	if !v.Valid {
		return "0g"
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64) + "g"
}

func nonNegative(v sql.NullInt64) int {
	if !v.Valid || v.Int64 < 0 {
		return 0
	}
	return int(v.Int64)
}
