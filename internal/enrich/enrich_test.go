package enrich

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

func TestEstimateCalories(t *testing.T) {
	tests := []struct {
		ingredients string
		want        int
	}{
		{"Chicken and rice", 400},
		{"Paneer rice", 350},
		{"Lentil soup", 250},
		{"Broccoli stir fry", 280},
		{"Bread", 280},
		{"", 280},
		{"Mixed VEGETABLE curry", 200},
		{"Toor dal with rice", 300},
		{"Cheese and chicken melt", 350},
		{"Minced meat", 400},
	}

	for _, tt := range tests {
		t.Run(tt.ingredients, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateCalories(tt.ingredients))
		})
	}
}

func TestEstimateCalories_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, 400, EstimateCalories("chicken, rice, lentils"))
	}
}

func TestRecipe_TotalTime(t *testing.T) {
	tests := []struct {
		name string
		prep sql.NullInt64
		cook sql.NullInt64
		want int
	}{
		{"both present", sql.NullInt64{Int64: 10, Valid: true}, sql.NullInt64{Int64: 25, Valid: true}, 35},
		{"prep absent", sql.NullInt64{}, sql.NullInt64{Int64: 15, Valid: true}, 15},
		{"cook absent", sql.NullInt64{Int64: 5, Valid: true}, sql.NullInt64{}, 5},
		{"both absent", sql.NullInt64{}, sql.NullInt64{}, 0},
		{"zeros", sql.NullInt64{Int64: 0, Valid: true}, sql.NullInt64{Int64: 0, Valid: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe(models.RecipeRow{ID: 1, Name: "x", PrepTime: tt.prep, CookTime: tt.cook})
			assert.Equal(t, tt.want, r.TotalTime)
			assert.Equal(t, r.PrepTime+r.CookTime, r.TotalTime)
		})
	}
}

func TestRecipe_Defaults(t *testing.T) {
	r := Recipe(models.RecipeRow{
		ID:          7,
		Name:        "Plain toast",
		Ingredients: sql.NullString{String: "bread, butter", Valid: true},
	})

	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, 0.0, r.AvgRating)
	assert.Equal(t, 0, r.ReviewCount)
	assert.Equal(t, 0, r.ViewCount)
	assert.Nil(t, r.ImageURL)
	assert.Nil(t, r.FavoritedAt)
	assert.Equal(t, models.Nutrition{
		Calories: 280,
		Protein:  "0g",
		Carbs:    "0g",
		Fat:      "0g",
		Fiber:    "0g",
	}, r.Nutrition)
}

func TestRecipe_StoredNutrition(t *testing.T) {
	r := Recipe(models.RecipeRow{
		ID:          1,
		Name:        "Chicken curry",
		Ingredients: sql.NullString{String: "chicken, onion", Valid: true},
		Calories:    sql.NullInt64{Int64: 512, Valid: true},
		ProteinG:    sql.NullFloat64{Float64: 32.5, Valid: true},
		CarbsG:      sql.NullFloat64{Float64: 12, Valid: true},
		FatG:        sql.NullFloat64{Float64: 20.25, Valid: true},
	})

	assert.Equal(t, 512, r.Nutrition.Calories)
	assert.Equal(t, "32.5g", r.Nutrition.Protein)
	assert.Equal(t, "12g", r.Nutrition.Carbs)
	assert.Equal(t, "20.25g", r.Nutrition.Fat)
	assert.Equal(t, "0g", r.Nutrition.Fiber)
}

func TestRecipe_EstimatedCaloriesWhenRecordMissing(t *testing.T) {
	r := Recipe(models.RecipeRow{
		ID:          1,
		Name:        "Paneer tikka",
		Ingredients: sql.NullString{String: "Paneer, yogurt, spices", Valid: true},
	})
	assert.Equal(t, 350, r.Nutrition.Calories)
}

func TestRecipe_CopiesAggregatesAndOptionalFields(t *testing.T) {
	favorited := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Recipe(models.RecipeRow{
		ID:          3,
		Name:        "Dal tadka",
		Category:    sql.NullString{String: "Indian", Valid: true},
		Difficulty:  sql.NullString{String: "easy", Valid: true},
		IsQuickMeal: true,
		ImageURL:    sql.NullString{String: "/static/dal.jpg", Valid: true},
		AvgRating:   sql.NullFloat64{Float64: 4.5, Valid: true},
		ReviewCount: sql.NullInt64{Int64: 2, Valid: true},
		ViewCount:   sql.NullInt64{Int64: 11, Valid: true},
		Tags:        []string{"vegan", "quick"},
		FavoritedAt: sql.NullTime{Time: favorited, Valid: true},
	})

	assert.Equal(t, "Indian", r.Category)
	assert.Equal(t, "easy", r.Difficulty)
	assert.True(t, r.IsQuickMeal)
	require.NotNil(t, r.ImageURL)
	assert.Equal(t, "/static/dal.jpg", *r.ImageURL)
	assert.Equal(t, 4.5, r.AvgRating)
	assert.Equal(t, 2, r.ReviewCount)
	assert.Equal(t, 11, r.ViewCount)
	assert.Equal(t, []string{"vegan", "quick"}, r.Tags)
	require.NotNil(t, r.FavoritedAt)
	assert.True(t, favorited.Equal(*r.FavoritedAt))
}

func TestRecipe_NegativeTimesDefaultToZero(t *testing.T) {
	r := Recipe(models.RecipeRow{
		ID:       1,
		Name:     "broken",
		PrepTime: sql.NullInt64{Int64: -5, Valid: true},
		CookTime: sql.NullInt64{Int64: 10, Valid: true},
	})
	assert.Equal(t, 0, r.PrepTime)
	assert.Equal(t, 10, r.TotalTime)
}

func TestRecipe_Idempotent(t *testing.T) {
	row := models.RecipeRow{
		ID:          9,
		Name:        "Veg pulao",
		Ingredients: sql.NullString{String: "rice, vegetable stock", Valid: true},
		PrepTime:    sql.NullInt64{Int64: 10, Valid: true},
		CookTime:    sql.NullInt64{Int64: 20, Valid: true},
		AvgRating:   sql.NullFloat64{Float64: 3.5, Valid: true},
		ViewCount:   sql.NullInt64{Int64: 4, Valid: true},
	}

	first := Recipe(row)
	second := Recipe(rowFromRecipe(first))

	assert.Equal(t, first, second)
}

func TestRecipes_PreservesOrder(t *testing.T) {
	rows := []models.RecipeRow{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
	}

	recipes := Recipes(rows)
	require.Len(t, recipes, 3)
	assert.Equal(t, int64(3), recipes[0].ID)
	assert.Equal(t, int64(1), recipes[1].ID)
	assert.Equal(t, int64(2), recipes[2].ID)

	assert.Empty(t, Recipes(nil))
	assert.NotNil(t, Recipes(nil))
}

// rowFromRecipe feeds already-enriched output back through the pipeline
func rowFromRecipe(r models.Recipe) models.RecipeRow {
	return models.RecipeRow{
		ID:          r.ID,
		Name:        r.Name,
		Ingredients: sql.NullString{String: r.Ingredients, Valid: true},
		Description: sql.NullString{String: r.Description, Valid: true},
		Category:    sql.NullString{String: r.Category, Valid: true},
		Difficulty:  sql.NullString{String: r.Difficulty, Valid: true},
		PrepTime:    sql.NullInt64{Int64: int64(r.PrepTime), Valid: true},
		CookTime:    sql.NullInt64{Int64: int64(r.CookTime), Valid: true},
		IsQuickMeal: r.IsQuickMeal,
		IsFeatured:  r.IsFeatured,
		CreatedAt:   r.CreatedAt,
		AvgRating:   sql.NullFloat64{Float64: r.AvgRating, Valid: true},
		ReviewCount: sql.NullInt64{Int64: int64(r.ReviewCount), Valid: true},
		ViewCount:   sql.NullInt64{Int64: int64(r.ViewCount), Valid: true},
		Calories:    sql.NullInt64{Int64: int64(r.Nutrition.Calories), Valid: true},
		Tags:        r.Tags,
	}
}
