package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// MockRecipeRepository provides mock implementation for RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Search(ctx context.Context, filters repositories.RecipeFilters) ([]models.RecipeRow, error) {
	args := m.Called(ctx, filters)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) AdvancedSearch(ctx context.Context, text, category, difficulty string, maxTotalMinutes *int, tags []string) ([]models.RecipeRow, error) {
	args := m.Called(ctx, text, category, difficulty, maxTotalMinutes, tags)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id int64) (*models.RecipeRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecipeRow), args.Error(1)
}

func (m *MockRecipeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) GetTags(ctx context.Context, recipeID int64) ([]string, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecipeRepository) Similar(ctx context.Context, recipeID int64, limit int) ([]models.RecipeRow, error) {
	args := m.Called(ctx, recipeID, limit)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) ByCategory(ctx context.Context, category string) ([]models.RecipeRow, error) {
	args := m.Called(ctx, category)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) Popular(ctx context.Context, limit int) ([]models.RecipeRow, error) {
	args := m.Called(ctx, limit)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) QuickMeals(ctx context.Context, maxTotalMinutes, limit int) ([]models.RecipeRow, error) {
	args := m.Called(ctx, maxTotalMinutes, limit)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) Featured(ctx context.Context, limit int) ([]models.RecipeRow, error) {
	args := m.Called(ctx, limit)
	return rows(args.Get(0)), args.Error(1)
}

func (m *MockRecipeRepository) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

func (m *MockRecipeRepository) Tags(ctx context.Context, limit int) ([]models.TagCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TagCount), args.Error(1)
}

func (m *MockRecipeRepository) Stats(ctx context.Context) (*models.CatalogStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogStats), args.Error(1)
}

// MockActivityRepository provides mock implementation for ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) UpsertRating(ctx context.Context, recipeID int64, sessionID string, rating int, at time.Time) error {
	args := m.Called(ctx, recipeID, sessionID, rating, at)
	return args.Error(0)
}

func (m *MockActivityRepository) RecordView(ctx context.Context, recipeID int64, sessionID string, at time.Time) error {
	args := m.Called(ctx, recipeID, sessionID, at)
	return args.Error(0)
}

func (m *MockActivityRepository) RecordSearch(ctx context.Context, entry *models.SearchLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockFavoriteRepository provides mock implementation for FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) List(ctx context.Context, userID int64) ([]models.RecipeRow, error) {
	args := m.Called(ctx, userID)
	return rows(args.Get(0)), args.Error(1)
}

// MockUserRepository provides mock implementation for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int64, loginTime time.Time) error {
	args := m.Called(ctx, id, loginTime)
	return args.Error(0)
}

func rows(v interface{}) []models.RecipeRow {
	if v == nil {
		return nil
	}
	return v.([]models.RecipeRow)
}

// Test data factories

// TestUser returns a user fixture
func TestUser() *models.User {
	return &models.User{
		ID:           1,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		CreatedAt:    time.Now().UTC(),
	}
}

// TestRecipeRow returns a recipe row fixture with no nutrition record
func TestRecipeRow(id int64, name string) models.RecipeRow {
	return models.RecipeRow{
		ID:          id,
		Name:        name,
		Ingredients: sql.NullString{String: "chicken, rice, spices", Valid: true},
		Description: sql.NullString{String: "A test recipe", Valid: true},
		Category:    sql.NullString{String: "Indian", Valid: true},
		Difficulty:  sql.NullString{String: "easy", Valid: true},
		PrepTime:    sql.NullInt64{Int64: 10, Valid: true},
		CookTime:    sql.NullInt64{Int64: 20, Valid: true},
		CreatedAt:   time.Now().UTC(),
	}
}
