package favorites

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
	"github.com/fabienpiette/recipe_finder/internal/testutil"
)

func setupTestService(t *testing.T) (*Service, *testutil.MockFavoriteRepository, *testutil.MockRecipeRepository) {
	favRepo := new(testutil.MockFavoriteRepository)
	recipeRepo := new(testutil.MockRecipeRepository)
	return NewService(favRepo, recipeRepo, testutil.SetupTestLogger(t)), favRepo, recipeRepo
}

func TestService_Add(t *testing.T) {
	service, favRepo, recipeRepo := setupTestService(t)
	ctx := context.Background()

	recipeRepo.On("Exists", ctx, int64(5)).Return(true, nil)
	favRepo.On("Add", ctx, int64(1), int64(5)).Return(nil)

	err := service.Add(ctx, 1, 5)

	require.NoError(t, err)
	favRepo.AssertExpectations(t)
	recipeRepo.AssertExpectations(t)
}

func TestService_Add_Duplicate(t *testing.T) {
	service, favRepo, recipeRepo := setupTestService(t)
	ctx := context.Background()

	recipeRepo.On("Exists", ctx, int64(5)).Return(true, nil)
	favRepo.On("Add", ctx, int64(1), int64(5)).Return(nil).Once()
	favRepo.On("Add", ctx, int64(1), int64(5)).Return(models.ErrFavoriteExists).Once()

	require.NoError(t, service.Add(ctx, 1, 5))
	err := service.Add(ctx, 1, 5)

	assert.ErrorIs(t, err, models.ErrFavoriteExists)
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestService_Add_UnknownRecipe(t *testing.T) {
	service, favRepo, recipeRepo := setupTestService(t)
	ctx := context.Background()

	recipeRepo.On("Exists", ctx, int64(99)).Return(false, nil)

	err := service.Add(ctx, 1, 99)

	assert.ErrorIs(t, err, models.ErrRecipeNotFound)
	favRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Add_StoreFailure(t *testing.T) {
	service, favRepo, recipeRepo := setupTestService(t)
	ctx := context.Background()

	recipeRepo.On("Exists", ctx, int64(5)).Return(true, nil)
	favRepo.On("Add", ctx, int64(1), int64(5)).Return(errors.New("disk I/O error"))

	err := service.Add(ctx, 1, 5)

	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	status, detail := models.ErrorStatus(err)
	assert.Equal(t, 500, status)
	assert.NotContains(t, detail, "disk")
}

func TestService_Remove_AbsentIsNoop(t *testing.T) {
	service, favRepo, _ := setupTestService(t)
	ctx := context.Background()

	favRepo.On("Remove", ctx, int64(1), int64(42)).Return(nil)

	assert.NoError(t, service.Remove(ctx, 1, 42))
	favRepo.AssertExpectations(t)
}

func TestService_Check(t *testing.T) {
	service, favRepo, _ := setupTestService(t)
	ctx := context.Background()

	favRepo.On("Exists", ctx, int64(1), int64(5)).Return(true, nil)
	favRepo.On("Exists", ctx, int64(1), int64(6)).Return(false, nil)

	ok, err := service.Check(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Check(ctx, 1, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_List(t *testing.T) {
	service, favRepo, _ := setupTestService(t)
	ctx := context.Background()

	row := testutil.TestRecipeRow(3, "Butter chicken")
	row.FavoritedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	favRepo.On("List", ctx, int64(1)).Return([]models.RecipeRow{row}, nil)

	recipes, err := service.List(ctx, 1)

	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Butter chicken", recipes[0].Name)
	assert.Equal(t, 30, recipes[0].TotalTime)
	assert.Equal(t, 400, recipes[0].Nutrition.Calories)
	assert.NotNil(t, recipes[0].FavoritedAt)
}

// Runs the service against the real store to check the uniqueness constraint
func TestService_WithSQLite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seed := testutil.NewTestDataSeeder(t, db.DB)
	ctx := context.Background()

	userID := seed.User("cook", "cook@example.com")
	recipeID := seed.Recipe(testutil.RecipeSeed{Name: "Dal", Ingredients: "lentils"})

	service := NewService(
		repositories.NewFavoriteRepository(db.DB),
		repositories.NewRecipeRepository(db.DB),
		testutil.SetupTestLogger(t),
	)

	require.NoError(t, service.Add(ctx, userID, recipeID))
	assert.ErrorIs(t, service.Add(ctx, userID, recipeID), models.ErrFavoriteExists)
	assert.Equal(t, 1, seed.Count("user_favorites"))

	require.NoError(t, service.Remove(ctx, userID, recipeID))
	require.NoError(t, service.Remove(ctx, userID, recipeID))
	assert.Equal(t, 0, seed.Count("user_favorites"))
}
