package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

// SQLiteFavoriteRepository implements FavoriteRepository using SQLite
type SQLiteFavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new SQLite-based favorites repository
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &SQLiteFavoriteRepository{
		db: db,
	}
}

// Add links a recipe to a user. The pair is unique, so a second add returns
// models.ErrFavoriteExists.
func (r *SQLiteFavoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	query := `INSERT INTO user_favorites (user_id, recipe_id, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, recipeID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrFavoriteExists
		}
		return err
	}
	return nil
}

// Remove unlinks a recipe from a user. Removing an absent favorite is not an error.
func (r *SQLiteFavoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	query := `DELETE FROM user_favorites WHERE user_id = ? AND recipe_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, recipeID)
	return err
}

// Exists reports whether the recipe is among the user's favorites
func (r *SQLiteFavoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_id = ? AND recipe_id = ?)`
	err := r.db.QueryRowContext(ctx, query, userID, recipeID).Scan(&exists)
	return exists, err
}

// List returns the user's favorite recipes, most recently added first
func (r *SQLiteFavoriteRepository) List(ctx context.Context, userID int64) ([]models.RecipeRow, error) {
	query := recipeColumns + `, f.created_at AS favorited_at` + recipeJoins + `
	JOIN user_favorites f ON f.recipe_id = r.id
	WHERE f.user_id = ?
	ORDER BY f.created_at DESC, f.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.RecipeRow{}
	for rows.Next() {
		var favoritedAt sql.NullTime
		row, err := scanRecipeRow(rows, &favoritedAt)
		if err != nil {
			return nil, err
		}
		row.FavoritedAt = favoritedAt
		result = append(result, *row)
	}

	return result, rows.Err()
}
