package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

// SQLiteActivityRepository implements ActivityRepository using SQLite
type SQLiteActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite-based activity repository
func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &SQLiteActivityRepository{
		db: db,
	}
}

// UpsertRating stores a session's rating of a recipe, replacing any earlier
// rating by the same session. Returns models.ErrRecipeNotFound when the
// recipe does not exist.
func (r *SQLiteActivityRepository) UpsertRating(ctx context.Context, recipeID int64, sessionID string, rating int, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = ?)`, recipeID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.ErrRecipeNotFound
	}

	query := `
		INSERT INTO recipe_ratings (recipe_id, session_id, rating, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(recipe_id, session_id) DO UPDATE SET
			rating = excluded.rating,
			created_at = excluded.created_at
	`
	if _, err := tx.ExecContext(ctx, query, recipeID, sessionID, rating, at); err != nil {
		return err
	}

	return tx.Commit()
}

// RecordView appends a view event
func (r *SQLiteActivityRepository) RecordView(ctx context.Context, recipeID int64, sessionID string, at time.Time) error {
	query := `INSERT INTO recipe_views (recipe_id, session_id, viewed_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, recipeID, sessionID, at)
	return err
}

// RecordSearch appends a search log entry
func (r *SQLiteActivityRepository) RecordSearch(ctx context.Context, entry *models.SearchLogEntry) error {
	query := `
		INSERT INTO search_history (search_query, session_id, results_count, searched_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.SearchQuery, entry.SessionID, entry.ResultsCount, entry.SearchedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}
