package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

// recipeColumns is the row shape shared by every recipe query. Ratings and
// views are pre-aggregated per recipe so joining both never multiplies rows.
const recipeColumns = `
	SELECT r.id, r.name, r.ingredients, r.description, r.category, r.difficulty,
		   r.prep_time, r.cook_time, r.is_quick_meal, r.is_featured, r.image_url, r.created_at,
		   COALESCE(rt.avg_rating, 0) AS avg_rating,
		   COALESCE(rt.review_count, 0) AS review_count,
		   COALESCE(rv.view_count, 0) AS view_count,
		   n.calories, n.protein_g, n.carbs_g, n.fat_g, n.fiber_g`

const recipeJoins = `
	FROM recipes r
	LEFT JOIN (
		SELECT recipe_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count
		FROM recipe_ratings GROUP BY recipe_id
	) rt ON rt.recipe_id = r.id
	LEFT JOIN (
		SELECT recipe_id, COUNT(*) AS view_count
		FROM recipe_views GROUP BY recipe_id
	) rv ON rv.recipe_id = r.id
	LEFT JOIN recipe_nutrition n ON n.recipe_id = r.id`

const totalTimeExpr = "(COALESCE(r.prep_time, 0) + COALESCE(r.cook_time, 0))"

// SQLiteRecipeRepository implements RecipeRepository using SQLite
type SQLiteRecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new SQLite-based recipe repository
func NewRecipeRepository(db *sql.DB) RecipeRepository {
	return &SQLiteRecipeRepository{
		db: db,
	}
}

// Search runs the basic filtered scan, ordered by name
func (r *SQLiteRecipeRepository) Search(ctx context.Context, filters RecipeFilters) ([]models.RecipeRow, error) {
	conditions, args := filterConditions(filters)

	query := recipeColumns + recipeJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.name ASC, r.id ASC"

	return r.queryRows(ctx, query, args...)
}

// AdvancedSearch is the tag-aware search routine. A recipe matches only when
// it carries every requested tag (exact, case-sensitive) and passes the same
// filters as the basic scan. Results are ranked by rating, then name.
func (r *SQLiteRecipeRepository) AdvancedSearch(ctx context.Context, text, category, difficulty string, maxTotalMinutes *int, tags []string) ([]models.RecipeRow, error) {
	conditions, args := filterConditions(RecipeFilters{
		Text:            text,
		Category:        category,
		Difficulty:      difficulty,
		MaxTotalMinutes: maxTotalMinutes,
	})

	unique := uniqueStrings(tags)
	if len(unique) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(unique)), ", ")
		conditions = append(conditions, `r.id IN (
			SELECT recipe_id FROM recipe_tags
			WHERE tag_name IN (`+placeholders+`)
			GROUP BY recipe_id
			HAVING COUNT(DISTINCT tag_name) = ?
		)`)
		for _, tag := range unique {
			args = append(args, tag)
		}
		args = append(args, len(unique))
	}

	query := recipeColumns + recipeJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY avg_rating DESC, r.name ASC, r.id ASC"

	return r.queryRows(ctx, query, args...)
}

// GetByID retrieves a recipe row by ID, returning nil when it does not exist
func (r *SQLiteRecipeRepository) GetByID(ctx context.Context, id int64) (*models.RecipeRow, error) {
	query := recipeColumns + recipeJoins + " WHERE r.id = ?"

	row, err := scanRecipeRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return row, nil
}

// Exists reports whether a recipe with the given ID exists
func (r *SQLiteRecipeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// GetTags returns the tag names attached to a recipe
func (r *SQLiteRecipeRepository) GetTags(ctx context.Context, recipeID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag_name FROM recipe_tags WHERE recipe_id = ? ORDER BY tag_name`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// Similar returns recipes sharing the category or at least one tag with the
// given recipe, most shared tags first.
func (r *SQLiteRecipeRepository) Similar(ctx context.Context, recipeID int64, limit int) ([]models.RecipeRow, error) {
	query := `
	WITH target AS (
		SELECT category FROM recipes WHERE id = ?
	),
	shared AS (
		SELECT t2.recipe_id, COUNT(*) AS shared_tags
		FROM recipe_tags t1
		JOIN recipe_tags t2 ON t2.tag_name = t1.tag_name AND t2.recipe_id != t1.recipe_id
		WHERE t1.recipe_id = ?
		GROUP BY t2.recipe_id
	)` + recipeColumns + recipeJoins + `
	LEFT JOIN shared s ON s.recipe_id = r.id
	WHERE r.id != ?
	  AND (r.category = (SELECT category FROM target) OR COALESCE(s.shared_tags, 0) > 0)
	ORDER BY COALESCE(s.shared_tags, 0) DESC,
			 COALESCE(r.category = (SELECT category FROM target), 0) DESC,
			 avg_rating DESC,
			 r.name ASC
	LIMIT ?`

	return r.queryRows(ctx, query, recipeID, recipeID, recipeID, limit)
}

// ByCategory returns all recipes in a category, best rated first
func (r *SQLiteRecipeRepository) ByCategory(ctx context.Context, category string) ([]models.RecipeRow, error) {
	query := recipeColumns + recipeJoins + `
	WHERE r.category = ?
	ORDER BY avg_rating DESC, r.name ASC`

	return r.queryRows(ctx, query, category)
}

// Popular returns the most viewed recipes
func (r *SQLiteRecipeRepository) Popular(ctx context.Context, limit int) ([]models.RecipeRow, error) {
	query := recipeColumns + recipeJoins + `
	ORDER BY view_count DESC, avg_rating DESC, r.name ASC
	LIMIT ?`

	return r.queryRows(ctx, query, limit)
}

// QuickMeals returns recipes flagged as quick meals OR whose total time is
// within maxTotalMinutes. The two criteria are deliberately independent.
func (r *SQLiteRecipeRepository) QuickMeals(ctx context.Context, maxTotalMinutes, limit int) ([]models.RecipeRow, error) {
	query := recipeColumns + recipeJoins + `
	WHERE r.is_quick_meal = 1 OR ` + totalTimeExpr + ` <= ?
	ORDER BY ` + totalTimeExpr + ` ASC, r.name ASC
	LIMIT ?`

	return r.queryRows(ctx, query, maxTotalMinutes, limit)
}

// Featured returns featured recipes, newest first
func (r *SQLiteRecipeRepository) Featured(ctx context.Context, limit int) ([]models.RecipeRow, error) {
	query := recipeColumns + recipeJoins + `
	WHERE r.is_featured = 1
	ORDER BY r.created_at DESC, r.id DESC
	LIMIT ?`

	return r.queryRows(ctx, query, limit)
}

// Categories returns every category with its recipe count
func (r *SQLiteRecipeRepository) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS recipe_count
		FROM recipes
		WHERE category IS NOT NULL AND category != ''
		GROUP BY category
		ORDER BY recipe_count DESC, category ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Tags returns the most used tags with their usage counts
func (r *SQLiteRecipeRepository) Tags(ctx context.Context, limit int) ([]models.TagCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tag_name, COUNT(*) AS usage_count
		FROM recipe_tags
		GROUP BY tag_name
		ORDER BY usage_count DESC, tag_name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}

	return tags, rows.Err()
}

// Stats returns catalog-wide totals
func (r *SQLiteRecipeRepository) Stats(ctx context.Context) (*models.CatalogStats, error) {
	stats := &models.CatalogStats{}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM recipes),
			(SELECT COUNT(DISTINCT category) FROM recipes WHERE category IS NOT NULL AND category != ''),
			(SELECT COUNT(DISTINCT tag_name) FROM recipe_tags),
			(SELECT COUNT(*) FROM recipe_views)
	`).Scan(&stats.TotalRecipes, &stats.TotalCategories, &stats.TotalTags, &stats.TotalViews)
	if err != nil {
		return nil, err
	}

	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) > 5 {
		categories = categories[:5]
	}
	stats.PopularCategories = categories

	return stats, nil
}

func (r *SQLiteRecipeRepository) queryRows(ctx context.Context, query string, args ...interface{}) ([]models.RecipeRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecipeRows(rows)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRecipeRow scans the recipeColumns shape followed by any extra columns
func scanRecipeRow(s rowScanner, extra ...interface{}) (*models.RecipeRow, error) {
	row := &models.RecipeRow{}
	dest := []interface{}{
		&row.ID, &row.Name, &row.Ingredients, &row.Description, &row.Category, &row.Difficulty,
		&row.PrepTime, &row.CookTime, &row.IsQuickMeal, &row.IsFeatured, &row.ImageURL, &row.CreatedAt,
		&row.AvgRating, &row.ReviewCount, &row.ViewCount,
		&row.Calories, &row.ProteinG, &row.CarbsG, &row.FatG, &row.FiberG,
	}
	dest = append(dest, extra...)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return row, nil
}

func collectRecipeRows(rows *sql.Rows) ([]models.RecipeRow, error) {
	result := []models.RecipeRow{}
	for rows.Next() {
		row, err := scanRecipeRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *row)
	}
	return result, rows.Err()
}

// filterConditions builds the WHERE conditions shared by both search routines
func filterConditions(filters RecipeFilters) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filters.Text != "" {
		pattern := likePattern(strings.ToLower(filters.Text))
		conditions = append(conditions, `(ulower(r.name) LIKE ? ESCAPE '\'
			OR ulower(COALESCE(r.ingredients, '')) LIKE ? ESCAPE '\'
			OR ulower(COALESCE(r.description, '')) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if filters.Category != "" {
		conditions = append(conditions, "r.category = ?")
		args = append(args, filters.Category)
	}

	if filters.Difficulty != "" {
		conditions = append(conditions, "r.difficulty = ?")
		args = append(args, filters.Difficulty)
	}

	if filters.MaxTotalMinutes != nil {
		conditions = append(conditions, totalTimeExpr+" <= ?")
		args = append(args, *filters.MaxTotalMinutes)
	}

	return conditions, args
}

// likePattern wraps text for a substring LIKE match, escaping wildcards
func likePattern(text string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(text) + "%"
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
