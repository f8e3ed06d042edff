package models

import "time"

// Rating is one session's rating of a recipe. (recipe_id, session_id) is
// unique; a repeat submission overwrites value and timestamp.
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	RecipeID  int64     `json:"recipe_id" db:"recipe_id"`
	SessionID string    `json:"session_id" db:"session_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ViewEvent is an append-only record of a recipe detail view
type ViewEvent struct {
	ID        int64     `json:"id" db:"id"`
	RecipeID  int64     `json:"recipe_id" db:"recipe_id"`
	SessionID string    `json:"session_id" db:"session_id"`
	ViewedAt  time.Time `json:"viewed_at" db:"viewed_at"`
}

// SearchLogEntry is an append-only record of a filtered search
type SearchLogEntry struct {
	ID           int64     `json:"id" db:"id"`
	SearchQuery  string    `json:"search_query" db:"search_query"`
	SessionID    string    `json:"session_id" db:"session_id"`
	ResultsCount int       `json:"results_count" db:"results_count"`
	SearchedAt   time.Time `json:"searched_at" db:"searched_at"`
}

// Favorite links a user to a recipe. The pair is unique; duplicates are
// rejected rather than upserted.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	RecipeID  int64     `json:"recipe_id" db:"recipe_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
