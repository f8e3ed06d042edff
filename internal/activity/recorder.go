// Package activity records anonymous session activity: views, ratings and
// search logs. Only ratings surface errors; views and searches are best-effort.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// BestEffort is the outcome of a write whose failure must not affect the
// primary response. Callers drop it explicitly with Discard.
type BestEffort struct {
	Err error
}

// Discard drops the outcome. The recorder has already logged any failure.
func (BestEffort) Discard() {}

// Failed reports whether the write failed
func (b BestEffort) Failed() bool {
	return b.Err != nil
}

// SearchFilters is the filter set a search log entry serializes
type SearchFilters struct {
	Text            string
	Category        string
	Difficulty      string
	MaxTotalMinutes *int
}

// Empty reports whether no filter is set. Tags alone do not count.
func (f SearchFilters) Empty() bool {
	return f.Text == "" && f.Category == "" && f.Difficulty == "" && f.MaxTotalMinutes == nil
}

// QueryString serializes the filters in fixed field order
func (f SearchFilters) QueryString() string {
	maxTime := ""
	if f.MaxTotalMinutes != nil {
		maxTime = strconv.Itoa(*f.MaxTotalMinutes)
	}
	return fmt.Sprintf("q=%s&category=%s&difficulty=%s&max_time=%s",
		f.Text, f.Category, f.Difficulty, maxTime)
}

// Recorder writes session activity to the store
type Recorder struct {
	repo   repositories.ActivityRepository
	logger *logrus.Logger
	now    func() time.Time
}

// NewRecorder creates a new activity recorder
func NewRecorder(repo repositories.ActivityRepository, logger *logrus.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RecordView appends a view event for the session
func (r *Recorder) RecordView(ctx context.Context, session Session, recipeID int64) BestEffort {
	if err := r.repo.RecordView(ctx, recipeID, session.Token, r.now()); err != nil {
		r.logger.WithError(err).WithField("recipe_id", recipeID).Warn("Failed to record recipe view")
		return BestEffort{Err: err}
	}
	return BestEffort{}
}

// RecordRating validates and stores the session's rating of a recipe. A
// repeat rating from the same session replaces the earlier one.
func (r *Recorder) RecordRating(ctx context.Context, session Session, recipeID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return models.ErrInvalidRating
	}

	err := r.repo.UpsertRating(ctx, recipeID, session.Token, rating, r.now())
	if err != nil {
		if errors.Is(err, models.ErrRecipeNotFound) {
			return err
		}
		r.logger.WithError(err).WithField("recipe_id", recipeID).Error("Failed to store rating")
		return models.StoreError("record rating", err)
	}

	r.logger.WithFields(logrus.Fields{
		"recipe_id": recipeID,
		"rating":    rating,
	}).Debug("Rating recorded")
	return nil
}

// RecordSearch appends a search log entry when at least one filter is set
func (r *Recorder) RecordSearch(ctx context.Context, session Session, filters SearchFilters, resultCount int) BestEffort {
	if filters.Empty() {
		return BestEffort{}
	}

	entry := &models.SearchLogEntry{
		SearchQuery:  filters.QueryString(),
		SessionID:    session.Token,
		ResultsCount: resultCount,
		SearchedAt:   r.now(),
	}

	if err := r.repo.RecordSearch(ctx, entry); err != nil {
		r.logger.WithError(err).WithField("query", entry.SearchQuery).Warn("Failed to log search")
		return BestEffort{Err: err}
	}
	return BestEffort{}
}

// ParseRating converts a decoded JSON value into a rating. Whole numbers and
// digit strings are accepted; range is checked by RecordRating.
func ParseRating(v interface{}) (int, error) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || val > math.MaxInt32 || val < math.MinInt32 {
			return 0, models.ErrInvalidRating
		}
		return int(val), nil
	case json.Number:
		n, err := strconv.Atoi(val.String())
		if err != nil {
			return 0, models.ErrInvalidRating
		}
		return n, nil
	case int:
		return val, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, models.ErrInvalidRating
		}
		return n, nil
	default:
		return 0, models.ErrInvalidRating
	}
}
