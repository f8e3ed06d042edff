// Package search turns search requests into enriched recipe lists and serves
// the recipe detail, similarity, category and browse reads.
package search

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/activity"
	"github.com/fabienpiette/recipe_finder/internal/enrich"
	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// Options tunes the similarity read
type Options struct {
	SimilarDefaultLimit int
	SimilarMaxLimit     int
}

// Service runs recipe searches and detail reads
type Service struct {
	recipes  repositories.RecipeRepository
	recorder *activity.Recorder
	logger   *logrus.Logger
	opts     Options
}

// NewService creates a new search service
func NewService(
	recipes repositories.RecipeRepository,
	recorder *activity.Recorder,
	logger *logrus.Logger,
	opts Options,
) *Service {
	if opts.SimilarDefaultLimit <= 0 {
		opts.SimilarDefaultLimit = 4
	}
	if opts.SimilarMaxLimit < opts.SimilarDefaultLimit {
		opts.SimilarMaxLimit = opts.SimilarDefaultLimit
	}

	return &Service{
		recipes:  recipes,
		recorder: recorder,
		logger:   logger,
		opts:     opts,
	}
}

// Search normalizes params, runs the matching strategy and enriches the rows.
// The search is logged for the session once the result list is final.
func (s *Service) Search(ctx context.Context, session activity.Session, params map[string]string) ([]models.Recipe, error) {
	criteria := Normalize(params)
	strategy := SelectStrategy(s.recipes, criteria)

	rows, err := strategy.Run(ctx, criteria)
	if err != nil {
		s.logger.WithError(err).WithField("strategy", strategy.Name()).Error("Recipe search failed")
		return nil, models.StoreError("search recipes", err)
	}

	recipes := enrich.Recipes(rows)

	logged := s.recorder.RecordSearch(ctx, session, criteria.LogFilters(), len(recipes))

	s.logger.WithFields(logrus.Fields{
		"strategy":          strategy.Name(),
		"results":           len(recipes),
		"search_log_failed": logged.Failed(),
	}).Debug("Recipe search completed")

	return recipes, nil
}

// Recipe returns one enriched recipe with its tags and logs the view
func (s *Service) Recipe(ctx context.Context, session activity.Session, id int64) (*models.Recipe, error) {
	row, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("recipe_id", id).Error("Failed to load recipe")
		return nil, models.StoreError("get recipe", err)
	}
	if row == nil {
		return nil, models.ErrRecipeNotFound
	}

	tags, err := s.recipes.GetTags(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("recipe_id", id).Error("Failed to load recipe tags")
		return nil, models.StoreError("get recipe tags", err)
	}
	row.Tags = tags

	recipe := enrich.Recipe(*row)

	s.recorder.RecordView(ctx, session, id).Discard()

	return &recipe, nil
}

// Rate stores the session's rating of a recipe
func (s *Service) Rate(ctx context.Context, session activity.Session, id int64, rating int) error {
	return s.recorder.RecordRating(ctx, session, id, rating)
}

// SimilarLimit clamps a requested limit into the configured bounds. Zero or
// negative selects the default.
func (s *Service) SimilarLimit(limit int) int {
	if limit <= 0 {
		return s.opts.SimilarDefaultLimit
	}
	if limit > s.opts.SimilarMaxLimit {
		return s.opts.SimilarMaxLimit
	}
	return limit
}

// Similar returns recipes sharing a category or tags with the given recipe
func (s *Service) Similar(ctx context.Context, id int64, limit int) ([]models.Recipe, error) {
	exists, err := s.recipes.Exists(ctx, id)
	if err != nil {
		return nil, models.StoreError("similar recipes", err)
	}
	if !exists {
		return nil, models.ErrRecipeNotFound
	}

	rows, err := s.recipes.Similar(ctx, id, s.SimilarLimit(limit))
	if err != nil {
		s.logger.WithError(err).WithField("recipe_id", id).Error("Similar recipe lookup failed")
		return nil, models.StoreError("similar recipes", err)
	}

	return enrich.Recipes(rows), nil
}

// ByCategory returns every recipe of a category, best rated first
func (s *Service) ByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	rows, err := s.recipes.ByCategory(ctx, category)
	if err != nil {
		s.logger.WithError(err).WithField("category", category).Error("Category lookup failed")
		return nil, models.StoreError("recipes by category", err)
	}

	return enrich.Recipes(rows), nil
}
