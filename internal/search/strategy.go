package search

import (
	"context"

	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// Strategy runs a search and returns raw rows in the shared recipe shape
type Strategy interface {
	Name() string
	Run(ctx context.Context, criteria Criteria) ([]models.RecipeRow, error)
}

// basicStrategy is the filtered scan, ordered by name
type basicStrategy struct {
	repo repositories.RecipeRepository
}

func (s basicStrategy) Name() string { return "basic" }

func (s basicStrategy) Run(ctx context.Context, criteria Criteria) ([]models.RecipeRow, error) {
	return s.repo.Search(ctx, criteria.Filters())
}

// advancedStrategy delegates to the store's tag-intersection routine
type advancedStrategy struct {
	repo repositories.RecipeRepository
}

func (s advancedStrategy) Name() string { return "advanced" }

func (s advancedStrategy) Run(ctx context.Context, criteria Criteria) ([]models.RecipeRow, error) {
	return s.repo.AdvancedSearch(ctx,
		criteria.Text, criteria.Category, criteria.Difficulty, criteria.MaxTotalMinutes, criteria.Tags)
}

// SelectStrategy picks the tag-aware strategy whenever tags are present,
// regardless of the other filters.
func SelectStrategy(repo repositories.RecipeRepository, criteria Criteria) Strategy {
	if criteria.HasTags() {
		return advancedStrategy{repo: repo}
	}
	return basicStrategy{repo: repo}
}
