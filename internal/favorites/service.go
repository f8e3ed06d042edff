// Package favorites manages the recipes a registered user has saved.
package favorites

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/enrich"
	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// Service implements favorite add, remove, check and list
type Service struct {
	favorites repositories.FavoriteRepository
	recipes   repositories.RecipeRepository
	logger    *logrus.Logger
}

// NewService creates a new favorites service
func NewService(favorites repositories.FavoriteRepository, recipes repositories.RecipeRepository, logger *logrus.Logger) *Service {
	return &Service{
		favorites: favorites,
		recipes:   recipes,
		logger:    logger,
	}
}

// Add saves a recipe for the user. Adding the same recipe twice fails with
// models.ErrFavoriteExists.
func (s *Service) Add(ctx context.Context, userID, recipeID int64) error {
	exists, err := s.recipes.Exists(ctx, recipeID)
	if err != nil {
		return s.storeError("add favorite", err)
	}
	if !exists {
		return models.ErrRecipeNotFound
	}

	if err := s.favorites.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, models.ErrFavoriteExists) {
			return err
		}
		return s.storeError("add favorite", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"recipe_id": recipeID,
	}).Debug("Favorite added")
	return nil
}

// Remove unsaves a recipe. Removing a recipe that was never saved succeeds.
func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	if err := s.favorites.Remove(ctx, userID, recipeID); err != nil {
		return s.storeError("remove favorite", err)
	}
	return nil
}

// Check reports whether the user has saved the recipe
func (s *Service) Check(ctx context.Context, userID, recipeID int64) (bool, error) {
	ok, err := s.favorites.Exists(ctx, userID, recipeID)
	if err != nil {
		return false, s.storeError("check favorite", err)
	}
	return ok, nil
}

// List returns the user's saved recipes, enriched, most recent first
func (s *Service) List(ctx context.Context, userID int64) ([]models.Recipe, error) {
	rows, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, s.storeError("list favorites", err)
	}
	return enrich.Recipes(rows), nil
}

func (s *Service) storeError(op string, err error) error {
	s.logger.WithError(err).Error("Favorites store failure: " + op)
	return models.StoreError(op, err)
}
