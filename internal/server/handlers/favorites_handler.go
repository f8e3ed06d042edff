package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabienpiette/recipe_finder/internal/middleware"
	"github.com/fabienpiette/recipe_finder/internal/services"
)

// FavoritesHandler handles the saved recipe endpoints. Every route sits
// behind middleware.AuthRequired.
type FavoritesHandler struct {
	container *services.Container
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(container *services.Container) *FavoritesHandler {
	return &FavoritesHandler{
		container: container,
	}
}

// List returns the user's saved recipes
func (h *FavoritesHandler) List(c *gin.Context) {
	userID, err := middleware.GetCurrentUserID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	recipes, err := h.container.GetFavoritesService().List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// Add saves a recipe
func (h *FavoritesHandler) Add(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}

	if err := h.container.GetFavoritesService().Add(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Recipe added to favorites"})
}

// Remove unsaves a recipe
func (h *FavoritesHandler) Remove(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}

	if err := h.container.GetFavoritesService().Remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from favorites"})
}

// Check reports whether the recipe is saved
func (h *FavoritesHandler) Check(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}

	saved, err := h.container.GetFavoritesService().Check(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorited": saved})
}

// target resolves the authenticated user and the :id recipe, rendering the
// error itself when either is missing
func (h *FavoritesHandler) target(c *gin.Context) (int64, int64, bool) {
	userID, err := middleware.GetCurrentUserID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return 0, 0, false
	}

	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return 0, 0, false
	}

	return userID, id, true
}
