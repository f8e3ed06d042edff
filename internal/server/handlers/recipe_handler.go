package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fabienpiette/recipe_finder/internal/activity"
	"github.com/fabienpiette/recipe_finder/internal/middleware"
	"github.com/fabienpiette/recipe_finder/internal/services"
)

// searchParams are the query parameters the search endpoint understands
var searchParams = []string{"q", "category", "difficulty", "max_time", "tags"}

// RecipeHandler handles search and recipe detail endpoints
type RecipeHandler struct {
	container *services.Container
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(container *services.Container) *RecipeHandler {
	return &RecipeHandler{
		container: container,
	}
}

// Search runs a filtered recipe search
func (h *RecipeHandler) Search(c *gin.Context) {
	params := make(map[string]string, len(searchParams))
	for _, key := range searchParams {
		if value, ok := c.GetQuery(key); ok {
			params[key] = value
		}
	}

	recipes, err := h.container.GetSearchService().Search(c.Request.Context(), middleware.GetSession(c), params)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe with its tags and logs the view
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	recipe, err := h.container.GetSearchService().Recipe(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// RateRequest is the body of a rating submission. Rating is decoded loosely
// so a malformed value is reported as an invalid rating.
type RateRequest struct {
	Rating interface{} `json:"rating"`
}

// Rate stores the session's rating of a recipe
func (h *RecipeHandler) Rate(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rating, err := activity.ParseRating(req.Rating)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	if err := h.container.GetSearchService().Rate(c.Request.Context(), middleware.GetSession(c), id, rating); err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted successfully"})
}

// Similar returns recipes related to the given one
func (h *RecipeHandler) Similar(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	// A missing or malformed limit selects the default
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))

	recipes, err := h.container.GetSearchService().Similar(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// ByCategory returns every recipe of a category
func (h *RecipeHandler) ByCategory(c *gin.Context) {
	recipes, err := h.container.GetSearchService().ByCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}
