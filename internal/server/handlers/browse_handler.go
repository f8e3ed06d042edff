package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabienpiette/recipe_finder/internal/services"
)

// BrowseHandler handles the catalog listing endpoints
type BrowseHandler struct {
	container *services.Container
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(container *services.Container) *BrowseHandler {
	return &BrowseHandler{
		container: container,
	}
}

// Popular lists the most viewed recipes
func (h *BrowseHandler) Popular(c *gin.Context) {
	recipes, err := h.container.GetBrowseService().Popular(c.Request.Context())
	h.render(c, recipes, err)
}

// QuickMeals lists quick recipes
func (h *BrowseHandler) QuickMeals(c *gin.Context) {
	recipes, err := h.container.GetBrowseService().QuickMeals(c.Request.Context())
	h.render(c, recipes, err)
}

// Featured lists featured recipes
func (h *BrowseHandler) Featured(c *gin.Context) {
	recipes, err := h.container.GetBrowseService().Featured(c.Request.Context())
	h.render(c, recipes, err)
}

// Categories lists categories with recipe counts
func (h *BrowseHandler) Categories(c *gin.Context) {
	categories, err := h.container.GetBrowseService().Categories(c.Request.Context())
	h.render(c, categories, err)
}

// Tags lists the most used tags
func (h *BrowseHandler) Tags(c *gin.Context) {
	tags, err := h.container.GetBrowseService().Tags(c.Request.Context())
	h.render(c, tags, err)
}

// Stats returns catalog totals
func (h *BrowseHandler) Stats(c *gin.Context) {
	stats, err := h.container.GetBrowseService().Stats(c.Request.Context())
	h.render(c, stats, err)
}

func (h *BrowseHandler) render(c *gin.Context, body interface{}, err error) {
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}
	c.JSON(http.StatusOK, body)
}
