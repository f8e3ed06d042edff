package search

import (
	"strconv"
	"strings"

	"github.com/fabienpiette/recipe_finder/internal/activity"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

// Criteria is the normalized filter set of a search request. Zero values mean
// "no filter"; an empty Criteria matches every recipe.
type Criteria struct {
	Text            string
	Category        string
	Difficulty      string
	MaxTotalMinutes *int
	Tags            []string
}

// Normalize builds Criteria from raw request parameters (q, category,
// difficulty, max_time, tags). It never fails: unparseable values are dropped.
func Normalize(params map[string]string) Criteria {
	c := Criteria{
		Text:       strings.ToLower(strings.TrimSpace(params["q"])),
		Category:   strings.TrimSpace(params["category"]),
		Difficulty: strings.TrimSpace(params["difficulty"]),
	}

	if raw := strings.TrimSpace(params["max_time"]); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			c.MaxTotalMinutes = &n
		}
	}

	for _, tag := range strings.Split(params["tags"], ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			c.Tags = append(c.Tags, tag)
		}
	}

	return c
}

// HasTags reports whether the tag-aware strategy applies
func (c Criteria) HasTags() bool {
	return len(c.Tags) > 0
}

// Filters returns the non-tag filters used by the basic scan
func (c Criteria) Filters() repositories.RecipeFilters {
	return repositories.RecipeFilters{
		Text:            c.Text,
		Category:        c.Category,
		Difficulty:      c.Difficulty,
		MaxTotalMinutes: c.MaxTotalMinutes,
	}
}

// LogFilters returns the filter set the search log records
func (c Criteria) LogFilters() activity.SearchFilters {
	return activity.SearchFilters{
		Text:            c.Text,
		Category:        c.Category,
		Difficulty:      c.Difficulty,
		MaxTotalMinutes: c.MaxTotalMinutes,
	}
}
