package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

// RateLimit rejects requests beyond requestsPerSecond with the given burst.
// The limiter is shared by every client of this process.
func RateLimit(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			apiErr := models.NewAPIError(http.StatusTooManyRequests, "Too Many Requests",
				"Rate limit exceeded, retry shortly", c.Request.URL.Path)
			apiErr.RequestID = RequestID(c)
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiErr)
			return
		}

		c.Next()
	}
}
