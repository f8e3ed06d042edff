package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fabienpiette/recipe_finder/internal/auth"
	"github.com/fabienpiette/recipe_finder/internal/models"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// AuthRequired creates a middleware that requires a valid bearer token
func AuthRequired(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := jwtManager.ValidateToken(tokenParts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)

		c.Next()
	}
}

// GetCurrentUserID retrieves the current user ID from the Gin context
func GetCurrentUserID(c *gin.Context) (int64, error) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return 0, models.ErrUnauthorized
	}

	id, ok := userID.(int64)
	if !ok {
		return 0, models.ErrUnauthorized
	}
	return id, nil
}

func abortUnauthorized(c *gin.Context, detail string) {
	apiErr := models.NewAPIError(http.StatusUnauthorized, "Unauthorized", detail, c.Request.URL.Path)
	apiErr.RequestID = RequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
}
