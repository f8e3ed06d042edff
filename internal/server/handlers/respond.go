package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/middleware"
	"github.com/fabienpiette/recipe_finder/internal/models"
)

// respondError renders err as a problem document. Store failures are logged
// here with their cause; the client only sees a generic detail.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status, detail := models.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c),
			"path":       c.Request.URL.Path,
		}).Error("Request failed")
	}

	apiErr := models.NewAPIError(status, http.StatusText(status), detail, c.Request.URL.Path)
	apiErr.RequestID = middleware.RequestID(c)
	c.JSON(status, apiErr)
}

// respondBindError renders a request body that failed to bind or validate
func respondBindError(c *gin.Context, err error) {
	apiErr := models.NewAPIError(http.StatusBadRequest, "Bad Request", "Invalid request format", c.Request.URL.Path)
	apiErr.RequestID = middleware.RequestID(c)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			apiErr.AddValidationError(strings.ToLower(fe.Field()), fe.Tag(), fe.Error())
		}
	}

	c.JSON(http.StatusBadRequest, apiErr)
}

// recipeID parses the :id path parameter
func recipeID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ErrInvalidIdentifier
	}
	return id, nil
}
