package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fabienpiette/recipe_finder/internal/auth"
	"github.com/fabienpiette/recipe_finder/internal/middleware"
	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/services"
)

// AuthHandler handles registration, login and profile endpoints
type AuthHandler struct {
	container *services.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *services.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// Register creates an account and returns an access token for it
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		respondError(c, h.container.GetLogger(), fmt.Errorf("%w: %s", models.ErrValidation, err.Error()))
		return
	}

	hash, err := h.container.GetPasswordHasher().HashPassword(req.Password)
	if err != nil {
		h.container.GetLogger().WithError(err).Error("Failed to hash password")
		respondError(c, h.container.GetLogger(), err)
		return
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
	}

	if err := h.container.GetUserRepository().Create(c.Request.Context(), user); err != nil {
		respondError(c, h.container.GetLogger(), wrapStore("create user", err))
		return
	}

	h.container.GetLogger().WithField("user_id", user.ID).Info("User registered")
	h.respondWithToken(c, http.StatusCreated, user)
}

// Login exchanges email and password for an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userRepo := h.container.GetUserRepository()

	user, err := userRepo.GetByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if err != nil {
		respondError(c, h.container.GetLogger(), models.StoreError("find user", err))
		return
	}
	if user == nil {
		respondError(c, h.container.GetLogger(), models.ErrInvalidCredentials)
		return
	}

	ok, err := h.container.GetPasswordHasher().VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		h.container.GetLogger().WithError(err).WithField("user_id", user.ID).Error("Stored password hash is unreadable")
	}
	if !ok {
		respondError(c, h.container.GetLogger(), models.ErrInvalidCredentials)
		return
	}

	now := time.Now().UTC()
	if err := userRepo.UpdateLastLogin(c.Request.Context(), user.ID, now); err != nil {
		h.container.GetLogger().WithError(err).Warn("Failed to update last login time")
	} else {
		user.LastLogin = &now
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Profile returns the authenticated user
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := middleware.GetCurrentUserID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	user, err := h.container.GetUserRepository().GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.container.GetLogger(), models.StoreError("get user", err))
		return
	}
	if user == nil {
		respondError(c, h.container.GetLogger(), models.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile changes the authenticated user's username
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetCurrentUserID(c)
	if err != nil {
		respondError(c, h.container.GetLogger(), err)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if len([]rune(username)) < 3 {
		respondError(c, h.container.GetLogger(), fmt.Errorf("%w: username must be at least 3 characters", models.ErrValidation))
		return
	}

	if err := h.container.GetUserRepository().UpdateUsername(c.Request.Context(), userID, username); err != nil {
		respondError(c, h.container.GetLogger(), wrapStore("update user", err))
		return
	}

	h.container.GetLogger().WithField("user_id", userID).Info("User profile updated")
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, expiresAt, err := h.container.GetJWTManager().GenerateToken(user)
	if err != nil {
		h.container.GetLogger().WithError(err).Error("Failed to generate JWT")
		respondError(c, h.container.GetLogger(), err)
		return
	}

	c.JSON(status, models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	})
}

// wrapStore keeps already categorized errors and marks the rest as store failures
func wrapStore(op string, err error) error {
	if status, _ := models.ErrorStatus(err); status != http.StatusInternalServerError {
		return err
	}
	return models.StoreError(op, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
