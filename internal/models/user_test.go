package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONSerialization(t *testing.T) {
	lastLogin := time.Now().UTC().Truncate(time.Second)

	user := &User{
		ID:           1,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword123",
		LastLogin:    &lastLogin,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	jsonData, err := json.Marshal(user)
	require.NoError(t, err)

	// Verify password hash is not included in JSON
	jsonStr := string(jsonData)
	assert.NotContains(t, jsonStr, "password_hash")
	assert.NotContains(t, jsonStr, "hashedpassword123")

	var unmarshaledUser User
	err = json.Unmarshal(jsonData, &unmarshaledUser)
	require.NoError(t, err)

	assert.Equal(t, user.ID, unmarshaledUser.ID)
	assert.Equal(t, user.Username, unmarshaledUser.Username)
	assert.Equal(t, user.Email, unmarshaledUser.Email)
	assert.Equal(t, user.LastLogin.Unix(), unmarshaledUser.LastLogin.Unix())
	assert.Equal(t, user.CreatedAt.Unix(), unmarshaledUser.CreatedAt.Unix())
	assert.Empty(t, unmarshaledUser.PasswordHash)
}

func TestUser_NeverLoggedInOmitsLastLogin(t *testing.T) {
	user := &User{ID: 1, Username: "testuser", Email: "t@example.com", CreatedAt: time.Now()}

	jsonData, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(jsonData), "last_login")
}

func TestLoginResponse_JSONSerialization(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	response := &LoginResponse{
		AccessToken: "jwt-token-here",
		TokenType:   "Bearer",
		ExpiresAt:   expires,
		User:        &User{ID: 1, Username: "testuser"},
	}

	jsonData, err := json.Marshal(response)
	require.NoError(t, err)

	var unmarshaled LoginResponse
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, response.AccessToken, unmarshaled.AccessToken)
	assert.Equal(t, "Bearer", unmarshaled.TokenType)
	assert.True(t, expires.Equal(unmarshaled.ExpiresAt))
	assert.Equal(t, int64(1), unmarshaled.User.ID)
}

func TestRecipe_JSONShape(t *testing.T) {
	recipe := Recipe{
		ID:        7,
		Name:      "Dal",
		TotalTime: 35,
		Nutrition: Nutrition{Calories: 180, Protein: "9g", Carbs: "0g", Fat: "0g", Fiber: "0g"},
	}

	jsonData, err := json.Marshal(recipe)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonData, &raw))

	assert.Equal(t, float64(35), raw["total_time"])
	assert.Equal(t, float64(0), raw["avg_rating"])
	assert.NotContains(t, raw, "image_url")
	assert.NotContains(t, raw, "favorited_at")

	nutrition := raw["nutrition"].(map[string]interface{})
	assert.Equal(t, "9g", nutrition["protein"])
	assert.Equal(t, float64(180), nutrition["calories"])
}
