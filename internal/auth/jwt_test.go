package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabienpiette/recipe_finder/internal/models"
)

func TestNewJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret-key", 24)

	assert.NotNil(t, manager)
	assert.Equal(t, []byte("test-secret-key"), manager.secretKey)
	assert.Equal(t, 24*time.Hour, manager.tokenDuration)
}

func TestJWTManager_GenerateToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	user := &models.User{ID: 123, Username: "cook"}

	tokenString, expiresAt, err := manager.GenerateToken(user)

	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(2*time.Hour)))

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*Claims)
	require.True(t, ok)
	assert.Equal(t, int64(123), claims.UserID)
	assert.Equal(t, "cook", claims.Username)
	assert.Equal(t, "123", claims.Subject)
	assert.Equal(t, "recipefinder", claims.Issuer)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.NotBefore)
}

func TestJWTManager_ValidateToken_ValidToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	tokenString, _, err := manager.GenerateToken(&models.User{ID: 7, Username: "chef"})
	require.NoError(t, err)

	claims, err := manager.ValidateToken(tokenString)

	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "chef", claims.Username)
}

func TestJWTManager_ValidateToken_InvalidSignature(t *testing.T) {
	issuer := NewJWTManager("secret-one", 1)
	validator := NewJWTManager("secret-two", 1)

	tokenString, _, err := issuer.GenerateToken(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
}

func TestJWTManager_ValidateToken_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	manager.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	tokenString, _, err := manager.GenerateToken(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	manager.now = time.Now
	_, err = manager.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_ValidateToken_MalformedToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestJWTManager_ValidateToken_WrongIssuer(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("test-secret", 1).ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateToken_WrongSigningMethod(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("test-secret", 1).ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ValidateToken_MissingUserID(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	tokenString, _, err := manager.GenerateToken(&models.User{ID: 0, Username: "ghost"})
	require.NoError(t, err)

	_, err = manager.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func BenchmarkJWTManager_ValidateToken(b *testing.B) {
	manager := NewJWTManager("benchmark-secret", 1)
	tokenString, _, err := manager.GenerateToken(&models.User{ID: 1, Username: "bench"})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := manager.ValidateToken(tokenString); err != nil {
			b.Fatal(err)
		}
	}
}
