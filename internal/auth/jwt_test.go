package auth_test

import (
	"testing"
	"time"

	"taskdesk/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

var secret = []byte("test-secret-key")

func TestGenerateAndParseToken(t *testing.T) {
	// Generate a token
	token, err := auth.GenerateToken(secret, "admin@example.com", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Parse it back
	subject, err := auth.ParseToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", subject)
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, err := auth.ParseToken(secret, "invalid-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken([]byte("other"), "a@x.com", time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseToken(secret, token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// Token expired an hour ago
	claims := jwt.MapClaims{
		"sub": "a@x.com",
		"exp": time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString(secret)

	_, err := auth.ParseToken(secret, expiredToken)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	// No subject in the token
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutSubject, _ := token.SignedString(secret)

	_, err := auth.ParseToken(secret, tokenWithoutSubject)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
	assert.Equal(t, "invalid claims", err.Error())
}

func TestAuthenticate(t *testing.T) {
	assert.NoError(t, auth.Authenticate("any@example.com", "anything"))
	assert.ErrorIs(t, auth.Authenticate("", "pw"), auth.ErrInvalidCredentials)
	assert.ErrorIs(t, auth.Authenticate("   ", "pw"), auth.ErrInvalidCredentials)
	assert.ErrorIs(t, auth.Authenticate("a@x.com", ""), auth.ErrInvalidCredentials)
}
