package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sportsfeed/contentguard/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndDecode(t *testing.T) {
	m := NewJwtManager(&config.ServerConfig{SecretKey: "secret"})

	token, err := m.CreateToken("moderator-7")
	require.NoError(t, err)
	assert.NoError(t, m.ValidateToken(token))

	claims, err := m.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "moderator-7", claims.Subject)
}

func TestManager_RejectsOtherSecret(t *testing.T) {
	token, err := NewJwtManager(&config.ServerConfig{SecretKey: "other"}).CreateToken("x")
	require.NoError(t, err)

	err = NewJwtManager(&config.ServerConfig{SecretKey: "secret"}).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "moderator-7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJwtManager(&config.ServerConfig{SecretKey: "secret"}).DecodeToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewJwtManager(&config.ServerConfig{SecretKey: "secret"})
	assert.ErrorIs(t, m.ValidateToken("not-a-token"), ErrInvalidToken)
}
