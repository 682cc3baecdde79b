package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

func TestGenerateAndParseJWTToken(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	customer := &models.Customer{}
	customer.ID = 99

	access, refresh, err := GenerateJWTToken(customer)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ParseJWTToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(99), claims.CustomerID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseJWTTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	customer := &models.Customer{}
	customer.ID = 1
	access, _, err := GenerateJWTToken(customer)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "different-secret"
	_, err = ParseJWTToken(access)
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	_, err := ParseJWTToken("not-a-token")
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsExpired(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	claims := &Claims{
		CustomerID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseJWTToken(signed)
	assert.Error(t, err)
}
