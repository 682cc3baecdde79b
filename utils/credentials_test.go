package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, APIKeyPrefix))
	assert.Len(t, key, len(APIKeyPrefix)+48)

	other, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateStateToken(t *testing.T) {
	token, err := GenerateStateToken()
	require.NoError(t, err)
	assert.Len(t, token, 32)
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := GenerateTempPassword(16)
	require.NoError(t, err)
	assert.Len(t, pw, 16)

	// No ambiguous characters in the charset
	for _, forbidden := range "0O1lIo" {
		assert.NotContains(t, pw, string(forbidden))
	}

	_, err = GenerateTempPassword(0)
	assert.Error(t, err)
	_, err = GenerateTempPassword(-5)
	assert.Error(t, err)
}
