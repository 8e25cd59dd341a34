package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, VerifyPassword(hash, "secret"))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestVerifyPassword_NotAHash(t *testing.T) {
	assert.False(t, VerifyPassword("plaintext", "plaintext"))
}
