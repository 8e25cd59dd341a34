package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grapevine/backend/internal/graph"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue(graph.User{
		ID:    "u-1",
		Name:  "Ann",
		Email: "ann@x.com",
		Slug:  "ann",
		Role:  "user",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "ann", claims.Slug)
	assert.Equal(t, "user", claims.Role)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue(graph.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one-secret", time.Hour).Issue(graph.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret", time.Hour).Parse("not-a-token")
	assert.Error(t, err)
}
