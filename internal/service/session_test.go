package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycletrack-api/internal/cache"
	"recycletrack-api/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(cache.NewMemoryCache(), time.Hour)
	require.NotNil(t, svc)

	token, err := svc.GenerateToken(ctx, model.TokenData{UserID: "u1", Username: "alice"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, TokenPrefix))

	data, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", data.UserID)
	assert.Equal(t, "alice", data.Username)
	assert.True(t, data.ExpiresAt.After(data.CreatedAt))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(cache.NewMemoryCache(), time.Hour)

	_, err := svc.ValidateToken(ctx, "")
	assert.Error(t, err)

	_, err = svc.ValidateToken(ctx, "not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateToken(ctx, TokenPrefix+"deadbeef")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(cache.NewMemoryCache(), time.Hour)

	token, err := svc.GenerateToken(ctx, model.TokenData{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, token))

	_, err = svc.ValidateToken(ctx, token)
	assert.Error(t, err)
}

func TestTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(cache.NewMemoryCache(), time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, err := svc.GenerateToken(ctx, model.TokenData{UserID: "u1", Username: "alice"})
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestSessionTTLDefault(t *testing.T) {
	svc := NewSessionService(cache.NewMemoryCache(), 0)
	assert.Equal(t, DefaultSessionTTL, svc.TTL())
}
