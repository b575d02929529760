package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"recycletrack-api/internal/cache"
	"recycletrack-api/internal/model"
)

const (
	// TokenPrefix is the prefix for all session tokens
	TokenPrefix = "rtk_"

	// DefaultSessionTTL is the default token lifetime
	DefaultSessionTTL = 24 * time.Hour

	// sessionKeyPrefix is the cache key prefix for tokens
	sessionKeyPrefix = "session:"
)

// SessionService handles session token generation and validation. Tokens
// live in the cache, so a Redis-backed cache makes sessions survive
// restarts while the memory cache keeps tests self-contained.
type SessionService struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewSessionService creates a new session service.
// Returns nil if c is nil (required dependency).
func NewSessionService(c cache.Cache, ttl time.Duration) *SessionService {
	if c == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{cache: c, ttl: ttl}
}

// GenerateToken creates a new session token and stores it in the cache.
func (s *SessionService) GenerateToken(ctx context.Context, data model.TokenData) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := TokenPrefix + hex.EncodeToString(tokenBytes)

	data.CreatedAt = time.Now()
	data.ExpiresAt = data.CreatedAt.Add(s.ttl)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize token data: %w", err)
	}

	key := sessionKeyPrefix + token
	if err := s.cache.Set(ctx, key, jsonData, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	log.Printf("[SessionService] Generated token for user_id=%s, expires=%v", data.UserID, data.ExpiresAt)

	return token, nil
}

// ValidateToken checks if a token is valid and returns its data.
func (s *SessionService) ValidateToken(ctx context.Context, token string) (*model.TokenData, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	if len(token) < len(TokenPrefix) || token[:len(TokenPrefix)] != TokenPrefix {
		return nil, fmt.Errorf("invalid token format")
	}

	key := sessionKeyPrefix + token
	jsonData, err := s.cache.Get(ctx, key)
	if err == cache.ErrCacheMiss {
		return nil, fmt.Errorf("token not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var data model.TokenData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to parse token data: %w", err)
	}

	if time.Now().After(data.ExpiresAt) {
		_ = s.cache.Delete(ctx, key)
		return nil, fmt.Errorf("token expired")
	}

	return &data, nil
}

// RevokeToken deletes a token from the cache.
func (s *SessionService) RevokeToken(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
