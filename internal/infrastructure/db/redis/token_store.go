package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// TokenStore keeps refresh tokens and revoked access-token ids in Redis.
// Key formats:
//
//	refresh:<token>  -> user id
//	revoked:<jti>    -> "1"
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(token), userID, ttl).Err()
}

// LookupRefresh returns domain.ErrUnauthenticated for unknown or expired tokens.
func (s *TokenStore) LookupRefresh(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	return userID, nil
}

func (s *TokenStore) DeleteRefresh(ctx context.Context, token string) error {
	return s.client.Del(ctx, refreshKey(token)).Err()
}

// Revoke marks an access token id as unusable until ttl elapses.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func refreshKey(token string) string { return "refresh:" + token }

func revokedKey(tokenID string) string { return "revoked:" + tokenID }
