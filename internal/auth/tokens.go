package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionTTL = 30 * 24 * time.Hour
	keyPrefix  = "session:"
)

// Connect parses redisURL, creates a client, and verifies connectivity with a ping.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// TokenStore issues and resolves opaque bearer tokens backed by Redis.
// Tokens expire after 30 days and are revoked when an account is deleted.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore with the default session TTL.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client, ttl: sessionTTL}
}

func key(token string) string {
	return keyPrefix + token
}

// Issue creates a fresh random token mapped to userID.
func (s *TokenStore) Issue(ctx context.Context, userID int64) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := s.client.Set(ctx, key(token), strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session for user %d: %w", userID, err)
	}

	return token, nil
}

// Resolve returns the user id a token was issued to.
// Returns 0, nil for unknown or expired tokens (not an error).
func (s *TokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("resolving session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing session value %q: %w", val, err)
	}

	return userID, nil
}

// Revoke deletes a token. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}
