package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const tokenPrefix = "session:token:"

var ErrTokenExpired = ports.ErrTokenExpired

// TokenStore keeps each session's bearer token until the token's own exp
// claim, or for the fallback TTL when the token carries none.
type TokenStore struct {
	client      *redis.Client
	fallbackTTL time.Duration
	now         func() time.Time
}

var _ ports.TokenStore = (*TokenStore)(nil)

func NewTokenStore(client *redis.Client, fallbackTTL time.Duration) *TokenStore {
	return &TokenStore{client: client, fallbackTTL: fallbackTTL, now: time.Now}
}

func (s *TokenStore) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, tokenPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) SetToken(ctx context.Context, sessionID, token string) error {
	ttl, err := s.ttlFor(token)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tokenPrefix+sessionID, token, ttl).Err()
}

func (s *TokenStore) ClearToken(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, tokenPrefix+sessionID).Err()
}

// ttlFor reads exp without verifying the signature; the backend owns the key
// and re-validates the token on every request.
func (s *TokenStore) ttlFor(token string) (time.Duration, error) {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil || claims.ExpiresAt == 0 {
		return s.fallbackTTL, nil
	}

	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if ttl <= 0 {
		return 0, ErrTokenExpired
	}
	return ttl, nil
}
