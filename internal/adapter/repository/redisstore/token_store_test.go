package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt int64) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "3",
		ExpiresAt: expiresAt,
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestTokenStore_SetTokenUsesExpClaim(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := NewTokenStore(db, time.Hour)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	token := signedToken(t, now.Add(15*time.Minute).Unix())
	mockRedis.ExpectSet("session:token:s-1", token, 15*time.Minute).SetVal("OK")

	assert.NoError(t, store.SetToken(context.Background(), "s-1", token))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestTokenStore_SetTokenWithoutExpUsesFallback(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := NewTokenStore(db, time.Hour)

	mockRedis.ExpectSet("session:token:s-1", "opaque-token", time.Hour).SetVal("OK")

	assert.NoError(t, store.SetToken(context.Background(), "s-1", "opaque-token"))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestTokenStore_RejectsExpiredToken(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := NewTokenStore(db, time.Hour)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	err := store.SetToken(context.Background(), "s-1", signedToken(t, now.Add(-time.Minute).Unix()))

	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestTokenStore_TokenAndClear(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := NewTokenStore(db, time.Hour)
	ctx := context.Background()

	mockRedis.ExpectGet("session:token:s-1").SetVal("jwt-abc")
	mockRedis.ExpectDel("session:token:s-1").SetVal(1)
	mockRedis.ExpectGet("session:token:s-1").RedisNil()

	token, err := store.Token(ctx, "s-1")
	assert.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)

	assert.NoError(t, store.ClearToken(ctx, "s-1"))

	token, err = store.Token(ctx, "s-1")
	assert.NoError(t, err)
	assert.Empty(t, token)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
