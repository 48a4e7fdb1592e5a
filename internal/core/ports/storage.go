package ports

import (
	"context"
	"errors"
)

// ErrTokenExpired is returned by TokenStore.SetToken for a token whose exp
// claim has already passed.
var ErrTokenExpired = errors.New("access token already expired")

// FavoriteRepository persists favorite destination ids per device.
type FavoriteRepository interface {
	LoadFavorites(ctx context.Context, deviceID string) ([]int64, error)
	SaveFavorites(ctx context.Context, deviceID string, ids []int64) error
}

// TokenStore holds the bearer token of each session. Only the API client
// reads or writes it.
type TokenStore interface {
	Token(ctx context.Context, sessionID string) (string, error)
	SetToken(ctx context.Context, sessionID, token string) error
	ClearToken(ctx context.Context, sessionID string) error
}
