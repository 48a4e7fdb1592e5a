package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/ports/mocks"
)

func newTestManager(t *testing.T, ttl time.Duration) (*SessionManager, *mocks.FavoriteRepository, *mocks.TokenStore) {
	favorites := mocks.NewFavoriteRepository(t)
	tokens := mocks.NewTokenStore(t)
	m := NewSessionManager(SessionManagerConfig{
		NewBackend: func(string) Backend {
			return Backend{
				Flights:      mocks.NewFlightAPI(t),
				Destinations: mocks.NewDestinationAPI(t),
				Bookings:     mocks.NewBookingAPI(t),
				Users:        mocks.NewUserAPI(t),
			}
		},
		Favorites: favorites,
		Tokens:    tokens,
		IdleTTL:   ttl,
		Logger:    zap.NewNop(),
	})
	return m, favorites, tokens
}

func TestSessionManager_CreateRestoresFavorites(t *testing.T) {
	m, favorites, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	favorites.On("LoadFavorites", ctx, "device-9").Return([]int64{4, 2}, nil)

	s := m.Create(ctx, "device-9")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "device-9", s.DeviceID)
	assert.Equal(t, []int64{4, 2}, s.Destinations.FavoriteIDs())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())
}

func TestSessionManager_CreateGeneratesDeviceID(t *testing.T) {
	m, favorites, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	favorites.On("LoadFavorites", ctx, mock.AnythingOfType("string")).Return(nil, nil)

	a := m.Create(ctx, "")
	b := m.Create(ctx, "")

	assert.NotEmpty(t, a.DeviceID)
	assert.NotEqual(t, a.DeviceID, b.DeviceID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionManager_Delete(t *testing.T) {
	m, favorites, tokens := newTestManager(t, time.Hour)
	ctx := context.Background()

	favorites.On("LoadFavorites", ctx, "d").Return(nil, nil)
	s := m.Create(ctx, "d")
	tokens.On("ClearToken", ctx, s.ID).Return(nil)

	assert.True(t, m.Has(s.ID))
	assert.False(t, m.Has("made-up"))

	assert.True(t, m.Delete(ctx, s.ID))
	assert.False(t, m.Delete(ctx, s.ID))
	assert.False(t, m.Has(s.ID))

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
}

func TestSessionManager_ProcessExpiredSessions(t *testing.T) {
	m, favorites, tokens := newTestManager(t, 30*time.Minute)
	ctx := context.Background()
	clock := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	favorites.On("LoadFavorites", ctx, "d").Return(nil, nil)
	idle := m.Create(ctx, "d")
	active := m.Create(ctx, "d")
	tokens.On("ClearToken", ctx, idle.ID).Return(nil)

	clock = clock.Add(20 * time.Minute)
	m.Get(active.ID)
	clock = clock.Add(15 * time.Minute)

	assert.Equal(t, 1, m.processExpiredSessions(ctx))

	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
}

func TestSessionManager_RunBackgroundCleanupStops(t *testing.T) {
	m, _, _ := newTestManager(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.RunBackgroundCleanup(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
