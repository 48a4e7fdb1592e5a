package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const cleanupInterval = 1 * time.Minute

type SessionManagerConfig struct {
	// NewBackend returns the API client bound to one session's bearer token.
	NewBackend func(sessionID string) Backend
	Favorites  ports.FavoriteRepository
	Tokens     ports.TokenStore
	Validate   *validator.Validate
	IdleTTL    time.Duration
	Logger     *zap.Logger
	// NewRand is optional; nil uses the package random source.
	NewRand func() domain.RandSource
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

type SessionManager struct {
	cfg    SessionManagerConfig
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	if cfg.Validate == nil {
		cfg.Validate = validator.New()
	}
	return &SessionManager{
		cfg:      cfg,
		logger:   cfg.Logger.Named("sessions"),
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Create opens a session for deviceID, generating a device id when empty, and
// restores the device's saved favorites.
func (m *SessionManager) Create(ctx context.Context, deviceID string) *Session {
	id := uuid.NewString()
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	deps := SessionDeps{
		Backend:   m.cfg.NewBackend(id),
		Favorites: m.cfg.Favorites,
		Tokens:    m.cfg.Tokens,
		Validate:  m.cfg.Validate,
		Logger:    m.cfg.Logger,
	}
	if m.cfg.NewRand != nil {
		deps.Rand = m.cfg.NewRand()
	}

	session := NewSession(id, deviceID, deps)
	session.Destinations.LoadFavorites(ctx)

	m.mu.Lock()
	m.sessions[id] = &sessionEntry{session: session, lastSeen: m.now()}
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", id), zap.String("device_id", deviceID))
	return session
}

// Get returns the session and marks it as recently used.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = m.now()
	return entry.session, true
}

// Has reports whether id names a live session without refreshing it.
func (m *SessionManager) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[id]
	return ok
}

func (m *SessionManager) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	entry.session.SignOut(ctx)
	m.logger.Info("session closed", zap.String("session_id", id))
	return true
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionManager) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	m.logger.Info("session sweeper started", zap.Duration("interval", cleanupInterval), zap.Duration("idle_ttl", m.cfg.IdleTTL))

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			m.processExpiredSessions(ctx)
		}
	}
}

func (m *SessionManager) processExpiredSessions(ctx context.Context) int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.RLock()
	var ids []string
	for id, entry := range m.sessions {
		if entry.lastSeen.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	m.mu.RUnlock()

	if len(ids) == 0 {
		return 0
	}

	m.logger.Info("expiring idle sessions", zap.Int("count", len(ids)))

	expired := 0
	for _, id := range ids {
		m.mu.Lock()
		entry, ok := m.sessions[id]
		if ok && entry.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		} else {
			ok = false
		}
		m.mu.Unlock()

		if ok {
			entry.session.SignOut(ctx)
			expired++
		}
	}
	return expired
}
