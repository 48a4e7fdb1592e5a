package services

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const userStoreName = "user"

type UserStore struct {
	api      ports.UserAPI
	validate *validator.Validate
	bus      *EventBus
	logger   *zap.Logger

	mu        sync.RWMutex
	user      *domain.User
	isLoading bool
	err       string
}

func NewUserStore(api ports.UserAPI, validate *validator.Validate, bus *EventBus, logger *zap.Logger) *UserStore {
	return &UserStore{
		api:      api,
		validate: validate,
		bus:      bus,
		logger:   logger.Named(userStoreName),
	}
}

func (s *UserStore) SignIn(ctx context.Context, email, password string) bool {
	return s.authenticate(ctx, "signIn", "Failed to sign in", func() (*domain.User, error) {
		return s.api.SignIn(ctx, email, password)
	})
}

// SignUp rejects malformed input before calling the API.
func (s *UserStore) SignUp(ctx context.Context, name, email, password string) bool {
	req := domain.SignUpRequest{Name: name, Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		s.mu.Lock()
		s.err = signUpMessage(err)
		s.mu.Unlock()
		s.bus.publish(userStoreName, "signUp")
		return false
	}

	return s.authenticate(ctx, "signUp", "Failed to sign up", func() (*domain.User, error) {
		return s.api.SignUp(ctx, req)
	})
}

func (s *UserStore) FetchUser(ctx context.Context, id int64) bool {
	return s.authenticate(ctx, "fetchUser", "Failed to fetch user", func() (*domain.User, error) {
		return s.api.GetUserByID(ctx, id)
	})
}

func (s *UserStore) authenticate(ctx context.Context, action, fallback string, call func() (*domain.User, error)) bool {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()

	user, err := call()

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, fallback)
	} else {
		s.user = user
	}
	s.isLoading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Info("user action failed", zap.String("action", action), zap.Error(err))
	}
	s.bus.publish(userStoreName, action)
	return err == nil
}

// SignOut forgets the user locally. Token invalidation belongs to the API
// client's storage.
func (s *UserStore) SignOut() {
	s.mu.Lock()
	s.user = nil
	s.err = ""
	s.mu.Unlock()
	s.bus.publish(userStoreName, "signOut")
}

func (s *UserStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *UserStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *UserStore) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Name
}

func (s *UserStore) Tier() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.user.Role == "" {
		return "Member"
	}
	return s.user.Role
}

func (s *UserStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

func (s *UserStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func signUpMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid sign up details"
	}

	switch verrs[0].Field() {
	case "Name":
		return "Name is required"
	case "Email":
		return "A valid email is required"
	case "Password":
		return "Password must be at least 6 characters"
	}
	return "Invalid sign up details"
}
