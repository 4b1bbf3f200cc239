package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements login and registration against the local user store.
// Both operations simulate identity-provider latency before touching state,
// matching the storefront's mock API behavior.
type Service struct {
	store  *Store
	delay  time.Duration
	logger *slog.Logger
}

func NewService(store *Store, delay time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		delay:  delay,
		logger: logger.With("component", "auth"),
	}
}

type RegisterDto struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login checks the credentials and returns the safe profile.
// Returns ErrInvalidCredentials when no user matches.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	stored := s.store.FindByEmail(email)
	if stored == nil || stored.Password != password {
		return nil, ErrInvalidCredentials
	}
	u := stored.User
	s.logger.InfoContext(ctx, "User logged in", "user_id", u.ID, "role", u.Role)
	return &u, nil
}

// Register creates a new user with the default role and returns its profile.
// Returns ErrEmailTaken when the email is already registered.
func (s *Service) Register(ctx context.Context, dto RegisterDto) (*User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	if s.store.FindByEmail(dto.Email) != nil {
		return nil, ErrEmailTaken
	}

	avatar := ""
	if name := strings.TrimSpace(dto.Name); name != "" {
		avatar = strings.ToUpper(name[:1])
	}
	user := storedUser{
		User: User{
			ID:        uuid.NewString(),
			Email:     dto.Email,
			Name:      dto.Name,
			Avatar:    avatar,
			Role:      RoleUser,
			CreatedAt: time.Now().UTC(),
		},
		Password: dto.Password,
	}
	if err := s.store.Add(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.logger.InfoContext(ctx, "User registered", "user_id", user.ID)
	u := user.User
	return &u, nil
}

// UserByID resolves a user id to its safe profile.
func (s *Service) UserByID(id string) (*User, error) {
	return s.store.FindByID(id)
}

// Users lists every profile. Callers gate this behind the admin role.
func (s *Service) Users() []User {
	return s.store.All()
}

// simulateLatency stands in for a real identity provider round trip. The
// delay is cooperative: it completes unless the caller's context is
// cancelled first.
func (s *Service) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
