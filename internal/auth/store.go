package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/kaozx001/project-nawatakum/pkg/storage"
)

// usersKey is the collection key the user records persist under.
const usersKey = "jaktech_all_users"

// storedUser is the persisted record. Unlike User it carries the credential;
// this is a simulated identity store, so the password is kept in plain text
// exactly as the source data did.
type storedUser struct {
	User
	Password string `json:"password"`
}

// Store owns the user collection. Every mutation rewrites the collection
// document under usersKey.
type Store struct {
	mu    sync.RWMutex
	kv    storage.KV
	users []storedUser
}

// NewStore loads the user collection from kv, seeding the demo accounts when
// the collection is absent or unreadable.
func NewStore(kv storage.KV) (*Store, error) {
	s := &Store{kv: kv}
	found, err := kv.Load(usersKey, &s.users)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if !found || len(s.users) == 0 {
		s.users = seedUsers()
		if err := kv.Save(usersKey, s.users); err != nil {
			return nil, fmt.Errorf("failed to persist seed users: %w", err)
		}
	}
	return s, nil
}

// FindByEmail returns the stored record matching email, or nil.
func (s *Store) FindByEmail(email string) *storedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u
		}
	}
	return nil
}

// FindByID returns the safe profile for id, or ErrUserNotFound.
func (s *Store) FindByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i].User
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Add appends a new user record and persists the collection.
func (s *Store) Add(u storedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, u)
	if err := s.kv.Save(usersKey, s.users); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	return nil
}

// All returns safe profiles for every user, admin dashboard material.
func (s *Store) All() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]User, len(s.users))
	for i := range s.users {
		list[i] = s.users[i].User
	}
	return list
}

// seedUsers returns the demo accounts present on first run.
func seedUsers() []storedUser {
	return []storedUser{
		{
			User: User{
				ID:        "1",
				Email:     "demo@jaktech.com",
				Name:      "Demo User",
				Avatar:    "D",
				Role:      RoleUser,
				Phone:     "0812345678",
				Address:   "123/45 Sukhumvit Rd, Bangkok 10110",
				CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			},
			Password: "demo123",
		},
		{
			User: User{
				ID:        "2",
				Email:     "admin@jaktech.com",
				Name:      "Admin User",
				Avatar:    "A",
				Role:      RoleAdmin,
				Phone:     "0898765432",
				Address:   "JAK TECH HQ",
				CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			Password: "admin123",
		},
	}
}
