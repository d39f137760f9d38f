package testutil

import (
	"context"
	"sync"

	"github.com/drivestack/drivestack/internal/domain/user"
	ierr "github.com/drivestack/drivestack/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email && existing.TenantID == u.TenantID {
			return ierr.NewError("user already exists").
				WithHint("A user with this email already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return nil, ierr.NewError("user not found").
			WithHintf("User %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ierr.NewError("user not found").
		WithHintf("No user with email %s", email).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
