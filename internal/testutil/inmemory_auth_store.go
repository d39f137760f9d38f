package testutil

import (
	"context"
	"sync"

	"github.com/drivestack/drivestack/internal/domain/auth"
	ierr "github.com/drivestack/drivestack/internal/errors"
)

// InMemoryAuthStore implements auth.Repository
type InMemoryAuthStore struct {
	mu    sync.RWMutex
	auths map[string]*auth.Auth
}

func NewInMemoryAuthStore() *InMemoryAuthStore {
	return &InMemoryAuthStore{
		auths: make(map[string]*auth.Auth),
	}
}

func (s *InMemoryAuthStore) CreateAuth(ctx context.Context, a *auth.Auth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auths[a.UserID]; exists {
		return ierr.NewError("auth already exists").Mark(ierr.ErrAlreadyExists)
	}
	copied := *a
	s.auths[a.UserID] = &copied
	return nil
}

func (s *InMemoryAuthStore) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.auths[userID]
	if !exists {
		return nil, ierr.NewError("auth not found").
			WithHintf("No credentials for user %s", userID).
			Mark(ierr.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (s *InMemoryAuthStore) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auths[a.UserID]; !exists {
		return ierr.NewError("auth not found").
			WithHintf("No credentials for user %s", a.UserID).
			Mark(ierr.ErrNotFound)
	}
	copied := *a
	s.auths[a.UserID] = &copied
	return nil
}

func (s *InMemoryAuthStore) DeleteAuth(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auths[userID]; !exists {
		return ierr.NewError("auth not found").
			WithHintf("No credentials for user %s", userID).
			Mark(ierr.ErrNotFound)
	}
	delete(s.auths, userID)
	return nil
}

func (s *InMemoryAuthStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auths = make(map[string]*auth.Auth)
}
