package testutil

import (
	"context"
	"sync"

	"github.com/drivestack/drivestack/internal/domain/tenant"
	ierr "github.com/drivestack/drivestack/internal/errors"
)

// InMemoryTenantStore implements tenant.Repository. Tenants are platform
// scoped, so no tenant filter applies here.
type InMemoryTenantStore struct {
	mu      sync.RWMutex
	tenants map[string]*tenant.Tenant
}

func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		tenants: make(map[string]*tenant.Tenant),
	}
}

func copyTenant(t *tenant.Tenant) *tenant.Tenant {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

func (s *InMemoryTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[t.ID]; exists {
		return ierr.NewError("tenant already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.tenants[t.ID] = copyTenant(t)
	return nil
}

func (s *InMemoryTenantStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tenants[id]
	if !exists {
		return nil, ierr.NewError("tenant not found").
			WithHintf("Tenant %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyTenant(t), nil
}

func (s *InMemoryTenantStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenants := make([]*tenant.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		tenants = append(tenants, copyTenant(t))
	}
	return tenants, nil
}

func (s *InMemoryTenantStore) Update(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[t.ID]; !exists {
		return ierr.NewError("tenant not found").
			WithHintf("Tenant %s was not found", t.ID).
			Mark(ierr.ErrNotFound)
	}
	s.tenants[t.ID] = copyTenant(t)
	return nil
}

func (s *InMemoryTenantStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = make(map[string]*tenant.Tenant)
}
