package testutil

import (
	"context"

	"github.com/drivestack/drivestack/internal/domain/employee"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
)

// InMemoryEmployeeStore implements employee.Repository
type InMemoryEmployeeStore struct {
	*InMemoryStore[*employee.Employee]
}

func NewInMemoryEmployeeStore() *InMemoryEmployeeStore {
	return &InMemoryEmployeeStore{
		InMemoryStore: NewInMemoryStore[*employee.Employee](),
	}
}

func copyEmployee(e *employee.Employee) *employee.Employee {
	if e == nil {
		return nil
	}

	copied := *e
	copied.Permissions = make(map[string]bool, len(e.Permissions))
	for k, v := range e.Permissions {
		copied.Permissions[k] = v
	}
	return &copied
}

func (s *InMemoryEmployeeStore) Create(ctx context.Context, e *employee.Employee) error {
	return s.InMemoryStore.Create(ctx, e.ID, copyEmployee(e))
}

func (s *InMemoryEmployeeStore) Get(ctx context.Context, id string) (*employee.Employee, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, e.TenantID) {
		return nil, ierr.NewError("employee not found").
			WithHintf("Employee %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyEmployee(e), nil
}

func (s *InMemoryEmployeeStore) List(ctx context.Context, filter *types.EmployeeFilter) ([]*employee.Employee, error) {
	items, err := s.InMemoryStore.List(ctx, filter, employeeFilterFn, employeeSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(e *employee.Employee, _ int) *employee.Employee {
		return copyEmployee(e)
	}), nil
}

func (s *InMemoryEmployeeStore) Count(ctx context.Context, filter *types.EmployeeFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, employeeFilterFn)
}

func (s *InMemoryEmployeeStore) Update(ctx context.Context, e *employee.Employee) error {
	if _, err := s.Get(ctx, e.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, e.ID, copyEmployee(e))
}

// GetActiveByUserID scopes the lookup to the tenant in context and an
// active status, the way the SQL repository does.
func (s *InMemoryEmployeeStore) GetActiveByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	filterFn := func(ctx context.Context, e *employee.Employee, _ interface{}) bool {
		return e.UserID == userID &&
			e.EmployeeStatus == types.EmployeeStatusActive &&
			CheckTenantFilter(ctx, e.TenantID)
	}

	employees, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, ierr.NewError("employee not found").
			WithHintf("No active employee record for user %s", userID).
			Mark(ierr.ErrNotFound)
	}
	return copyEmployee(employees[0]), nil
}

func employeeFilterFn(ctx context.Context, e *employee.Employee, filter interface{}) bool {
	if !CheckTenantFilter(ctx, e.TenantID) {
		return false
	}
	if !CheckEnvironmentFilter(ctx, e.EnvironmentID) {
		return false
	}

	f, ok := filter.(*types.EmployeeFilter)
	if !ok || f == nil {
		return true
	}
	if f.Role != nil && e.Role != *f.Role {
		return false
	}
	if f.EmployeeStatus != nil && e.EmployeeStatus != *f.EmployeeStatus {
		return false
	}
	return true
}

func employeeSortFn(i, j *employee.Employee) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
