package testutil

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/domain/contract"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
)

// InMemoryContractStore implements contract.Repository and the vehicle
// schedule checker, backed by the same contract set.
type InMemoryContractStore struct {
	*InMemoryStore[*contract.Contract]
}

func NewInMemoryContractStore() *InMemoryContractStore {
	return &InMemoryContractStore{
		InMemoryStore: NewInMemoryStore[*contract.Contract](),
	}
}

func copyContract(c *contract.Contract) *contract.Contract {
	if c == nil {
		return nil
	}

	copied := *c
	if c.ActualReturnDate != nil {
		t := *c.ActualReturnDate
		copied.ActualReturnDate = &t
	}
	if c.EndOdometer != nil {
		v := c.EndOdometer.Copy()
		copied.EndOdometer = &v
	}
	copied.Extras = lo.Assign(map[string]string{}, c.Extras)
	return &copied
}

func (s *InMemoryContractStore) Create(ctx context.Context, c *contract.Contract) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyContract(c))
}

func (s *InMemoryContractStore) Get(ctx context.Context, id string) (*contract.Contract, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("contract not found").
			WithHintf("Contract %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if !CheckTenantFilter(ctx, c.TenantID) {
		return nil, ierr.NewError("contract not found").
			WithHintf("Contract %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyContract(c), nil
}

func (s *InMemoryContractStore) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	items, err := s.InMemoryStore.List(ctx, filter, contractFilterFn, contractSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c *contract.Contract, _ int) *contract.Contract {
		return copyContract(c)
	}), nil
}

func (s *InMemoryContractStore) Count(ctx context.Context, filter *types.ContractFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, contractFilterFn)
}

// Update mimics the SQL repository's optimistic check: the write only lands
// when the stored version still matches, and the version is bumped on
// success.
func (s *InMemoryContractStore) Update(ctx context.Context, c *contract.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.items[c.ID]
	if !exists || !CheckTenantFilter(ctx, stored.TenantID) {
		return ierr.NewError("contract not found").
			WithHintf("Contract %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	if stored.Version != c.Version {
		return ierr.NewError("contract was modified concurrently").
			WithHint("Refetch the contract and retry the operation").
			WithReportableDetails(map[string]any{
				"contract_id":      c.ID,
				"expected_version": c.Version,
				"stored_version":   stored.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyContract(c)
	updated.Version++
	s.items[c.ID] = updated
	c.Version = updated.Version
	return nil
}

// IsAvailable implements vehicle.ScheduleChecker over the stored contracts:
// a vehicle is free when no active contract overlaps the requested period.
func (s *InMemoryContractStore) IsAvailable(ctx context.Context, vehicleID string, start, end time.Time, excludeContractID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.items {
		if c.VehicleID != vehicleID || c.ID == excludeContractID {
			continue
		}
		if !CheckTenantFilter(ctx, c.TenantID) {
			continue
		}
		if c.ContractStatus != types.ContractStatusActive {
			continue
		}
		if !start.After(c.EndDate) && !end.Before(c.StartDate) {
			return false, nil
		}
	}
	return true, nil
}

func contractFilterFn(ctx context.Context, c *contract.Contract, filter interface{}) bool {
	if !CheckTenantFilter(ctx, c.TenantID) {
		return false
	}
	if !CheckEnvironmentFilter(ctx, c.EnvironmentID) {
		return false
	}

	f, ok := filter.(*types.ContractFilter)
	if !ok || f == nil {
		return true
	}
	if f.CustomerID != "" && c.CustomerID != f.CustomerID {
		return false
	}
	if f.VehicleID != "" && c.VehicleID != f.VehicleID {
		return false
	}
	if f.ContractStatus != nil && c.ContractStatus != *f.ContractStatus {
		return false
	}
	return true
}

func contractSortFn(i, j *contract.Contract) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
