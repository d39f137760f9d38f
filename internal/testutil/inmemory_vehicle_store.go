package testutil

import (
	"context"

	"github.com/drivestack/drivestack/internal/domain/vehicle"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
)

// InMemoryVehicleStore implements vehicle.Repository
type InMemoryVehicleStore struct {
	*InMemoryStore[*vehicle.Vehicle]
}

func NewInMemoryVehicleStore() *InMemoryVehicleStore {
	return &InMemoryVehicleStore{
		InMemoryStore: NewInMemoryStore[*vehicle.Vehicle](),
	}
}

func copyVehicle(v *vehicle.Vehicle) *vehicle.Vehicle {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func (s *InMemoryVehicleStore) Create(ctx context.Context, v *vehicle.Vehicle) error {
	return s.InMemoryStore.Create(ctx, v.ID, copyVehicle(v))
}

func (s *InMemoryVehicleStore) Get(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, v.TenantID) {
		return nil, ierr.NewError("vehicle not found").
			WithHintf("Vehicle %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyVehicle(v), nil
}

func (s *InMemoryVehicleStore) List(ctx context.Context, filter *types.VehicleFilter) ([]*vehicle.Vehicle, error) {
	items, err := s.InMemoryStore.List(ctx, filter, vehicleFilterFn, vehicleSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(v *vehicle.Vehicle, _ int) *vehicle.Vehicle {
		return copyVehicle(v)
	}), nil
}

func (s *InMemoryVehicleStore) Count(ctx context.Context, filter *types.VehicleFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, vehicleFilterFn)
}

func (s *InMemoryVehicleStore) Update(ctx context.Context, v *vehicle.Vehicle) error {
	if _, err := s.Get(ctx, v.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, v.ID, copyVehicle(v))
}

func vehicleFilterFn(ctx context.Context, v *vehicle.Vehicle, filter interface{}) bool {
	if !CheckTenantFilter(ctx, v.TenantID) {
		return false
	}
	if !CheckEnvironmentFilter(ctx, v.EnvironmentID) {
		return false
	}

	f, ok := filter.(*types.VehicleFilter)
	if !ok || f == nil {
		return true
	}
	if f.VehicleStatus != nil && v.VehicleStatus != *f.VehicleStatus {
		return false
	}
	return true
}

func vehicleSortFn(i, j *vehicle.Vehicle) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
