package vehicle

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/types"
)

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	Get(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter *types.VehicleFilter) ([]*Vehicle, error)
	Count(ctx context.Context, filter *types.VehicleFilter) (int, error)
	Update(ctx context.Context, v *Vehicle) error
}

// ScheduleChecker answers whether a vehicle is free for a period. Vehicle
// scheduling is owned by the reservation system; the contract lifecycle only
// consults it before creating or extending a contract.
type ScheduleChecker interface {
	// IsAvailable reports whether no conflicting reservation exists for the
	// vehicle in [start, end]. excludeContractID ignores the contract being
	// extended so it never conflicts with itself.
	IsAvailable(ctx context.Context, vehicleID string, start, end time.Time, excludeContractID string) (bool, error)
}
