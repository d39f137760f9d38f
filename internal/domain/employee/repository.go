package employee

import (
	"context"

	"github.com/drivestack/drivestack/internal/types"
)

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	Get(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, filter *types.EmployeeFilter) ([]*Employee, error)
	Count(ctx context.Context, filter *types.EmployeeFilter) (int, error)
	Update(ctx context.Context, e *Employee) error

	// GetActiveByUserID resolves the active employee record linked to a user
	// account within the tenant in context. A not-found result is expected
	// for owners and for users whose employee record has not been linked yet.
	GetActiveByUserID(ctx context.Context, userID string) (*Employee, error)
}
