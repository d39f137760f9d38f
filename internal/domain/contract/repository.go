package contract

import (
	"context"

	"github.com/drivestack/drivestack/internal/types"
)

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, filter *types.ContractFilter) ([]*Contract, error)
	Count(ctx context.Context, filter *types.ContractFilter) (int, error)

	// Update persists the contract only when the stored row still carries
	// c.Version; on success the version is bumped. A concurrent mutation
	// that won the race surfaces as a version-conflict error.
	Update(ctx context.Context, c *Contract) error
}
