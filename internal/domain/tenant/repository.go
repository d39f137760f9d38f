package tenant

import (
	"context"
)

// Repository persists rental company tenants. Tenant rows are global, not
// tenant scoped, so lookups take the raw id.
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) error
}
