package user

import (
	"context"
)

// Repository persists login accounts. GetByEmail is deliberately not
// tenant scoped because it backs the login flow, which runs before a
// tenant is known.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
