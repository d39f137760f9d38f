package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/drivestack/drivestack/internal/domain/user"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
)

type userRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewUserRepository(db postgres.IClient, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (id, email, role, tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :email, :role, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, u); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT * FROM users WHERE id = $1 AND tenant_id = $2`

	var u user.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("user not found").
				WithHintf("User %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

// GetByEmail runs without a tenant scope; it backs the login endpoint where
// no tenant context exists yet.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var u user.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("user not found").
				WithHintf("No user with email %s", email).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}
