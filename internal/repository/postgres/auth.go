package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/drivestack/drivestack/internal/domain/auth"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
)

type authRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewAuthRepository(db postgres.IClient, logger *logger.Logger) auth.Repository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	query := `
	INSERT INTO auths (user_id, token, status, created_at, updated_at)
	VALUES (:user_id, :token, :status, :created_at, :updated_at)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, a); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	query := `SELECT * FROM auths WHERE user_id = $1`

	var a auth.Auth
	err := r.db.Querier(ctx).GetContext(ctx, &a, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("auth not found").
				WithHintf("No credentials for user %s", userID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get credentials").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	query := `
	UPDATE auths SET token = :token, status = :status, updated_at = :updated_at
	WHERE user_id = :user_id`

	result, err := r.db.Querier(ctx).NamedExecContext(ctx, query, a)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update credentials").
			Mark(ierr.ErrDatabase)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("auth not found").
			WithHintf("No credentials for user %s", a.UserID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *authRepository) DeleteAuth(ctx context.Context, userID string) error {
	query := `DELETE FROM auths WHERE user_id = $1`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, userID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete credentials").
			Mark(ierr.ErrDatabase)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("auth not found").
			WithHintf("No credentials for user %s", userID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
