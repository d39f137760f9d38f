package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivestack/drivestack/internal/domain/vehicle"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
)

type vehicleRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewVehicleRepository(db postgres.IClient, logger *logger.Logger) vehicle.Repository {
	return &vehicleRepository{db: db, logger: logger}
}

func (r *vehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
	INSERT INTO vehicles (
		id, plate_number, make, model, year, mileage, daily_rate, vehicle_status,
		environment_id, tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :plate_number, :make, :model, :year, :mileage, :daily_rate, :vehicle_status,
		:environment_id, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, v); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create vehicle").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *vehicleRepository) Get(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE id = $1 AND tenant_id = $2`

	var v vehicle.Vehicle
	err := r.db.Querier(ctx).GetContext(ctx, &v, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("vehicle not found").
				WithHintf("Vehicle %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get vehicle").
			Mark(ierr.ErrDatabase)
	}
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter *types.VehicleFilter) ([]*vehicle.Vehicle, error) {
	query, args := buildVehicleQuery("SELECT * FROM vehicles", ctx, filter, true)

	var vehicles []*vehicle.Vehicle
	if err := r.db.Querier(ctx).SelectContext(ctx, &vehicles, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list vehicles").
			Mark(ierr.ErrDatabase)
	}
	return vehicles, nil
}

func (r *vehicleRepository) Count(ctx context.Context, filter *types.VehicleFilter) (int, error) {
	query, args := buildVehicleQuery("SELECT COUNT(*) FROM vehicles", ctx, filter, false)

	var count int
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count vehicles").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
	UPDATE vehicles SET
		plate_number = :plate_number,
		make = :make,
		model = :model,
		year = :year,
		mileage = :mileage,
		daily_rate = :daily_rate,
		vehicle_status = :vehicle_status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.Querier(ctx).NamedExecContext(ctx, query, v)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update vehicle").
			Mark(ierr.ErrDatabase)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("vehicle not found").
			WithHintf("Vehicle %s was not found", v.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func buildVehicleQuery(base string, ctx context.Context, filter *types.VehicleFilter, paginate bool) (string, []interface{}) {
	query := base + " WHERE tenant_id = $1"
	args := []interface{}{types.GetTenantID(ctx)}

	if filter != nil && filter.VehicleStatus != nil {
		args = append(args, *filter.VehicleStatus)
		query += fmt.Sprintf(" AND vehicle_status = $%d", len(args))
	}

	if paginate {
		query += " ORDER BY created_at DESC"
		if filter != nil && !filter.IsUnlimited() {
			args = append(args, filter.GetLimit())
			query += fmt.Sprintf(" LIMIT $%d", len(args))
			args = append(args, filter.GetOffset())
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	return query, args
}
