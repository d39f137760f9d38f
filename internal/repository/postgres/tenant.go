package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/drivestack/drivestack/internal/domain/tenant"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

type tenantRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewTenantRepository(db postgres.IClient, logger *logger.Logger) tenant.Repository {
	return &tenantRepository{db: db, logger: logger}
}

// tenantRow flattens the rental policy into columns
type tenantRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Status        types.Status    `db:"status"`
	DailyKmLimit  decimal.Decimal `db:"daily_km_limit"`
	DepositAmount decimal.Decimal `db:"deposit_amount"`
	TaxPercent    decimal.Decimal `db:"tax_percent"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func toTenantRow(t *tenant.Tenant) *tenantRow {
	return &tenantRow{
		ID:            t.ID,
		Name:          t.Name,
		Status:        t.Status,
		DailyKmLimit:  t.RentalPolicy.DailyKmLimit,
		DepositAmount: t.RentalPolicy.DepositAmount,
		TaxPercent:    t.RentalPolicy.TaxPercent,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func fromTenantRow(row *tenantRow) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        row.ID,
		Name:      row.Name,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		RentalPolicy: tenant.RentalPolicy{
			DailyKmLimit:  row.DailyKmLimit,
			DepositAmount: row.DepositAmount,
			TaxPercent:    row.TaxPercent,
		},
	}
}

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `
	INSERT INTO tenants (id, name, status, daily_km_limit, deposit_amount, tax_percent, created_at, updated_at)
	VALUES (:id, :name, :status, :daily_km_limit, :deposit_amount, :tax_percent, :created_at, :updated_at)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, toTenantRow(t)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create tenant").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	query := `SELECT * FROM tenants WHERE id = $1`

	var row tenantRow
	err := r.db.Querier(ctx).GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("tenant not found").
				WithHintf("Tenant %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get tenant").
			Mark(ierr.ErrDatabase)
	}
	return fromTenantRow(&row), nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT * FROM tenants ORDER BY created_at DESC`

	var rows []tenantRow
	if err := r.db.Querier(ctx).SelectContext(ctx, &rows, query); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tenants").
			Mark(ierr.ErrDatabase)
	}

	tenants := make([]*tenant.Tenant, 0, len(rows))
	for i := range rows {
		tenants = append(tenants, fromTenantRow(&rows[i]))
	}
	return tenants, nil
}

func (r *tenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	query := `
	UPDATE tenants SET
		name = :name,
		status = :status,
		daily_km_limit = :daily_km_limit,
		deposit_amount = :deposit_amount,
		tax_percent = :tax_percent,
		updated_at = :updated_at
	WHERE id = :id`

	result, err := r.db.Querier(ctx).NamedExecContext(ctx, query, toTenantRow(t))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update tenant").
			Mark(ierr.ErrDatabase)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("tenant not found").
			WithHintf("Tenant %s was not found", t.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
