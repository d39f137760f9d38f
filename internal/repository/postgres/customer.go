package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drivestack/drivestack/internal/domain/customer"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

type customerRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewCustomerRepository(db postgres.IClient, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

type customerRow struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Email             sql.NullString  `db:"email"`
	Phone             sql.NullString  `db:"phone"`
	LicenseNumber     sql.NullString  `db:"license_number"`
	TotalRentals      int             `db:"total_rentals"`
	LifetimeValue     decimal.Decimal `db:"lifetime_value"`
	ApplyTierDiscount bool            `db:"apply_tier_discount"`
	Blacklisted       bool            `db:"blacklisted"`
	Metadata          []byte          `db:"metadata"`
	EnvironmentID     string          `db:"environment_id"`
	TenantID          string          `db:"tenant_id"`
	Status            types.Status    `db:"status"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
	CreatedBy         string          `db:"created_by"`
	UpdatedBy         string          `db:"updated_by"`
}

func toCustomerRow(c *customer.Customer) (*customerRow, error) {
	metadata, err := json.Marshal(c.Metadata)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize customer metadata").
			Mark(ierr.ErrValidation)
	}

	return &customerRow{
		ID:                c.ID,
		Name:              c.Name,
		Email:             toNullString(c.Email),
		Phone:             toNullString(c.Phone),
		LicenseNumber:     toNullString(c.LicenseNumber),
		TotalRentals:      c.TotalRentals,
		LifetimeValue:     c.LifetimeValue,
		ApplyTierDiscount: c.ApplyTierDiscount,
		Blacklisted:       c.Blacklisted,
		Metadata:          metadata,
		EnvironmentID:     c.EnvironmentID,
		TenantID:          c.TenantID,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		CreatedBy:         c.CreatedBy,
		UpdatedBy:         c.UpdatedBy,
	}, nil
}

func fromCustomerRow(row *customerRow) (*customer.Customer, error) {
	var metadata map[string]string
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to deserialize customer metadata").
				Mark(ierr.ErrDatabase)
		}
	}

	return &customer.Customer{
		ID:                row.ID,
		Name:              row.Name,
		Email:             row.Email.String,
		Phone:             row.Phone.String,
		LicenseNumber:     row.LicenseNumber.String,
		TotalRentals:      row.TotalRentals,
		LifetimeValue:     row.LifetimeValue,
		ApplyTierDiscount: row.ApplyTierDiscount,
		Blacklisted:       row.Blacklisted,
		Metadata:          metadata,
		EnvironmentID:     row.EnvironmentID,
		BaseModel: types.BaseModel{
			TenantID:  row.TenantID,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			CreatedBy: row.CreatedBy,
			UpdatedBy: row.UpdatedBy,
		},
	}, nil
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	row, err := toCustomerRow(c)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO customers (
		id, name, email, phone, license_number, total_rentals, lifetime_value,
		apply_tier_discount, blacklisted, metadata, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :email, :phone, :license_number, :total_rentals, :lifetime_value,
		:apply_tier_discount, :blacklisted, :metadata, :environment_id,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `SELECT * FROM customers WHERE id = $1 AND tenant_id = $2`

	var row customerRow
	err := r.db.Querier(ctx).GetContext(ctx, &row, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("customer not found").
				WithHintf("Customer %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return fromCustomerRow(&row)
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	query, args := buildCustomerQuery("SELECT * FROM customers", ctx, filter, true)

	var rows []customerRow
	if err := r.db.Querier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}

	customers := make([]*customer.Customer, 0, len(rows))
	for i := range rows {
		c, err := fromCustomerRow(&rows[i])
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	query, args := buildCustomerQuery("SELECT COUNT(*) FROM customers", ctx, filter, false)

	var count int
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	row, err := toCustomerRow(c)
	if err != nil {
		return err
	}

	query := `
	UPDATE customers SET
		name = :name,
		email = :email,
		phone = :phone,
		license_number = :license_number,
		total_rentals = :total_rentals,
		lifetime_value = :lifetime_value,
		apply_tier_discount = :apply_tier_discount,
		blacklisted = :blacklisted,
		metadata = :metadata,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func buildCustomerQuery(base string, ctx context.Context, filter *types.CustomerFilter, paginate bool) (string, []interface{}) {
	query := base + " WHERE tenant_id = $1"
	args := []interface{}{types.GetTenantID(ctx)}

	if filter != nil {
		if filter.Email != "" {
			args = append(args, filter.Email)
			query += fmt.Sprintf(" AND email = $%d", len(args))
		}
		if filter.Blacklisted != nil {
			args = append(args, *filter.Blacklisted)
			query += fmt.Sprintf(" AND blacklisted = $%d", len(args))
		}
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
