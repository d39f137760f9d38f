package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drivestack/drivestack/internal/domain/contract"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

type contractRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewContractRepository(db postgres.IClient, logger *logger.Logger) contract.Repository {
	return &contractRepository{db: db, logger: logger}
}

// contractRow maps the contracts table. Extras is stored as jsonb.
type contractRow struct {
	ID                  string               `db:"id"`
	ContractNumber      string               `db:"contract_number"`
	CustomerID          string               `db:"customer_id"`
	VehicleID           string               `db:"vehicle_id"`
	CreatedByEmployeeID sql.NullString       `db:"created_by_employee_id"`
	StartDate           time.Time            `db:"start_date"`
	EndDate             time.Time            `db:"end_date"`
	ActualReturnDate    sql.NullTime         `db:"actual_return_date"`
	DailyRate           decimal.Decimal      `db:"daily_rate"`
	TotalDays           int                  `db:"total_days"`
	BaseAmount          decimal.Decimal      `db:"base_amount"`
	AdditionalAmount    decimal.Decimal      `db:"additional_amount"`
	DiscountAmount      decimal.Decimal      `db:"discount_amount"`
	TaxAmount           decimal.Decimal      `db:"tax_amount"`
	TotalAmount         decimal.Decimal      `db:"total_amount"`
	StartOdometer       decimal.Decimal      `db:"start_odometer"`
	EndOdometer         decimal.NullDecimal  `db:"end_odometer"`
	DailyKmLimit        decimal.Decimal      `db:"daily_km_limit"`
	KmBonusPerDay       decimal.Decimal      `db:"km_bonus_per_day"`
	TotalKmAllowed      decimal.Decimal      `db:"total_km_allowed"`
	OverageKm           decimal.Decimal      `db:"overage_km"`
	OverageCharge       decimal.Decimal      `db:"overage_charge"`
	ContractStatus      types.ContractStatus `db:"contract_status"`
	DepositAmount       decimal.Decimal      `db:"deposit_amount"`
	DepositReturned     bool                 `db:"deposit_returned"`
	CancellationReason  sql.NullString       `db:"cancellation_reason"`
	Notes               sql.NullString       `db:"notes"`
	Extras              []byte               `db:"extras"`
	Version             int                  `db:"version"`
	EnvironmentID       string               `db:"environment_id"`
	TenantID            string               `db:"tenant_id"`
	Status              types.Status         `db:"status"`
	CreatedAt           time.Time            `db:"created_at"`
	UpdatedAt           time.Time            `db:"updated_at"`
	CreatedBy           string               `db:"created_by"`
	UpdatedBy           string               `db:"updated_by"`
}

func toContractRow(c *contract.Contract) (*contractRow, error) {
	extras, err := json.Marshal(c.Extras)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize contract extras").
			Mark(ierr.ErrValidation)
	}

	row := &contractRow{
		ID:                  c.ID,
		ContractNumber:      c.ContractNumber,
		CustomerID:          c.CustomerID,
		VehicleID:           c.VehicleID,
		CreatedByEmployeeID: toNullString(c.CreatedByEmployeeID),
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		DailyRate:           c.DailyRate,
		TotalDays:           c.TotalDays,
		BaseAmount:          c.BaseAmount,
		AdditionalAmount:    c.AdditionalAmount,
		DiscountAmount:      c.DiscountAmount,
		TaxAmount:           c.TaxAmount,
		TotalAmount:         c.TotalAmount,
		StartOdometer:       c.StartOdometer,
		DailyKmLimit:        c.DailyKmLimit,
		KmBonusPerDay:       c.KmBonusPerDay,
		TotalKmAllowed:      c.TotalKmAllowed,
		OverageKm:           c.OverageKm,
		OverageCharge:       c.OverageCharge,
		ContractStatus:      c.ContractStatus,
		DepositAmount:       c.DepositAmount,
		DepositReturned:     c.DepositReturned,
		CancellationReason:  toNullString(c.CancellationReason),
		Notes:               toNullString(c.Notes),
		Extras:              extras,
		Version:             c.Version,
		EnvironmentID:       c.EnvironmentID,
		TenantID:            c.TenantID,
		Status:              c.Status,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
		CreatedBy:           c.CreatedBy,
		UpdatedBy:           c.UpdatedBy,
	}
	if c.ActualReturnDate != nil {
		row.ActualReturnDate = sql.NullTime{Time: *c.ActualReturnDate, Valid: true}
	}
	if c.EndOdometer != nil {
		row.EndOdometer = decimal.NullDecimal{Decimal: *c.EndOdometer, Valid: true}
	}
	return row, nil
}

func fromContractRow(row *contractRow) (*contract.Contract, error) {
	var extras map[string]string
	if len(row.Extras) > 0 {
		if err := json.Unmarshal(row.Extras, &extras); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to deserialize contract extras").
				Mark(ierr.ErrDatabase)
		}
	}

	c := &contract.Contract{
		ID:                  row.ID,
		ContractNumber:      row.ContractNumber,
		CustomerID:          row.CustomerID,
		VehicleID:           row.VehicleID,
		CreatedByEmployeeID: row.CreatedByEmployeeID.String,
		StartDate:           row.StartDate,
		EndDate:             row.EndDate,
		DailyRate:           row.DailyRate,
		TotalDays:           row.TotalDays,
		BaseAmount:          row.BaseAmount,
		AdditionalAmount:    row.AdditionalAmount,
		DiscountAmount:      row.DiscountAmount,
		TaxAmount:           row.TaxAmount,
		TotalAmount:         row.TotalAmount,
		StartOdometer:       row.StartOdometer,
		DailyKmLimit:        row.DailyKmLimit,
		KmBonusPerDay:       row.KmBonusPerDay,
		TotalKmAllowed:      row.TotalKmAllowed,
		OverageKm:           row.OverageKm,
		OverageCharge:       row.OverageCharge,
		ContractStatus:      row.ContractStatus,
		DepositAmount:       row.DepositAmount,
		DepositReturned:     row.DepositReturned,
		CancellationReason:  row.CancellationReason.String,
		Notes:               row.Notes.String,
		Extras:              extras,
		Version:             row.Version,
		EnvironmentID:       row.EnvironmentID,
		BaseModel: types.BaseModel{
			TenantID:  row.TenantID,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			CreatedBy: row.CreatedBy,
			UpdatedBy: row.UpdatedBy,
		},
	}
	if row.ActualReturnDate.Valid {
		t := row.ActualReturnDate.Time
		c.ActualReturnDate = &t
	}
	if row.EndOdometer.Valid {
		v := row.EndOdometer.Decimal
		c.EndOdometer = &v
	}
	return c, nil
}

func (r *contractRepository) Create(ctx context.Context, c *contract.Contract) error {
	row, err := toContractRow(c)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO contracts (
		id, contract_number, customer_id, vehicle_id, created_by_employee_id,
		start_date, end_date, actual_return_date,
		daily_rate, total_days, base_amount, additional_amount, discount_amount, tax_amount, total_amount,
		start_odometer, end_odometer, daily_km_limit, km_bonus_per_day, total_km_allowed,
		overage_km, overage_charge, contract_status, deposit_amount, deposit_returned,
		cancellation_reason, notes, extras, version, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :contract_number, :customer_id, :vehicle_id, :created_by_employee_id,
		:start_date, :end_date, :actual_return_date,
		:daily_rate, :total_days, :base_amount, :additional_amount, :discount_amount, :tax_amount, :total_amount,
		:start_odometer, :end_odometer, :daily_km_limit, :km_bonus_per_day, :total_km_allowed,
		:overage_km, :overage_charge, :contract_status, :deposit_amount, :deposit_returned,
		:cancellation_reason, :notes, :extras, :version, :environment_id,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create contract").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	query := `SELECT * FROM contracts WHERE id = $1 AND tenant_id = $2`

	var row contractRow
	err := r.db.Querier(ctx).GetContext(ctx, &row, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("contract not found").
				WithHintf("Contract %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get contract").
			Mark(ierr.ErrDatabase)
	}
	return fromContractRow(&row)
}

func (r *contractRepository) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	query, args := buildContractQuery("SELECT * FROM contracts", ctx, filter, true)

	var rows []contractRow
	if err := r.db.Querier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list contracts").
			Mark(ierr.ErrDatabase)
	}

	contracts := make([]*contract.Contract, 0, len(rows))
	for i := range rows {
		c, err := fromContractRow(&rows[i])
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

func (r *contractRepository) Count(ctx context.Context, filter *types.ContractFilter) (int, error) {
	query, args := buildContractQuery("SELECT COUNT(*) FROM contracts", ctx, filter, false)

	var count int
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count contracts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// Update writes the contract only when the stored version still matches,
// bumping the version on success. Zero rows affected on an existing contract
// means a concurrent lifecycle mutation won the race.
func (r *contractRepository) Update(ctx context.Context, c *contract.Contract) error {
	row, err := toContractRow(c)
	if err != nil {
		return err
	}

	query := `
	UPDATE contracts SET
		end_date = :end_date,
		actual_return_date = :actual_return_date,
		total_days = :total_days,
		base_amount = :base_amount,
		additional_amount = :additional_amount,
		discount_amount = :discount_amount,
		tax_amount = :tax_amount,
		total_amount = :total_amount,
		end_odometer = :end_odometer,
		overage_km = :overage_km,
		overage_charge = :overage_charge,
		contract_status = :contract_status,
		deposit_returned = :deposit_returned,
		cancellation_reason = :cancellation_reason,
		notes = :notes,
		extras = :extras,
		version = version + 1,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id AND version = :version`

	result, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update contract").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update contract").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, c.ID); getErr != nil {
			return getErr
		}
		return ierr.NewError("contract was modified concurrently").
			WithHint("Refetch the contract and retry the operation").
			WithReportableDetails(map[string]any{
				"contract_id":      c.ID,
				"expected_version": c.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	c.Version++
	return nil
}

func buildContractQuery(base string, ctx context.Context, filter *types.ContractFilter, paginate bool) (string, []interface{}) {
	query := base + " WHERE tenant_id = $1"
	args := []interface{}{types.GetTenantID(ctx)}

	if filter != nil {
		if filter.CustomerID != "" {
			args = append(args, filter.CustomerID)
			query += fmt.Sprintf(" AND customer_id = $%d", len(args))
		}
		if filter.VehicleID != "" {
			args = append(args, filter.VehicleID)
			query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
		}
		if filter.ContractStatus != nil {
			args = append(args, *filter.ContractStatus)
			query += fmt.Sprintf(" AND contract_status = $%d", len(args))
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

type scheduleChecker struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewScheduleChecker answers vehicle availability from the contracts table:
// a vehicle is free when no active contract overlaps the requested period.
func NewScheduleChecker(db postgres.IClient, logger *logger.Logger) vehicle.ScheduleChecker {
	return &scheduleChecker{db: db, logger: logger}
}

func (s *scheduleChecker) IsAvailable(ctx context.Context, vehicleID string, start, end time.Time, excludeContractID string) (bool, error) {
	query := `
	SELECT COUNT(*) FROM contracts
	WHERE tenant_id = $1
	  AND vehicle_id = $2
	  AND contract_status = $3
	  AND id != $4
	  AND start_date <= $5
	  AND end_date >= $6`

	var conflicts int
	err := s.db.Querier(ctx).GetContext(
		ctx, &conflicts, query,
		types.GetTenantID(ctx),
		vehicleID,
		types.ContractStatusActive,
		excludeContractID,
		end,
		start,
	)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check vehicle availability").
			Mark(ierr.ErrDatabase)
	}
	return conflicts == 0, nil
}
