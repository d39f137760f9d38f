package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drivestack/drivestack/internal/domain/employee"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewEmployeeRepository(db postgres.IClient, logger *logger.Logger) employee.Repository {
	return &employeeRepository{db: db, logger: logger}
}

type employeeRow struct {
	ID                 string               `db:"id"`
	UserID             string               `db:"user_id"`
	Name               string               `db:"name"`
	Email              sql.NullString       `db:"email"`
	Role               types.UserRole       `db:"role"`
	EmployeeStatus     types.EmployeeStatus `db:"employee_status"`
	Permissions        []byte               `db:"permissions"`
	ContractsCompleted int                  `db:"contracts_completed"`
	RevenueGenerated   decimal.Decimal      `db:"revenue_generated"`
	EnvironmentID      string               `db:"environment_id"`
	TenantID           string               `db:"tenant_id"`
	Status             types.Status         `db:"status"`
	CreatedAt          time.Time            `db:"created_at"`
	UpdatedAt          time.Time            `db:"updated_at"`
	CreatedBy          string               `db:"created_by"`
	UpdatedBy          string               `db:"updated_by"`
}

func toEmployeeRow(e *employee.Employee) (*employeeRow, error) {
	permissions, err := json.Marshal(e.Permissions)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize employee permissions").
			Mark(ierr.ErrValidation)
	}

	return &employeeRow{
		ID:                 e.ID,
		UserID:             e.UserID,
		Name:               e.Name,
		Email:              toNullString(e.Email),
		Role:               e.Role,
		EmployeeStatus:     e.EmployeeStatus,
		Permissions:        permissions,
		ContractsCompleted: e.ContractsCompleted,
		RevenueGenerated:   e.RevenueGenerated,
		EnvironmentID:      e.EnvironmentID,
		TenantID:           e.TenantID,
		Status:             e.Status,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		CreatedBy:          e.CreatedBy,
		UpdatedBy:          e.UpdatedBy,
	}, nil
}

func fromEmployeeRow(row *employeeRow) (*employee.Employee, error) {
	var permissions map[string]bool
	if len(row.Permissions) > 0 {
		if err := json.Unmarshal(row.Permissions, &permissions); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to deserialize employee permissions").
				Mark(ierr.ErrDatabase)
		}
	}

	return &employee.Employee{
		ID:                 row.ID,
		UserID:             row.UserID,
		Name:               row.Name,
		Email:              row.Email.String,
		Role:               row.Role,
		EmployeeStatus:     row.EmployeeStatus,
		Permissions:        permissions,
		ContractsCompleted: row.ContractsCompleted,
		RevenueGenerated:   row.RevenueGenerated,
		EnvironmentID:      row.EnvironmentID,
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

func (r *employeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	row, err := toEmployeeRow(e)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO employees (
		id, user_id, name, email, role, employee_status, permissions,
		contracts_completed, revenue_generated, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :user_id, :name, :email, :role, :employee_status, :permissions,
		:contracts_completed, :revenue_generated, :environment_id,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create employee").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *employeeRepository) Get(ctx context.Context, id string) (*employee.Employee, error) {
	query := `SELECT * FROM employees WHERE id = $1 AND tenant_id = $2`

	var row employeeRow
	err := r.db.Querier(ctx).GetContext(ctx, &row, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("employee not found").
				WithHintf("Employee %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get employee").
			Mark(ierr.ErrDatabase)
	}
	return fromEmployeeRow(&row)
}

func (r *employeeRepository) List(ctx context.Context, filter *types.EmployeeFilter) ([]*employee.Employee, error) {
	query, args := buildEmployeeQuery("SELECT * FROM employees", ctx, filter, true)

	var rows []employeeRow
	if err := r.db.Querier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list employees").
			Mark(ierr.ErrDatabase)
	}

	employees := make([]*employee.Employee, 0, len(rows))
	for i := range rows {
		e, err := fromEmployeeRow(&rows[i])
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *employeeRepository) Count(ctx context.Context, filter *types.EmployeeFilter) (int, error) {
	query, args := buildEmployeeQuery("SELECT COUNT(*) FROM employees", ctx, filter, false)

	var count int
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count employees").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *employeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	row, err := toEmployeeRow(e)
	if err != nil {
		return err
	}

	query := `
	UPDATE employees SET
		name = :name,
		email = :email,
		role = :role,
		employee_status = :employee_status,
		permissions = :permissions,
		contracts_completed = :contracts_completed,
		revenue_generated = :revenue_generated,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.Querier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update employee").
			Mark(ierr.ErrDatabase)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("employee not found").
			WithHintf("Employee %s was not found", e.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// GetActiveByUserID resolves the active employee record linked to a user
// within the tenant in context. The permission evaluator treats a not-found
// result as the role-fallback branch, not a failure.
func (r *employeeRepository) GetActiveByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	query := `
	SELECT * FROM employees
	WHERE user_id = $1 AND tenant_id = $2 AND employee_status = $3
	LIMIT 1`

	var row employeeRow
	err := r.db.Querier(ctx).GetContext(
		ctx, &row, query,
		userID,
		types.GetTenantID(ctx),
		types.EmployeeStatusActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("employee not found").
				WithHintf("No active employee record for user %s", userID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get employee").
			Mark(ierr.ErrDatabase)
	}
	return fromEmployeeRow(&row)
}

func buildEmployeeQuery(base string, ctx context.Context, filter *types.EmployeeFilter, paginate bool) (string, []interface{}) {
	query := base + " WHERE tenant_id = $1"
	args := []interface{}{types.GetTenantID(ctx)}

	if filter != nil {
		if filter.Role != nil {
			args = append(args, *filter.Role)
			query += fmt.Sprintf(" AND role = $%d", len(args))
		}
		if filter.EmployeeStatus != nil {
			args = append(args, *filter.EmployeeStatus)
			query += fmt.Sprintf(" AND employee_status = $%d", len(args))
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
