package service

import (
	"context"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/domain/employee"
	"github.com/drivestack/drivestack/internal/types"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter *types.EmployeeFilter) (*dto.ListEmployeesResponse, error)
	UpdateEmployee(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
}

type employeeService struct {
	ServiceParams
}

func NewEmployeeService(params ServiceParams) EmployeeService {
	return &employeeService{ServiceParams: params}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &employee.Employee{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EMPLOYEE),
		UserID:         req.UserID,
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.Role,
		EmployeeStatus: types.EmployeeStatusActive,
		Permissions:    req.Permissions,
		EnvironmentID:  types.GetEnvironmentID(ctx),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.EmployeeRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.Logger.Infow("employee created", "employee_id", e.ID, "user_id", e.UserID, "role", e.Role)
	return &dto.EmployeeResponse{Employee: e}, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := s.EmployeeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EmployeeResponse{Employee: e}, nil
}

func (s *employeeService) ListEmployees(ctx context.Context, filter *types.EmployeeFilter) (*dto.ListEmployeesResponse, error) {
	if filter == nil {
		filter = &types.EmployeeFilter{QueryFilter: types.DefaultQueryFilter}
	}

	employees, err := s.EmployeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.EmployeeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, &dto.EmployeeResponse{Employee: e})
	}
	return &dto.ListEmployeesResponse{Items: items, Total: total}, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.EmployeeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Role != nil {
		e.Role = *req.Role
	}
	if req.EmployeeStatus != nil {
		e.EmployeeStatus = *req.EmployeeStatus
	}
	if req.Permissions != nil {
		e.Permissions = req.Permissions
	}
	e.UpdatedBy = types.GetUserID(ctx)

	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.EmployeeRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	return &dto.EmployeeResponse{Employee: e}, nil
}
