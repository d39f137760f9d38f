package dto

import (
	"github.com/drivestack/drivestack/internal/domain/employee"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/drivestack/drivestack/internal/validator"
)

type CreateEmployeeRequest struct {
	UserID string `json:"user_id" binding:"required" validate:"required"`
	Name   string `json:"name" binding:"required" validate:"required"`
	Email  string `json:"email" binding:"omitempty,email" validate:"omitempty,email"`

	Role types.UserRole `json:"role" binding:"required" validate:"required"`

	// Permissions are per-employee overrides layered on top of the role
	Permissions map[string]bool `json:"permissions,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.Role.Validate() {
		return ierr.NewError("invalid role").
			WithHintf("Unknown role %s", r.Role).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Name           *string               `json:"name,omitempty"`
	Email          *string               `json:"email,omitempty" validate:"omitempty,email"`
	Role           *types.UserRole       `json:"role,omitempty"`
	EmployeeStatus *types.EmployeeStatus `json:"employee_status,omitempty"`
	Permissions    map[string]bool       `json:"permissions,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Role != nil && !r.Role.Validate() {
		return ierr.NewError("invalid role").
			WithHintf("Unknown role %s", *r.Role).
			Mark(ierr.ErrValidation)
	}
	if r.EmployeeStatus != nil && !r.EmployeeStatus.Validate() {
		return ierr.NewError("invalid employee status").
			WithHintf("Unknown employee status %s", *r.EmployeeStatus).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type EmployeeResponse struct {
	*employee.Employee
}

type ListEmployeesResponse struct {
	Items []*EmployeeResponse `json:"items"`
	Total int                 `json:"total"`
}
