package dto

import (
	"github.com/drivestack/drivestack/internal/types"
	"github.com/drivestack/drivestack/internal/validator"
)

type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email" validate:"required,email"`
	Password    string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	CompanyName string `json:"company_name" binding:"omitempty" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
}

type AuthResponse struct {
	Token    string         `json:"token"`
	UserID   string         `json:"user_id"`
	TenantID string         `json:"tenant_id"`
	Role     types.UserRole `json:"role"`
}

func (r *SignUpRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}
