package user

import (
	"time"

	"github.com/drivestack/drivestack/internal/types"
)

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`

	// Role is the claim-level role embedded into issued tokens. The
	// permission evaluator prefers the linked employee record and only falls
	// back to this claim when no active employee record resolves.
	Role types.UserRole `db:"role" json:"role"`

	types.BaseModel
}

func NewUser(email string, role types.UserRole, tenantID string) *User {
	return &User{
		ID:    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email: email,
		Role:  role,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedBy: types.DefaultUserID,
			UpdatedBy: types.DefaultUserID,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
	}
}
