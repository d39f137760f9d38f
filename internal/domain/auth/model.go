package auth

import (
	"time"

	"github.com/drivestack/drivestack/internal/types"
)

type Auth struct {
	UserID    string       `db:"user_id" json:"user_id"` // unique identifier for this table
	Token     string       `db:"token" json:"token"`     // hashed password
	Status    types.Status `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// Claims are the verified fields extracted from an authentication token.
// Every actor is bound to exactly one tenant.
type Claims struct {
	UserID   string
	TenantID string
	Role     types.UserRole
}

func NewAuth(userID string, token string) *Auth {
	return &Auth{
		UserID:    userID,
		Token:     token,
		Status:    types.StatusPublished,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}
