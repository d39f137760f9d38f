package tenant

import (
	"time"

	"github.com/drivestack/drivestack/internal/types"
	"github.com/shopspring/decimal"
)

// Tenant represents a rental company on the platform
type Tenant struct {
	ID        string       `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Status    types.Status `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`

	RentalPolicy RentalPolicy `db:"rental_policy" json:"rental_policy"`
}

// RentalPolicy carries per-tenant rental policy overrides. A zero or
// out-of-bounds daily km limit falls back to the platform default; that is a
// tenant misconfiguration recovered locally, never a user-facing error.
type RentalPolicy struct {
	DailyKmLimit  decimal.Decimal `db:"daily_km_limit" json:"daily_km_limit"`
	DepositAmount decimal.Decimal `db:"deposit_amount" json:"deposit_amount"`
	TaxPercent    decimal.Decimal `db:"tax_percent" json:"tax_percent"`
}
