package types

// LoyaltyTier identifies a customer loyalty tier. Tiers are derived from the
// completed-rental count on every read and never persisted, so a customer
// advances automatically as rentals complete.
type LoyaltyTier string

const (
	LoyaltyTierNew      LoyaltyTier = "NEW"
	LoyaltyTierBronze   LoyaltyTier = "BRONZE"
	LoyaltyTierSilver   LoyaltyTier = "SILVER"
	LoyaltyTierGold     LoyaltyTier = "GOLD"
	LoyaltyTierPlatinum LoyaltyTier = "PLATINUM"

	// LoyaltyTierNone is reported when no tier applies, e.g. an overage
	// calculation that produced no overage.
	LoyaltyTierNone LoyaltyTier = ""
)
