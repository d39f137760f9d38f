package types

// CustomerFilter represents filters for listing customers
type CustomerFilter struct {
	QueryFilter

	Email       string `json:"email,omitempty" form:"email"`
	Blacklisted *bool  `json:"blacklisted,omitempty" form:"blacklisted"`
}
