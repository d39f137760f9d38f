package types

// EmployeeStatus tracks whether an employee is still with the company.
// Terminated employees keep their historical records but never resolve
// during permission evaluation.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

func (s EmployeeStatus) Validate() bool {
	return s == EmployeeStatusActive || s == EmployeeStatusTerminated
}

// EmployeeFilter represents filters for listing employees
type EmployeeFilter struct {
	QueryFilter

	Role           *UserRole       `json:"role,omitempty" form:"role"`
	EmployeeStatus *EmployeeStatus `json:"employee_status,omitempty" form:"employee_status"`
}
