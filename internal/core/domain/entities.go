package domain

// EmployeeStatus is the employment state of an employee record
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Valid reports whether s is one of the known statuses
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

// Salary bounds enforced on every write
const (
	MinSalary = 0
	MaxSalary = 9999999.99
)

// EmployeeFields are the editable attributes of an employee after
// normalization and validation. Create and update both replace all of them.
type EmployeeFields struct {
	Name     string
	Email    string
	Position string
	Salary   float64
	Status   EmployeeStatus
}
