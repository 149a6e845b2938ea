package user

import "time"

type Role string

const (
	RoleDeveloper     Role = "developer"     // Vendor support - full access including unlock
	RoleAdministrator Role = "administrator" // Payroll admin - can freeze/unlock periods
	RoleUser          Role = "user"          // Data entry - no finalize authority
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanFinalize reports whether the role may freeze or unlock a payroll
// period, or finalize an arrear batch.
func (r Role) CanFinalize() bool {
	return r == RoleAdministrator || r == RoleDeveloper
}

func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleAdministrator, RoleUser:
		return true
	}
	return false
}
