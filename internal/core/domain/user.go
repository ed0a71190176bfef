package domain

import "time"

const (
	RoleStandard      = "standard"
	RoleProfessional  = "professional"
	RoleAdministrator = "administrator"
)

// ValidRole reports whether role is one of the known permission tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleStandard, RoleProfessional, RoleAdministrator:
		return true
	}
	return false
}

// User models an account holder. The credential hash and lockout counters are
// never serialized to API responses.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	CredentialHash      string     `json:"-"`
	Role                string     `json:"role"`
	FailedLoginAttempts int        `json:"-"`
	LockoutUntil        *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
