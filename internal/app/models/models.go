package models

// Role defines the profile role type
type Role string

const (
	RoleUnset   Role = "UNSET"
	RoleAdmin   Role = "ADMIN"
	RoleTutor   Role = "TUTOR"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUnset, RoleAdmin, RoleTutor, RoleStudent:
		return true
	}
	return false
}
