package models

// Profile is the role-bearing record attached one-to-one to a user
// account. It is created together with the account; once the role is
// TUTOR or STUDENT it never changes again unless the profile is ADMIN.
type Profile struct {
	ID     int64 `json:"id" db:"id" example:"1"`
	UserID int64 `json:"userId" db:"user_id" example:"5"`
	Role   Role  `json:"role" db:"role" example:"STUDENT"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}

// CanAssumeRole reports whether the profile may take on the given role.
// Admins may re-register under a different role; anyone else is locked
// to their first choice.
func (p *Profile) CanAssumeRole(role Role) bool {
	if p.Role == RoleAdmin {
		return true
	}
	return p.Role == RoleUnset || p.Role == role
}
