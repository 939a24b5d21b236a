package models

import "time"

// User defines the account model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"jdoe"`                    // Unique login name
	Password  string    `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	IsStaff   bool      `json:"isStaff" db:"is_staff" example:"false"`                    // Staff/admin flag
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the account was last updated

	// Relation (populated when needed)
	Profile *Profile `json:"profile,omitempty"`
}
