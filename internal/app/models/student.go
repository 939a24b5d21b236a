package models

// Student defines the student entry model based on the 'students' table.
// At most one entry exists per profile whose role is STUDENT.
type Student struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	ProfileID int64  `json:"profileId" db:"profile_id" example:"5"`
	Goals     string `json:"goals" db:"goals" example:"Pass the final exam"`

	// Relations (populated when needed)
	Profile  *Profile `json:"profile,omitempty"`
	Username string   `json:"username,omitempty"` // Owning account's username, filled by list queries
}
