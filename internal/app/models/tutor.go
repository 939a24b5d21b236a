package models

// Tutor defines the tutor entry model based on the 'tutors' table.
// At most one entry exists per profile whose role is TUTOR.
type Tutor struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	ProfileID  int64  `json:"profileId" db:"profile_id" example:"5"`
	Bio        string `json:"bio" db:"bio" example:"Ten years teaching calculus"`
	HourlyRate string `json:"hourlyRate" db:"hourly_rate" example:"45.00"` // Non-negative decimal, 2 fraction digits
	Subject    string `json:"subject" db:"subject" example:"Mathematics"`
	Experience int    `json:"experience" db:"experience" example:"10"` // Years of experience

	// Relations (populated when needed)
	Profile  *Profile `json:"profile,omitempty"`
	Username string   `json:"username,omitempty"` // Owning account's username, filled by list queries
}
