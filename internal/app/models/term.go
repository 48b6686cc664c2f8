package models

import "time"

// Term is an enrollment period, e.g. "Term 1 2026"
type Term struct {
	ID             int64     `json:"id" db:"id" example:"2"`
	Name           string    `json:"name" db:"name" example:"Term 1 2026"`
	StartDate      time.Time `json:"startDate" db:"start_date" example:"2026-02-02T00:00:00Z"`
	EndDate        time.Time `json:"endDate" db:"end_date" example:"2026-04-10T00:00:00Z"`
	EnrollmentOpen bool      `json:"enrollmentOpen" db:"enrollment_open" example:"true"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
