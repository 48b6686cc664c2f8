package models

import "time"

// Instructor runs classes; UserID links the instructor portal login
type Instructor struct {
	ID             int64     `json:"id" db:"id" example:"5"`
	UserID         *int64    `json:"userId,omitempty" db:"user_id"`
	FirstName      string    `json:"firstName" db:"first_name" example:"Sam"`
	LastName       string    `json:"lastName" db:"last_name" example:"Lee"`
	Email          string    `json:"email" db:"email" example:"sam@share.org.au"`
	Phone          string    `json:"phone" db:"phone"`
	Qualifications string    `json:"qualifications" db:"qualifications" example:"Cert IV Fitness"`
	IsActive       bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name
func (i *Instructor) FullName() string {
	return i.FirstName + " " + i.LastName
}
