package models

import "time"

// Venue is a place where classes run
type Venue struct {
	ID        int64     `json:"id" db:"id" example:"3"`
	Name      string    `json:"name" db:"name" example:"Glebe Community Hall"`
	Address   string    `json:"address" db:"address" example:"160 St Johns Rd"`
	Suburb    string    `json:"suburb" db:"suburb" example:"Glebe"`
	Postcode  string    `json:"postcode" db:"postcode" example:"2037"`
	Capacity  int       `json:"capacity" db:"capacity" example:"30"`
	Notes     string    `json:"notes" db:"notes"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
