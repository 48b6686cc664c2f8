package dto

import (
	"time"

	"github.com/sharecrm/share/internal/app/models"
)

// VenueRequest creates or updates a venue
type VenueRequest struct {
	Name     string `json:"name" binding:"required,max=200" example:"Glebe Community Hall"`
	Address  string `json:"address" binding:"max=500"`
	Suburb   string `json:"suburb" binding:"max=100"`
	Postcode string `json:"postcode" binding:"max=10"`
	Capacity int    `json:"capacity" binding:"gte=0" example:"30"`
	Notes    string `json:"notes" binding:"max=2000"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// InstructorRequest creates or updates an instructor
type InstructorRequest struct {
	FirstName      string `json:"firstName" binding:"required,max=100"`
	LastName       string `json:"lastName" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"max=50"`
	Qualifications string `json:"qualifications" binding:"max=2000"`
	IsActive       *bool  `json:"isActive,omitempty"`
}

// TermRequest creates or updates a term
type TermRequest struct {
	Name           string `json:"name" binding:"required,max=100" example:"Term 1 2026"`
	StartDate      string `json:"startDate" binding:"required,datetime=2006-01-02" example:"2026-02-02"`
	EndDate        string `json:"endDate" binding:"required,datetime=2006-01-02" example:"2026-04-10"`
	EnrollmentOpen bool   `json:"enrollmentOpen"`
}

// ClassRequest creates or updates a class
type ClassRequest struct {
	Name                 string `json:"name" binding:"required,max=200" example:"Gentle Yoga"`
	Description          string `json:"description" binding:"max=4000"`
	TermID               int64  `json:"termId" binding:"required,min=1"`
	VenueID              int64  `json:"venueId" binding:"required,min=1"`
	InstructorID         *int64 `json:"instructorId,omitempty" binding:"omitempty,min=1"`
	Weekday              *int   `json:"weekday" binding:"required,min=0,max=6" example:"2"`
	StartTime            string `json:"startTime" binding:"required,clock" example:"09:30"`
	EndTime              string `json:"endTime" binding:"required,clock" example:"10:30"`
	Capacity             int    `json:"capacity" binding:"required,min=1" example:"20"`
	PricePerSessionCents int64  `json:"pricePerSessionCents" binding:"gte=0" example:"1200"`
	IsSubsidised         bool   `json:"isSubsidised"`
	IsActive             *bool  `json:"isActive,omitempty"`
}

// ClassFilter narrows class listings
type ClassFilter struct {
	TermID       int64
	VenueID      int64
	InstructorID int64
	ActiveOnly   bool
	// Today anchors upcoming-session counts; zero means the database date
	Today time.Time
}

// GenerateSessionsRequest lists dates (YYYY-MM-DD) to leave out, e.g. public holidays
type GenerateSessionsRequest struct {
	SkipDates []string `json:"skipDates" binding:"omitempty,dive,datetime=2006-01-02" example:"2026-04-03"`
}

// GenerateSessionsResponse reports how many sessions were created
type GenerateSessionsResponse struct {
	Created  int               `json:"created" example:"10"`
	Sessions []*models.Session `json:"sessions"`
}

// UpdateSessionRequest changes a session's status or notes
type UpdateSessionRequest struct {
	Status models.SessionStatus `json:"status" binding:"required,oneof=SCHEDULED CANCELLED COMPLETED" example:"CANCELLED"`
	Notes  *string              `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// SessionFilter narrows session listings
type SessionFilter struct {
	ClassID      int64
	InstructorID int64
	From         *time.Time
	To           *time.Time
	Status       models.SessionStatus
}

// SessionUpdateResult reports side effects of a session change
type SessionUpdateResult struct {
	Session           *models.Session `json:"session"`
	BookingsCancelled int             `json:"bookingsCancelled"`
	CreditIssuedCents int64           `json:"creditIssuedCents"`
	CreditHeldCents   int64           `json:"creditHeldCents"`
}

// EnquiryRequest is the public contact form
type EnquiryRequest struct {
	Name    string `json:"name" binding:"required,max=200" example:"Pat"`
	Email   string `json:"email" binding:"required,email" example:"pat@example.org"`
	Phone   string `json:"phone" binding:"max=50"`
	Message string `json:"message" binding:"required,max=5000" example:"Do you run classes in Marrickville?"`
}
