package models

import "time"

// Class is a weekly program that runs through a term at one venue
type Class struct {
	ID                   int64     `json:"id" db:"id" example:"8"`
	Name                 string    `json:"name" db:"name" example:"Gentle Yoga"`
	Description          string    `json:"description" db:"description"`
	TermID               int64     `json:"termId" db:"term_id" example:"2"`
	VenueID              int64     `json:"venueId" db:"venue_id" example:"3"`
	InstructorID         *int64    `json:"instructorId,omitempty" db:"instructor_id" example:"5"`
	Weekday              int       `json:"weekday" db:"weekday" example:"2"` // 0 = Sunday
	StartTime            string    `json:"startTime" db:"start_time" example:"09:30"`
	EndTime              string    `json:"endTime" db:"end_time" example:"10:30"`
	Capacity             int       `json:"capacity" db:"capacity" example:"20"`
	PricePerSessionCents int64     `json:"pricePerSessionCents" db:"price_per_session_cents" example:"1200"`
	IsSubsidised         bool      `json:"isSubsidised" db:"is_subsidised"`
	IsActive             bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`

	VenueName        string `json:"venueName,omitempty"`
	InstructorName   string `json:"instructorName,omitempty"`
	UpcomingSessions int    `json:"upcomingSessions"`
	SeatsRemaining   int    `json:"seatsRemaining"`
}

// RefundPerSession is the credit owed when one booked session of the class is cancelled
func (c *Class) RefundPerSession() int64 {
	if c.IsSubsidised {
		return 0
	}
	return c.PricePerSessionCents
}

// Session is one dated occurrence of a class
type Session struct {
	ID          int64         `json:"id" db:"id" example:"101"`
	ClassID     int64         `json:"classId" db:"class_id" example:"8"`
	SessionDate time.Time     `json:"sessionDate" db:"session_date" example:"2026-02-03T00:00:00Z"`
	Status      SessionStatus `json:"status" db:"status" example:"SCHEDULED"`
	Notes       string        `json:"notes" db:"notes"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	ClassName   string `json:"className,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	BookedCount int    `json:"bookedCount"`
}
