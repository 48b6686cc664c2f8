package models

import "time"

// Enrollment groups the bookings a customer bought for one term
type Enrollment struct {
	ID                 int64            `json:"id" db:"id" example:"40"`
	CustomerID         int64            `json:"customerId" db:"customer_id" example:"12"`
	TermID             int64            `json:"termId" db:"term_id" example:"2"`
	Status             EnrollmentStatus `json:"status" db:"status" example:"ACTIVE"`
	TotalCents         int64            `json:"totalCents" db:"total_cents" example:"12000"`
	CreditAppliedCents int64            `json:"creditAppliedCents" db:"credit_applied_cents" example:"2000"`
	CreatedBy          *int64           `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt          time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time        `json:"updatedAt" db:"updated_at"`

	CustomerName string     `json:"customerName,omitempty"`
	Bookings     []*Booking `json:"bookings,omitempty"`
	Payments     []*Payment `json:"payments,omitempty"`
}

// AmountDueCents is what remains after credit
func (e *Enrollment) AmountDueCents() int64 {
	return e.TotalCents - e.CreditAppliedCents
}

// Booking is a customer's seat in one session
type Booking struct {
	ID           int64         `json:"id" db:"id" example:"900"`
	EnrollmentID int64         `json:"enrollmentId" db:"enrollment_id"`
	CustomerID   int64         `json:"customerId" db:"customer_id"`
	ClassID      int64         `json:"classId" db:"class_id"`
	SessionID    int64         `json:"sessionId" db:"session_id"`
	Status       BookingStatus `json:"status" db:"status" example:"BOOKED"`
	RefundCents  int64         `json:"refundCents" db:"refund_cents" example:"0"`
	RefundedAt   *time.Time    `json:"refundedAt,omitempty" db:"refunded_at"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`

	ClassName        string           `json:"className,omitempty"`
	SessionDate      time.Time        `json:"sessionDate,omitempty"`
	StartTime        string           `json:"startTime,omitempty"`
	EnrollmentStatus EnrollmentStatus `json:"-"`
}

// Payment records money received (or owed) for an enrollment
type Payment struct {
	ID                int64         `json:"id" db:"id" example:"77"`
	EnrollmentID      int64         `json:"enrollmentId" db:"enrollment_id"`
	CustomerID        int64         `json:"customerId" db:"customer_id"`
	AmountCents       int64         `json:"amountCents" db:"amount_cents" example:"10000"`
	Method            PaymentMethod `json:"method" db:"method" example:"CARD"`
	Status            PaymentStatus `json:"status" db:"status" example:"PENDING"`
	ProviderReference *string       `json:"providerReference,omitempty" db:"provider_reference"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" db:"updated_at"`

	CustomerName string `json:"customerName,omitempty"`
	// ClientSecret is only populated right after intent creation and never stored
	ClientSecret string `json:"clientSecret,omitempty"`
}

// Cancellation is a customer's request to give up one booking
type Cancellation struct {
	ID                int64        `json:"id" db:"id" example:"15"`
	BookingID         int64        `json:"bookingId" db:"booking_id"`
	CustomerID        int64        `json:"customerId" db:"customer_id"`
	Reason            string       `json:"reason" db:"reason"`
	Status            ReviewStatus `json:"status" db:"status" example:"PENDING"`
	RefundCreditCents int64        `json:"refundCreditCents" db:"refund_credit_cents"`
	ReviewNotes       string       `json:"reviewNotes" db:"review_notes"`
	ReviewedBy        *int64       `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt        *time.Time   `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`

	CustomerName string    `json:"customerName,omitempty"`
	ClassName    string    `json:"className,omitempty"`
	SessionDate  time.Time `json:"sessionDate,omitempty"`
}

// Attendance is the mark an instructor gave a booking
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	BookingID int64            `json:"bookingId" db:"booking_id"`
	SessionID int64            `json:"sessionId" db:"session_id"`
	Status    AttendanceStatus `json:"status" db:"status" example:"PRESENT"`
	MarkedBy  *int64           `json:"markedBy,omitempty" db:"marked_by"`
	MarkedAt  time.Time        `json:"markedAt" db:"marked_at"`
}

// RosterEntry is one line of a session roster
type RosterEntry struct {
	BookingID    int64             `json:"bookingId"`
	CustomerID   int64             `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Phone        *string           `json:"phone,omitempty"`
	Attendance   *AttendanceStatus `json:"attendance,omitempty"`
}
