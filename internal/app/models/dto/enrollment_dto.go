package dto

import (
	"time"

	"github.com/sharecrm/share/internal/app/models"
)

// EnrollmentRequest selects classes for a term
type EnrollmentRequest struct {
	TermID        int64                `json:"termId" binding:"required,min=1" example:"2"`
	ClassIDs      []int64              `json:"classIds" binding:"required,min=1,dive,min=1" example:"8,9"`
	UseCredit     bool                 `json:"useCredit" example:"true"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CARD CASH BANK_TRANSFER" example:"CARD"`
}

// AdminEnrollmentRequest enrolls a customer on their behalf
type AdminEnrollmentRequest struct {
	CustomerID int64 `json:"customerId" binding:"required,min=1" example:"12"`
	EnrollmentRequest
}

// QuoteLine prices one class of an enrollment
type QuoteLine struct {
	ClassID              int64   `json:"classId" example:"8"`
	ClassName            string  `json:"className" example:"Gentle Yoga"`
	SessionIDs           []int64 `json:"sessionIds"`
	Sessions             int     `json:"sessions" example:"8"`
	PricePerSessionCents int64   `json:"pricePerSessionCents" example:"1200"`
	SubtotalCents        int64   `json:"subtotalCents" example:"9600"`
}

// EnrollmentQuote is the priced breakdown of an EnrollmentRequest
type EnrollmentQuote struct {
	TermID               int64       `json:"termId"`
	Lines                []QuoteLine `json:"lines"`
	TotalCents           int64       `json:"totalCents" example:"9600"`
	CreditAvailableCents int64       `json:"creditAvailableCents" example:"2500"`
	CreditAppliedCents   int64       `json:"creditAppliedCents" example:"2500"`
	AmountDueCents       int64       `json:"amountDueCents" example:"7100"`
}

// EnrollmentResult is returned after an enrollment is created
type EnrollmentResult struct {
	Enrollment *models.Enrollment `json:"enrollment"`
	Payment    *models.Payment    `json:"payment"`
	Quote      *EnrollmentQuote   `json:"quote"`
}

// CancelEnrollmentRequest cancels a whole enrollment
type CancelEnrollmentRequest struct {
	RefundAsCredit bool `json:"refundAsCredit" example:"true"`
}

// EnrollmentFilter narrows the admin enrollment list
type EnrollmentFilter struct {
	ListFilter
	TermID     int64
	CustomerID int64
}

// PaymentFilter narrows the admin payment list
type PaymentFilter struct {
	ListFilter
	Method string
	From   *time.Time
	To     *time.Time
}

// PaymentConfirmation reports the outcome of confirming a card payment
type PaymentConfirmation struct {
	Payment          *models.Payment         `json:"payment"`
	EnrollmentStatus models.EnrollmentStatus `json:"enrollmentStatus" example:"ACTIVE"`
	IntentStatus     string                  `json:"intentStatus" example:"succeeded"`
}

// CancellationRequest is a customer asking to give up a booking
type CancellationRequest struct {
	Reason string `json:"reason" binding:"max=1000" example:"Travelling that week"`
}

// ApproveCancellationRequest approves a cancellation, optionally overriding the credit
type ApproveCancellationRequest struct {
	CreditOverrideCents *int64 `json:"creditOverrideCents,omitempty" binding:"omitempty,gte=0"`
	Notes               string `json:"notes" binding:"max=1000"`
}

// RejectCancellationRequest rejects a cancellation
type RejectCancellationRequest struct {
	Notes string `json:"notes" binding:"max=1000" example:"Inside the notice period"`
}

// AttendanceRecordRequest marks one booking
type AttendanceRecordRequest struct {
	BookingID int64                   `json:"bookingId" binding:"required,min=1"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE" example:"PRESENT"`
}

// SaveAttendanceRequest marks several bookings of one session
type SaveAttendanceRequest struct {
	Records []AttendanceRecordRequest `json:"records" binding:"required,min=1,dive"`
}

// SubmitPAQRequest answers the screening questions
type SubmitPAQRequest struct {
	Answers map[string]bool `json:"answers" binding:"required"`
}

// ReviewPAQRequest approves or rejects a questionnaire
type ReviewPAQRequest struct {
	Approve *bool  `json:"approve" binding:"required" example:"true"`
	Notes   string `json:"notes" binding:"max=1000"`
}

// FileURLResponse is a short-lived link to a stored file
type FileURLResponse struct {
	ID          int64  `json:"id"`
	FileName    string `json:"fileName" example:"clearance.pdf"`
	ContentType string `json:"contentType" example:"application/pdf"`
	URL         string `json:"url"`
}

// MarkPaidRequest records a counter payment against a pending payment
type MarkPaidRequest struct {
	Method models.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH BANK_TRANSFER CARD" example:"CASH"`
}
