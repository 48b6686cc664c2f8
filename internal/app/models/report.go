package models

import "time"

// EnrollmentReportRow is one booked class of an enrollment
type EnrollmentReportRow struct {
	EnrollmentID  int64
	CustomerName  string
	CustomerEmail string
	ClassName     string
	Sessions      int
	Status        EnrollmentStatus
	TotalCents    int64
	CreditCents   int64
	CreatedAt     time.Time
}

// AttendanceReportRow is one booking of a session with its attendance mark
type AttendanceReportRow struct {
	SessionDate  time.Time
	ClassName    string
	CustomerName string
	Status       *AttendanceStatus
}

// PaymentReportRow is one payment with its customer
type PaymentReportRow struct {
	PaymentID         int64
	EnrollmentID      int64
	CustomerName      string
	Method            PaymentMethod
	Status            PaymentStatus
	AmountCents       int64
	ProviderReference *string
	CreatedAt         time.Time
}
