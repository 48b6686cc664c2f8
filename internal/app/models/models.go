package models

// RoleType defines the kind of account behind a login
type RoleType string

const (
	RoleCustomer   RoleType = "CUSTOMER"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleStaff      RoleType = "STAFF"
)

// PAQStatus tracks a customer's pre-activity questionnaire
type PAQStatus string

const (
	PAQStatusNone     PAQStatus = "NONE"
	PAQStatusPending  PAQStatus = "PENDING"
	PAQStatusApproved PAQStatus = "APPROVED"
	PAQStatusRejected PAQStatus = "REJECTED"
)

// SessionStatus is the lifecycle of a single class occurrence
type SessionStatus string

const (
	SessionScheduled SessionStatus = "SCHEDULED"
	SessionCancelled SessionStatus = "CANCELLED"
	SessionCompleted SessionStatus = "COMPLETED"
)

// EnrollmentStatus is the lifecycle of an enrollment
type EnrollmentStatus string

const (
	EnrollmentPendingPayment EnrollmentStatus = "PENDING_PAYMENT"
	EnrollmentActive         EnrollmentStatus = "ACTIVE"
	EnrollmentCancelled      EnrollmentStatus = "CANCELLED"
)

// BookingStatus is the state of one customer's seat in one session
type BookingStatus string

const (
	BookingBooked    BookingStatus = "BOOKED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// PaymentMethod is how an enrollment was paid
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCredit       PaymentMethod = "CREDIT"
)

// PaymentStatus is the state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// ReviewStatus is shared by cancellations and PAQ forms
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// AttendanceStatus is what an instructor records against a booking
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// EnquiryStatus tracks public contact form submissions
type EnquiryStatus string

const (
	EnquiryOpen     EnquiryStatus = "OPEN"
	EnquiryResolved EnquiryStatus = "RESOLVED"
)

// CreditReason labels a credit ledger entry
type CreditReason string

const (
	CreditManualAdjustment   CreditReason = "MANUAL_ADJUSTMENT"
	CreditCancellationRefund CreditReason = "CANCELLATION_REFUND"
	CreditSessionCancelled   CreditReason = "SESSION_CANCELLED"
	CreditEnrollmentPayment  CreditReason = "ENROLLMENT_PAYMENT"
	CreditEnrollmentRefund   CreditReason = "ENROLLMENT_REFUND"
	CreditHeldRefund         CreditReason = "HELD_REFUND"
)
