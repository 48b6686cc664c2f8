package services

import (
	"context"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/db"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// Services defined in this package:
// - AuthService: sign-up, login, token rotation and the current user
// - CustomerService / CreditService: customer records, blocking and the credit ledger
// - VenueService, InstructorService, TermService: catalogue reference data
// - ClassService: classes, session generation and session cancellation
// - PAQService / FileService: health questionnaires and stored certificates
// - EnrollmentService / PaymentService: quoting, enrolling and paying
// - CancellationService: booking cancellation requests and their review
// - AttendanceService: the instructor portal
// - ReportService, RoleService, UserService, EnquiryService: administration

// Transactor runs fn inside a database transaction carried by ctx
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID   int64
	RoleType models.RoleType
	RoleID   *int64
}

// IsStaff reports whether the actor is a staff login
func (a Actor) IsStaff() bool {
	return a.RoleType == models.RoleStaff
}

// Settings are the enrollment rules read from configuration
type Settings struct {
	CancellationNotice time.Duration
	PAQValidity        time.Duration
	Location           *time.Location
	Currency           string
	MaxUploadBytes     int64
}

// DefaultSettings matches the shipped configuration
func DefaultSettings() Settings {
	return Settings{
		CancellationNotice: 24 * time.Hour,
		PAQValidity:        365 * 24 * time.Hour,
		Location:           time.UTC,
		Currency:           "aud",
		MaxUploadBytes:     10 << 20,
	}
}

// Today is the calendar date of now in the organisation's timezone
func (s Settings) Today(now time.Time) time.Time {
	return helpers.DateOnly(now, s.Location)
}

func ptr[T any](v T) *T {
	return &v
}
