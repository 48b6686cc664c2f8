package services

import (
	"context"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
)

// UserStore persists login accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	UpdateRole(ctx context.Context, userID, roleID int64) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email string) error
	CountByRole(ctx context.Context, roleID int64) (int64, error)
	ListStaff(ctx context.Context, filter dto.ListFilter) ([]*models.User, int64, error)
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetActiveToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// RoleStore persists roles and their permission codes
type RoleStore interface {
	List(ctx context.Context) ([]*models.Role, error)
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	GetPermissions(ctx context.Context, roleID int64) ([]string, error)
	Create(ctx context.Context, role *models.Role) (int64, error)
	Update(ctx context.Context, role *models.Role) error
	SetPermissions(ctx context.Context, roleID int64, permissions []string) error
	Delete(ctx context.Context, id int64) error
}

// CustomerStore persists customers
type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter dto.CustomerFilter) ([]*models.Customer, int64, error)
	All(ctx context.Context) ([]*models.Customer, error)
	SetBlocked(ctx context.Context, id int64, blocked bool, reason *string) error
	UpdatePAQStatus(ctx context.Context, id int64, status models.PAQStatus, expiresAt *time.Time) error
}

// CreditStore moves credit balances atomically
type CreditStore interface {
	Apply(ctx context.Context, change models.CreditChange) (*models.CreditTransaction, error)
	Balance(ctx context.Context, customerID int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64, limit uint64) ([]*models.CreditTransaction, error)
}

// PAQStore persists questionnaires
type PAQStore interface {
	Create(ctx context.Context, f *models.PAQForm) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.PAQForm, error)
	GetLatestByCustomer(ctx context.Context, customerID int64) (*models.PAQForm, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*models.PAQForm, int64, error)
	AttachCertificate(ctx context.Context, id, fileID int64) error
	Review(ctx context.Context, id int64, status models.ReviewStatus, notes string, reviewer int64, reviewedAt time.Time, expiresAt *time.Time) error
}

// FileStore persists file records
type FileStore interface {
	Create(ctx context.Context, file *models.File) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Delete(ctx context.Context, id int64) error
}

// VenueStore persists venues
type VenueStore interface {
	Create(ctx context.Context, v *models.Venue) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Venue, error)
	Update(ctx context.Context, v *models.Venue) error
	Delete(ctx context.Context, id int64) error
}

// InstructorStore persists instructors
type InstructorStore interface {
	Create(ctx context.Context, i *models.Instructor) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Instructor, error)
	Update(ctx context.Context, i *models.Instructor) error
	LinkUser(ctx context.Context, instructorID, userID int64) error
	Delete(ctx context.Context, id int64) error
}

// TermStore persists terms
type TermStore interface {
	Create(ctx context.Context, t *models.Term) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Term, error)
	List(ctx context.Context, openOn *time.Time) ([]*models.Term, error)
	Update(ctx context.Context, t *models.Term) error
	Delete(ctx context.Context, id int64) error
}

// ClassStore persists classes
type ClassStore interface {
	Create(ctx context.Context, c *models.Class) (int64, error)
	GetByID(ctx context.Context, id int64, today time.Time) (*models.Class, error)
	List(ctx context.Context, filter dto.ClassFilter) ([]*models.Class, error)
	LockForUpdate(ctx context.Context, ids []int64) ([]*models.Class, error)
	Update(ctx context.Context, c *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore persists sessions
type SessionStore interface {
	CreateBatch(ctx context.Context, classID int64, dates []time.Time) ([]*models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	List(ctx context.Context, filter dto.SessionFilter) ([]*models.Session, error)
	UpcomingByClass(ctx context.Context, classIDs []int64, today time.Time) (map[int64][]*models.Session, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.SessionStatus, notes *string) error
}

// EnrollmentStore persists enrollments
type EnrollmentStore interface {
	Create(ctx context.Context, e *models.Enrollment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	List(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.EnrollmentStatus) error
}

// BookingStore persists bookings
type BookingStore interface {
	CreateBatch(ctx context.Context, bookings []*models.Booking) error
	ActiveSessionIDs(ctx context.Context, customerID int64, sessionIDs []int64) ([]int64, error)
	BookedCounts(ctx context.Context, sessionIDs []int64) (map[int64]int, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Booking, error)
	Cancel(ctx context.Context, id int64) error
	CancelByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Booking, error)
	CancelBySession(ctx context.Context, sessionID int64) ([]*models.Booking, error)
	RecordRefund(ctx context.Context, id, cents int64, issued bool) error
	SettleRefunds(ctx context.Context, enrollmentID int64) ([]*models.Booking, error)
	RefundedCents(ctx context.Context, enrollmentID int64) (int64, error)
	Roster(ctx context.Context, sessionID int64) ([]*models.RosterEntry, error)
}

// PaymentStore persists payments
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Payment, error)
	List(ctx context.Context, filter dto.PaymentFilter) ([]*models.Payment, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus, method *models.PaymentMethod) error
	SumSucceeded(ctx context.Context, enrollmentID int64) (int64, error)
}

// CancellationStore persists cancellation requests
type CancellationStore interface {
	Create(ctx context.Context, x *models.Cancellation) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Cancellation, error)
	List(ctx context.Context, filter dto.ListFilter, customerID int64) ([]*models.Cancellation, int64, error)
	Review(ctx context.Context, id int64, status models.ReviewStatus, refundCents int64, notes string, reviewer int64, at time.Time) error
	SetRefund(ctx context.Context, id, refundCents int64) error
}

// AttendanceStore persists attendance marks
type AttendanceStore interface {
	Upsert(ctx context.Context, records []*models.Attendance) error
	ListBySession(ctx context.Context, sessionID int64) ([]*models.Attendance, error)
}

// EnquiryStore persists contact form submissions
type EnquiryStore interface {
	Create(ctx context.Context, e *models.Enquiry) (int64, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*models.Enquiry, int64, error)
	Resolve(ctx context.Context, id, userID int64, at time.Time) error
}

// ReportStore runs export queries
type ReportStore interface {
	EnrollmentRows(ctx context.Context, termID int64) ([]*models.EnrollmentReportRow, error)
	AttendanceRows(ctx context.Context, classID int64) ([]*models.AttendanceReportRow, error)
	PaymentRows(ctx context.Context, from, to *time.Time) ([]*models.PaymentReportRow, error)
}

// PermissionChecker answers staff permission questions
type PermissionChecker interface {
	RolePermissions(ctx context.Context, roleID int64) ([]string, error)
	HasPermission(ctx context.Context, userID int64, code string) (bool, error)
	InvalidateRole(ctx context.Context, roleID int64)
	ValidateInstructor(ctx context.Context, roleType models.RoleType, userID int64) (*models.Instructor, error)
}

// SessionBroadcaster pushes realtime updates to a session's watchers
type SessionBroadcaster interface {
	BroadcastToSession(sessionID int64, messageType string, payload interface{})
}
