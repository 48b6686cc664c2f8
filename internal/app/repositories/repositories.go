package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/db"
)

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

// baseRepository carries the pool and a $-placeholder statement builder
type baseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func newBaseRepository(pool *pgxpool.Pool) baseRepository {
	return baseRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// conn returns the transaction in ctx, or the pool
func (b baseRepository) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, b.db)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	RoleRepository         *RoleRepository
	CustomerRepository     *CustomerRepository
	CreditRepository       *CreditRepository
	PAQRepository          *PAQRepository
	FileRepository         *FileRepository
	VenueRepository        *VenueRepository
	InstructorRepository   *InstructorRepository
	TermRepository         *TermRepository
	ClassRepository        *ClassRepository
	SessionRepository      *SessionRepository
	EnrollmentRepository   *EnrollmentRepository
	BookingRepository      *BookingRepository
	PaymentRepository      *PaymentRepository
	CancellationRepository *CancellationRepository
	AttendanceRepository   *AttendanceRepository
	EnquiryRepository      *EnquiryRepository
	ReportRepository       *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(pool),
		TokenRepository:        NewTokenRepository(pool),
		RoleRepository:         NewRoleRepository(pool),
		CustomerRepository:     NewCustomerRepository(pool),
		CreditRepository:       NewCreditRepository(pool),
		PAQRepository:          NewPAQRepository(pool),
		FileRepository:         NewFileRepository(pool),
		VenueRepository:        NewVenueRepository(pool),
		InstructorRepository:   NewInstructorRepository(pool),
		TermRepository:         NewTermRepository(pool),
		ClassRepository:        NewClassRepository(pool),
		SessionRepository:      NewSessionRepository(pool),
		EnrollmentRepository:   NewEnrollmentRepository(pool),
		BookingRepository:      NewBookingRepository(pool),
		PaymentRepository:      NewPaymentRepository(pool),
		CancellationRepository: NewCancellationRepository(pool),
		AttendanceRepository:   NewAttendanceRepository(pool),
		EnquiryRepository:      NewEnquiryRepository(pool),
		ReportRepository:       NewReportRepository(pool),
	}
}

// searchPattern wraps a search term for ILIKE
func searchPattern(s string) string {
	return "%" + s + "%"
}
