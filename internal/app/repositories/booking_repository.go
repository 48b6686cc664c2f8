package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/dberrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// BookingRepository handles seats in sessions
type BookingRepository struct {
	baseRepository
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{baseRepository: newBaseRepository(db)}
}

func (r *BookingRepository) selectBookings() squirrel.SelectBuilder {
	return r.sb.Select("b.id", "b.enrollment_id", "b.customer_id", "b.class_id", "b.session_id", "b.status",
		"b.refund_cents", "b.refunded_at", "b.created_at", "b.updated_at",
		"cl.name", "s.session_date", "cl.start_time", "e.status").
		From("bookings b").
		Join("sessions s ON s.id = b.session_id").
		Join("classes cl ON cl.id = b.class_id").
		Join("enrollments e ON e.id = b.enrollment_id")
}

func scanBooking(row scanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.ID, &b.EnrollmentID, &b.CustomerID, &b.ClassID, &b.SessionID, &b.Status,
		&b.RefundCents, &b.RefundedAt, &b.CreatedAt, &b.UpdatedAt,
		&b.ClassName, &b.SessionDate, &b.StartTime, &b.EnrollmentStatus)
	return b, err
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Booking, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing bookings")
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CreateBatch inserts BOOKED rows; an existing active seat is ErrAlreadyBooked
func (r *BookingRepository) CreateBatch(ctx context.Context, bookings []*models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	insert := r.sb.Insert("bookings").Columns("enrollment_id", "customer_id", "class_id", "session_id", "status")
	for _, b := range bookings {
		insert = insert.Values(b.EnrollmentID, b.CustomerID, b.ClassID, b.SessionID, models.BookingBooked)
	}
	sql, args, err := insert.Suffix("RETURNING id, created_at").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create bookings query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating bookings")
		return fmt.Errorf("error creating bookings: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&bookings[i].ID, &bookings[i].CreatedAt); err != nil {
			return fmt.Errorf("error scanning created booking: %w", err)
		}
		bookings[i].Status = models.BookingBooked
		bookings[i].UpdatedAt = bookings[i].CreatedAt
		i++
	}
	if err := rows.Err(); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "bookings_active_session_customer_key") {
			return apperrors.ErrAlreadyBooked
		}
		logger.Error().Err(err).Msg("Error creating bookings")
		return fmt.Errorf("error creating bookings: %w", err)
	}
	return nil
}

// ActiveSessionIDs returns which of sessionIDs the customer already holds a seat in
func (r *BookingRepository) ActiveSessionIDs(ctx context.Context, customerID int64, sessionIDs []int64) ([]int64, error) {
	sql, args, err := r.sb.Select("session_id").From("bookings").
		Where(squirrel.Eq{"customer_id": customerID, "session_id": sessionIDs, "status": models.BookingBooked}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active bookings query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error checking active bookings: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("error scanning active bookings: %w", err)
	}
	return ids, nil
}

// BookedCounts returns the number of active seats per session
func (r *BookingRepository) BookedCounts(ctx context.Context, sessionIDs []int64) (map[int64]int, error) {
	sql, args, err := r.sb.Select("session_id", "COUNT(*)").From("bookings").
		Where(squirrel.Eq{"session_id": sessionIDs, "status": models.BookingBooked}).
		GroupBy("session_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build booked counts query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting bookings")
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int, len(sessionIDs))
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("error scanning booked count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// GetByID retrieves a booking with its class and session
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	sql, args, err := r.selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get booking query: %w", err)
	}
	b, err := scanBooking(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("error retrieving booking: %w", err)
	}
	return b, nil
}

// ListByEnrollment returns an enrollment's bookings in date order
func (r *BookingRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Booking, error) {
	sql, args, err := r.selectBookings().Where(squirrel.Eq{"b.enrollment_id": enrollmentID}).
		OrderBy("s.session_date", "cl.start_time").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment bookings query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

// Cancel marks one BOOKED booking cancelled
func (r *BookingRepository) Cancel(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("bookings").
		Set("status", models.BookingCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": models.BookingBooked}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cancel booking query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookingID", id).Msg("Error cancelling booking")
		return fmt.Errorf("error cancelling booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking is not active", apperrors.ErrInvalidStatus)
	}
	return nil
}

func (r *BookingRepository) cancelWhere(ctx context.Context, where squirrel.Eq) ([]*models.Booking, error) {
	where["status"] = models.BookingBooked
	sql, args, err := r.sb.Update("bookings").
		Set("status", models.BookingCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Suffix("RETURNING id, enrollment_id, customer_id, class_id, session_id, " +
			"(SELECT e.status FROM enrollments e WHERE e.id = bookings.enrollment_id)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cancel bookings query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error cancelling bookings")
		return nil, fmt.Errorf("error cancelling bookings: %w", err)
	}
	defer rows.Close()

	cancelled := []*models.Booking{}
	for rows.Next() {
		b := &models.Booking{Status: models.BookingCancelled}
		if err := rows.Scan(&b.ID, &b.EnrollmentID, &b.CustomerID, &b.ClassID, &b.SessionID, &b.EnrollmentStatus); err != nil {
			return nil, fmt.Errorf("error scanning cancelled booking: %w", err)
		}
		cancelled = append(cancelled, b)
	}
	return cancelled, rows.Err()
}

// CancelByEnrollment cancels every active booking of an enrollment
func (r *BookingRepository) CancelByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Booking, error) {
	return r.cancelWhere(ctx, squirrel.Eq{"enrollment_id": enrollmentID})
}

// CancelBySession cancels every active booking of a session
func (r *BookingRepository) CancelBySession(ctx context.Context, sessionID int64) ([]*models.Booking, error) {
	return r.cancelWhere(ctx, squirrel.Eq{"session_id": sessionID})
}

// RecordRefund stores the credit owed for a cancelled booking. With issued
// set the credit is marked as already paid out.
func (r *BookingRepository) RecordRefund(ctx context.Context, id, cents int64, issued bool) error {
	update := r.sb.Update("bookings").
		Set("refund_cents", cents).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": models.BookingCancelled})
	if issued {
		update = update.Set("refunded_at", squirrel.Expr("NOW()"))
	}
	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build record refund query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookingID", id).Msg("Error recording booking refund")
		return fmt.Errorf("error recording booking refund: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking is not cancelled", apperrors.ErrInvalidStatus)
	}
	return nil
}

// SettleRefunds marks the held refunds of an enrollment as paid out and
// returns the bookings whose credit is now due
func (r *BookingRepository) SettleRefunds(ctx context.Context, enrollmentID int64) ([]*models.Booking, error) {
	sql, args, err := r.sb.Update("bookings").
		Set("refunded_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"enrollment_id": enrollmentID, "refunded_at": nil}).
		Where(squirrel.Gt{"refund_cents": 0}).
		Suffix("RETURNING id, enrollment_id, customer_id, class_id, session_id, status, refund_cents, refunded_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build settle refunds query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error settling booking refunds")
		return nil, fmt.Errorf("error settling booking refunds: %w", err)
	}
	defer rows.Close()

	settled := []*models.Booking{}
	for rows.Next() {
		b := &models.Booking{}
		if err := rows.Scan(&b.ID, &b.EnrollmentID, &b.CustomerID, &b.ClassID, &b.SessionID, &b.Status,
			&b.RefundCents, &b.RefundedAt); err != nil {
			return nil, fmt.Errorf("error scanning settled refund: %w", err)
		}
		settled = append(settled, b)
	}
	return settled, rows.Err()
}

// RefundedCents totals the credit already paid out for an enrollment's bookings
func (r *BookingRepository) RefundedCents(ctx context.Context, enrollmentID int64) (int64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(refund_cents), 0)").From("bookings").
		Where(squirrel.Eq{"enrollment_id": enrollmentID}).
		Where(squirrel.NotEq{"refunded_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build refunded sum query: %w", err)
	}
	var sum int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("error summing booking refunds: %w", err)
	}
	return sum, nil
}

// Roster lists active bookings of a session with attendance marks
func (r *BookingRepository) Roster(ctx context.Context, sessionID int64) ([]*models.RosterEntry, error) {
	sql, args, err := r.sb.Select("b.id", "b.customer_id", "c.first_name || ' ' || c.last_name", "c.phone", "a.status").
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		LeftJoin("attendance a ON a.booking_id = b.id").
		Where(squirrel.Eq{"b.session_id": sessionID, "b.status": models.BookingBooked}).
		OrderBy("c.last_name", "c.first_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", sessionID).Msg("Error loading roster")
		return nil, fmt.Errorf("error loading roster: %w", err)
	}
	defer rows.Close()

	roster := []*models.RosterEntry{}
	for rows.Next() {
		e := &models.RosterEntry{}
		if err := rows.Scan(&e.BookingID, &e.CustomerID, &e.CustomerName, &e.Phone, &e.Attendance); err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}
