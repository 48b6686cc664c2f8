package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// ReportRepository runs the read-only queries behind exports
type ReportRepository struct {
	baseRepository
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{baseRepository: newBaseRepository(db)}
}

// EnrollmentRows returns one row per enrollment and class, optionally for a single term
func (r *ReportRepository) EnrollmentRows(ctx context.Context, termID int64) ([]*models.EnrollmentReportRow, error) {
	q := r.sb.Select("e.id", "c.first_name || ' ' || c.last_name", "c.email", "cl.name", "COUNT(b.id)",
		"e.status", "e.total_cents", "e.credit_applied_cents", "e.created_at").
		From("enrollments e").
		Join("customers c ON c.id = e.customer_id").
		Join("bookings b ON b.enrollment_id = e.id").
		Join("classes cl ON cl.id = b.class_id").
		GroupBy("e.id", "c.id", "cl.id").
		OrderBy("e.created_at", "e.id", "cl.name")
	if termID > 0 {
		q = q.Where(squirrel.Eq{"e.term_id": termID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment report query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("termID", termID).Msg("Error running enrollment report")
		return nil, fmt.Errorf("error running enrollment report: %w", err)
	}
	defer rows.Close()

	out := []*models.EnrollmentReportRow{}
	for rows.Next() {
		row := &models.EnrollmentReportRow{}
		if err := rows.Scan(&row.EnrollmentID, &row.CustomerName, &row.CustomerEmail, &row.ClassName, &row.Sessions,
			&row.Status, &row.TotalCents, &row.CreditCents, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning enrollment report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// AttendanceRows returns every active booking of a class's sessions with its mark
func (r *ReportRepository) AttendanceRows(ctx context.Context, classID int64) ([]*models.AttendanceReportRow, error) {
	q := r.sb.Select("s.session_date", "cl.name", "c.first_name || ' ' || c.last_name", "a.status").
		From("bookings b").
		Join("sessions s ON s.id = b.session_id").
		Join("classes cl ON cl.id = b.class_id").
		Join("customers c ON c.id = b.customer_id").
		LeftJoin("attendance a ON a.booking_id = b.id").
		Where(squirrel.Eq{"b.status": models.BookingBooked}).
		OrderBy("s.session_date", "cl.name", "c.last_name", "c.first_name")
	if classID > 0 {
		q = q.Where(squirrel.Eq{"b.class_id": classID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance report query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error running attendance report")
		return nil, fmt.Errorf("error running attendance report: %w", err)
	}
	defer rows.Close()

	out := []*models.AttendanceReportRow{}
	for rows.Next() {
		row := &models.AttendanceReportRow{}
		if err := rows.Scan(&row.SessionDate, &row.ClassName, &row.CustomerName, &row.Status); err != nil {
			return nil, fmt.Errorf("error scanning attendance report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PaymentRows returns payments created in [from, to]
func (r *ReportRepository) PaymentRows(ctx context.Context, from, to *time.Time) ([]*models.PaymentReportRow, error) {
	q := r.sb.Select("p.id", "p.enrollment_id", "c.first_name || ' ' || c.last_name", "p.method", "p.status",
		"p.amount_cents", "p.provider_reference", "p.created_at").
		From("payments p").
		Join("customers c ON c.id = p.customer_id").
		OrderBy("p.created_at", "p.id")
	if from != nil {
		q = q.Where(squirrel.GtOrEq{"p.created_at": *from})
	}
	if to != nil {
		q = q.Where(squirrel.Lt{"p.created_at": to.AddDate(0, 0, 1)})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payment report query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error running payment report")
		return nil, fmt.Errorf("error running payment report: %w", err)
	}
	defer rows.Close()

	out := []*models.PaymentReportRow{}
	for rows.Next() {
		row := &models.PaymentReportRow{}
		if err := rows.Scan(&row.PaymentID, &row.EnrollmentID, &row.CustomerName, &row.Method, &row.Status,
			&row.AmountCents, &row.ProviderReference, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
