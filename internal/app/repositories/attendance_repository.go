package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// AttendanceRepository handles attendance marks
type AttendanceRepository struct {
	baseRepository
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{baseRepository: newBaseRepository(db)}
}

// Upsert writes one mark per booking, replacing earlier marks
func (r *AttendanceRepository) Upsert(ctx context.Context, records []*models.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	insert := r.sb.Insert("attendance").Columns("booking_id", "session_id", "status", "marked_by", "marked_at")
	for _, a := range records {
		insert = insert.Values(a.BookingID, a.SessionID, a.Status, a.MarkedBy, a.MarkedAt)
	}
	sql, args, err := insert.
		Suffix(`ON CONFLICT ON CONSTRAINT attendance_booking_key DO UPDATE
			SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, marked_at = EXCLUDED.marked_at
			RETURNING id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert attendance query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", records[0].SessionID).Msg("Error saving attendance")
		return fmt.Errorf("error saving attendance: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&records[i].ID); err != nil {
			return fmt.Errorf("error scanning attendance id: %w", err)
		}
		i++
	}
	return rows.Err()
}

// ListBySession returns every mark recorded for a session
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID int64) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select("id", "booking_id", "session_id", "status", "marked_by", "marked_at").
		From("attendance").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("booking_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", sessionID).Msg("Error listing attendance")
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	marks := []*models.Attendance{}
	for rows.Next() {
		a := &models.Attendance{}
		if err := rows.Scan(&a.ID, &a.BookingID, &a.SessionID, &a.Status, &a.MarkedBy, &a.MarkedAt); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		marks = append(marks, a)
	}
	return marks, rows.Err()
}
