package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

const bookedCountExpr = "(SELECT COUNT(*) FROM bookings b WHERE b.session_id = s.id AND b.status = 'BOOKED')"

// SessionRepository handles dated class occurrences
type SessionRepository struct {
	baseRepository
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{baseRepository: newBaseRepository(db)}
}

func (r *SessionRepository) selectSessions() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.class_id", "s.session_date", "s.status", "s.notes", "s.created_at", "s.updated_at",
		"cl.name", "cl.start_time", "cl.end_time", bookedCountExpr).
		From("sessions s").
		Join("classes cl ON cl.id = s.class_id")
}

func scanSession(row scanner) (*models.Session, error) {
	s := &models.Session{}
	err := row.Scan(&s.ID, &s.ClassID, &s.SessionDate, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		&s.ClassName, &s.StartTime, &s.EndTime, &s.BookedCount)
	return s, err
}

func (r *SessionRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Session, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing sessions")
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CreateBatch inserts one session per date, skipping dates that already exist
func (r *SessionRepository) CreateBatch(ctx context.Context, classID int64, dates []time.Time) ([]*models.Session, error) {
	if len(dates) == 0 {
		return []*models.Session{}, nil
	}
	insert := r.sb.Insert("sessions").Columns("class_id", "session_date", "status")
	for _, d := range dates {
		insert = insert.Values(classID, d, models.SessionScheduled)
	}
	sql, args, err := insert.
		Suffix("ON CONFLICT ON CONSTRAINT sessions_class_date_key DO NOTHING RETURNING id, class_id, session_date, status, notes, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create sessions query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error creating sessions")
		return nil, fmt.Errorf("error creating sessions: %w", err)
	}
	defer rows.Close()

	created := []*models.Session{}
	for rows.Next() {
		s := &models.Session{}
		if err := rows.Scan(&s.ID, &s.ClassID, &s.SessionDate, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning created session: %w", err)
		}
		created = append(created, s)
	}
	return created, rows.Err()
}

// GetByID retrieves a session with its class schedule
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	sql, args, err := r.selectSessions().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}
	s, err := scanSession(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return s, nil
}

// List returns sessions in date order
func (r *SessionRepository) List(ctx context.Context, filter dto.SessionFilter) ([]*models.Session, error) {
	q := r.selectSessions()
	if filter.ClassID > 0 {
		q = q.Where(squirrel.Eq{"s.class_id": filter.ClassID})
	}
	if filter.InstructorID > 0 {
		q = q.Where(squirrel.Eq{"cl.instructor_id": filter.InstructorID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.Expr("s.session_date >= ?::date", *filter.From))
	}
	if filter.To != nil {
		q = q.Where(squirrel.Expr("s.session_date <= ?::date", *filter.To))
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"s.status": filter.Status})
	}
	sql, args, err := q.OrderBy("s.session_date", "cl.start_time").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

// UpcomingByClass returns the SCHEDULED sessions on or after today, grouped by class
func (r *SessionRepository) UpcomingByClass(ctx context.Context, classIDs []int64, today time.Time) (map[int64][]*models.Session, error) {
	sql, args, err := r.selectSessions().
		Where(squirrel.Eq{"s.class_id": classIDs, "s.status": models.SessionScheduled}).
		Where(squirrel.Expr("s.session_date >= ?::date", today)).
		OrderBy("s.class_id", "s.session_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming sessions query: %w", err)
	}
	sessions, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	byClass := make(map[int64][]*models.Session, len(classIDs))
	for _, s := range sessions {
		byClass[s.ClassID] = append(byClass[s.ClassID], s)
	}
	return byClass, nil
}

// UpdateStatus moves a session from one status to another, optionally
// replacing notes. A session not in status from is a conflict.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, from, to models.SessionStatus, notes *string) error {
	q := r.sb.Update("sessions").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})
	if notes != nil {
		q = q.Set("notes", *notes)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error updating session")
		return fmt.Errorf("error updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: session is no longer %s", apperrors.ErrInvalidStatus, from)
	}
	return nil
}
