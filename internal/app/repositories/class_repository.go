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
	"github.com/sharecrm/share/internal/pkg/dberrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

const (
	upcomingSessionsExpr = `(SELECT COUNT(*) FROM sessions s
		WHERE s.class_id = cl.id AND s.status = 'SCHEDULED' AND s.session_date >= ?::date)`
	seatsRemainingExpr = `cl.capacity - COALESCE((SELECT MAX(x.n) FROM (
		SELECT COUNT(*) AS n FROM bookings b JOIN sessions s ON s.id = b.session_id
		WHERE b.class_id = cl.id AND b.status = 'BOOKED' AND s.status = 'SCHEDULED' AND s.session_date >= ?::date
		GROUP BY b.session_id) x), 0)`
)

var classColumns = []string{
	"cl.id", "cl.name", "cl.description", "cl.term_id", "cl.venue_id", "cl.instructor_id", "cl.weekday",
	"cl.start_time", "cl.end_time", "cl.capacity", "cl.price_per_session_cents", "cl.is_subsidised",
	"cl.is_active", "cl.created_at", "cl.updated_at", "v.name",
	"COALESCE(i.first_name || ' ' || i.last_name, '')",
}

// ClassRepository handles classes
type ClassRepository struct {
	baseRepository
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{baseRepository: newBaseRepository(db)}
}

func (r *ClassRepository) selectClasses(today time.Time) squirrel.SelectBuilder {
	if today.IsZero() {
		today = time.Now().UTC()
	}
	return r.sb.Select(classColumns...).
		Column(squirrel.Expr(upcomingSessionsExpr, today)).
		Column(squirrel.Expr(seatsRemainingExpr, today)).
		From("classes cl").
		Join("venues v ON v.id = cl.venue_id").
		LeftJoin("instructors i ON i.id = cl.instructor_id")
}

func scanClass(row scanner) (*models.Class, error) {
	c := &models.Class{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.TermID, &c.VenueID, &c.InstructorID, &c.Weekday,
		&c.StartTime, &c.EndTime, &c.Capacity, &c.PricePerSessionCents, &c.IsSubsidised,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.VenueName, &c.InstructorName,
		&c.UpcomingSessions, &c.SeatsRemaining)
	return c, err
}

func classConflict(err error) error {
	if dberrors.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: term, venue or instructor does not exist", apperrors.ErrValidationFailed)
	}
	return nil
}

// Create inserts a class
func (r *ClassRepository) Create(ctx context.Context, c *models.Class) (int64, error) {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "description", "term_id", "venue_id", "instructor_id", "weekday", "start_time", "end_time",
			"capacity", "price_per_session_cents", "is_subsidised", "is_active").
		Values(c.Name, c.Description, c.TermID, c.VenueID, c.InstructorID, c.Weekday, c.StartTime, c.EndTime,
			c.Capacity, c.PricePerSessionCents, c.IsSubsidised, c.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if cErr := classConflict(err); cErr != nil {
			return 0, cErr
		}
		logger.Error().Err(err).Str("name", c.Name).Msg("Error creating class")
		return 0, fmt.Errorf("error creating class: %w", err)
	}
	return id, nil
}

// GetByID retrieves a class with venue, instructor and availability
func (r *ClassRepository) GetByID(ctx context.Context, id int64, today time.Time) (*models.Class, error) {
	sql, args, err := r.selectClasses(today).Where(squirrel.Eq{"cl.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}
	c, err := scanClass(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return c, nil
}

// List returns classes ordered by weekday and start time
func (r *ClassRepository) List(ctx context.Context, filter dto.ClassFilter) ([]*models.Class, error) {
	q := r.selectClasses(filter.Today)
	if filter.TermID > 0 {
		q = q.Where(squirrel.Eq{"cl.term_id": filter.TermID})
	}
	if filter.VenueID > 0 {
		q = q.Where(squirrel.Eq{"cl.venue_id": filter.VenueID})
	}
	if filter.InstructorID > 0 {
		q = q.Where(squirrel.Eq{"cl.instructor_id": filter.InstructorID})
	}
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"cl.is_active": true})
	}
	sql, args, err := q.OrderBy("cl.weekday", "cl.start_time", "cl.name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *ClassRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Class, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing classes")
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// LockForUpdate loads the given classes and holds row locks until the
// surrounding transaction ends. Rows are locked in ID order.
func (r *ClassRepository) LockForUpdate(ctx context.Context, ids []int64) ([]*models.Class, error) {
	sql, args, err := r.sb.Select("id", "name", "term_id", "capacity", "price_per_session_cents", "is_subsidised", "is_active").
		From("classes").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock classes query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Ints64("classIDs", ids).Msg("Error locking classes")
		return nil, fmt.Errorf("error locking classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		c := &models.Class{}
		if err := rows.Scan(&c.ID, &c.Name, &c.TermID, &c.Capacity, &c.PricePerSessionCents, &c.IsSubsidised, &c.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning locked class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Update writes every editable field
func (r *ClassRepository) Update(ctx context.Context, c *models.Class) error {
	sql, args, err := r.sb.Update("classes").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("term_id", c.TermID).
		Set("venue_id", c.VenueID).
		Set("instructor_id", c.InstructorID).
		Set("weekday", c.Weekday).
		Set("start_time", c.StartTime).
		Set("end_time", c.EndTime).
		Set("capacity", c.Capacity).
		Set("price_per_session_cents", c.PricePerSessionCents).
		Set("is_subsidised", c.IsSubsidised).
		Set("is_active", c.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if cErr := classConflict(err); cErr != nil {
			return cErr
		}
		logger.Error().Err(err).Int64("classID", c.ID).Msg("Error updating class")
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// Delete removes a class; refused once bookings exist
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: class has bookings", apperrors.ErrResourceInUse)
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error deleting class")
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}
