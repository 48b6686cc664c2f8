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

var instructorColumns = []string{"id", "user_id", "first_name", "last_name", "email", "phone", "qualifications", "is_active", "created_at", "updated_at"}

// InstructorRepository handles instructors
type InstructorRepository struct {
	baseRepository
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{baseRepository: newBaseRepository(db)}
}

func scanInstructor(row scanner) (*models.Instructor, error) {
	i := &models.Instructor{}
	err := row.Scan(&i.ID, &i.UserID, &i.FirstName, &i.LastName, &i.Email, &i.Phone, &i.Qualifications, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// Create inserts an instructor
func (r *InstructorRepository) Create(ctx context.Context, i *models.Instructor) (int64, error) {
	sql, args, err := r.sb.Insert("instructors").
		Columns("user_id", "first_name", "last_name", "email", "phone", "qualifications", "is_active").
		Values(i.UserID, i.FirstName, i.LastName, i.Email, i.Phone, i.Qualifications, i.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create instructor query: %w", err)
	}
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", i.Email).Msg("Error creating instructor")
		return 0, fmt.Errorf("error creating instructor: %w", err)
	}
	return id, nil
}

func (r *InstructorRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Instructor, error) {
	sql, args, err := r.sb.Select(instructorColumns...).From("instructors").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}
	i, err := scanInstructor(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return i, nil
}

// GetByID retrieves an instructor
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the instructor linked to a login
func (r *InstructorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

// List returns instructors ordered by name
func (r *InstructorRepository) List(ctx context.Context, activeOnly bool) ([]*models.Instructor, error) {
	q := r.sb.Select(instructorColumns...).From("instructors").OrderBy("last_name", "first_name")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing instructors")
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	defer rows.Close()

	list := []*models.Instructor{}
	for rows.Next() {
		i, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning instructor row: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update writes every editable field
func (r *InstructorRepository) Update(ctx context.Context, i *models.Instructor) error {
	sql, args, err := r.sb.Update("instructors").
		Set("first_name", i.FirstName).
		Set("last_name", i.LastName).
		Set("email", i.Email).
		Set("phone", i.Phone).
		Set("qualifications", i.Qualifications).
		Set("is_active", i.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": i.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update instructor query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("instructorID", i.ID).Msg("Error updating instructor")
		return fmt.Errorf("error updating instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}
	return nil
}

// LinkUser attaches a portal login to an instructor that has none
func (r *InstructorRepository) LinkUser(ctx context.Context, instructorID, userID int64) error {
	sql, args, err := r.sb.Update("instructors").
		Set("user_id", userID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": instructorID, "user_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build link instructor query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("instructorID", instructorID).Msg("Error linking instructor login")
		return fmt.Errorf("error linking instructor login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("instructor not found or already has a login")
	}
	return nil
}

// Delete removes an instructor; refused while classes reference it
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("instructors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete instructor query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: instructor has classes", apperrors.ErrResourceInUse)
		}
		logger.Error().Err(err).Int64("instructorID", id).Msg("Error deleting instructor")
		return fmt.Errorf("error deleting instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}
	return nil
}
