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
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/dberrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

var termColumns = []string{"id", "name", "start_date", "end_date", "enrollment_open", "created_at", "updated_at"}

// TermRepository handles terms
type TermRepository struct {
	baseRepository
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{baseRepository: newBaseRepository(db)}
}

func scanTerm(row scanner) (*models.Term, error) {
	t := &models.Term{}
	err := row.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate, &t.EnrollmentOpen, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func termConflict(err error) error {
	if dberrors.IsDuplicateConstraintError(err, "terms_name_key") {
		return apperrors.NewConflictError("a term with this name already exists")
	}
	if dberrors.IsCheckViolation(err, "terms_dates_ordered") {
		return fmt.Errorf("%w: start date must not be after end date", apperrors.ErrValidationFailed)
	}
	return nil
}

// Create inserts a term
func (r *TermRepository) Create(ctx context.Context, t *models.Term) (int64, error) {
	sql, args, err := r.sb.Insert("terms").
		Columns("name", "start_date", "end_date", "enrollment_open").
		Values(t.Name, t.StartDate, t.EndDate, t.EnrollmentOpen).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create term query: %w", err)
	}
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if cErr := termConflict(err); cErr != nil {
			return 0, cErr
		}
		logger.Error().Err(err).Str("name", t.Name).Msg("Error creating term")
		return 0, fmt.Errorf("error creating term: %w", err)
	}
	return id, nil
}

// GetByID retrieves a term
func (r *TermRepository) GetByID(ctx context.Context, id int64) (*models.Term, error) {
	sql, args, err := r.sb.Select(termColumns...).From("terms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get term query: %w", err)
	}
	t, err := scanTerm(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTermNotFound
		}
		return nil, fmt.Errorf("error retrieving term: %w", err)
	}
	return t, nil
}

// List returns terms newest first. With openOn set, only terms open for
// enrollment whose end date is not before openOn are returned.
func (r *TermRepository) List(ctx context.Context, openOn *time.Time) ([]*models.Term, error) {
	q := r.sb.Select(termColumns...).From("terms").OrderBy("start_date DESC")
	if openOn != nil {
		q = q.Where(squirrel.Eq{"enrollment_open": true}).Where(squirrel.GtOrEq{"end_date": *openOn})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list terms query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing terms")
		return nil, fmt.Errorf("error listing terms: %w", err)
	}
	defer rows.Close()

	terms := []*models.Term{}
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning term row: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// Update writes every editable field
func (r *TermRepository) Update(ctx context.Context, t *models.Term) error {
	sql, args, err := r.sb.Update("terms").
		Set("name", t.Name).
		Set("start_date", t.StartDate).
		Set("end_date", t.EndDate).
		Set("enrollment_open", t.EnrollmentOpen).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update term query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if cErr := termConflict(err); cErr != nil {
			return cErr
		}
		logger.Error().Err(err).Int64("termID", t.ID).Msg("Error updating term")
		return fmt.Errorf("error updating term: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}
	return nil
}

// Delete removes a term; refused while classes reference it
func (r *TermRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("terms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete term query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: term has classes", apperrors.ErrResourceInUse)
		}
		logger.Error().Err(err).Int64("termID", id).Msg("Error deleting term")
		return fmt.Errorf("error deleting term: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}
	return nil
}
