package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/helpers"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// EnrollmentRepository handles enrollments
type EnrollmentRepository struct {
	baseRepository
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{baseRepository: newBaseRepository(db)}
}

func (r *EnrollmentRepository) selectEnrollments() squirrel.SelectBuilder {
	return r.sb.Select("e.id", "e.customer_id", "e.term_id", "e.status", "e.total_cents", "e.credit_applied_cents",
		"e.created_by", "e.created_at", "e.updated_at", "c.first_name || ' ' || c.last_name").
		From("enrollments e").
		Join("customers c ON c.id = e.customer_id")
}

func scanEnrollment(row scanner) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(&e.ID, &e.CustomerID, &e.TermID, &e.Status, &e.TotalCents, &e.CreditAppliedCents,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &e.CustomerName)
	return e, err
}

// Create inserts an enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) (int64, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("customer_id", "term_id", "status", "total_cents", "credit_applied_cents", "created_by").
		Values(e.CustomerID, e.TermID, e.Status, e.TotalCents, e.CreditAppliedCents, e.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return 0, fmt.Errorf("failed to build create enrollment query: %w", err)
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("customerID", e.CustomerID).Msg("Error creating enrollment")
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}
	return e.ID, nil
}

// GetByID retrieves an enrollment without its children
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	sql, args, err := r.selectEnrollments().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}
	e, err := scanEnrollment(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return e, nil
}

// List returns a page of enrollments
func (r *EnrollmentRepository) List(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error) {
	where := squirrel.And{}
	if filter.TermID > 0 {
		where = append(where, squirrel.Eq{"e.term_id": filter.TermID})
	}
	if filter.CustomerID > 0 {
		where = append(where, squirrel.Eq{"e.customer_id": filter.CustomerID})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"e.status": filter.Status})
	}
	if filter.Search != "" {
		where = append(where, squirrel.Expr("c.first_name || ' ' || c.last_name ILIKE ?", searchPattern(filter.Search)))
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("enrollments e").
		Join("customers c ON c.id = e.customer_id").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}
	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting enrollments")
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := r.selectEnrollments().Where(where).OrderBy("e.created_at DESC", "e.id DESC").
		Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list enrollments query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing enrollments")
		return nil, 0, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	list := []*models.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// UpdateStatus moves an enrollment from one status to another
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, from, to models.EnrollmentStatus) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment status query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error updating enrollment status")
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: enrollment is not %s", apperrors.ErrInvalidStatus, from)
	}
	return nil
}
