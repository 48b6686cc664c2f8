package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/helpers"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// EnquiryRepository handles contact form submissions
type EnquiryRepository struct {
	baseRepository
}

// NewEnquiryRepository creates a new EnquiryRepository
func NewEnquiryRepository(db *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{baseRepository: newBaseRepository(db)}
}

// Create stores an OPEN enquiry
func (r *EnquiryRepository) Create(ctx context.Context, e *models.Enquiry) (int64, error) {
	sql, args, err := r.sb.Insert("enquiries").
		Columns("name", "email", "phone", "message", "status").
		Values(e.Name, e.Email, e.Phone, e.Message, models.EnquiryOpen).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create enquiry query: %w", err)
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		logger.Error().Err(err).Str("email", e.Email).Msg("Error creating enquiry")
		return 0, fmt.Errorf("error creating enquiry: %w", err)
	}
	e.Status = models.EnquiryOpen
	return e.ID, nil
}

// List returns a page of enquiries, newest first
func (r *EnquiryRepository) List(ctx context.Context, filter dto.ListFilter) ([]*models.Enquiry, int64, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		where = append(where, squirrel.Or{squirrel.ILike{"name": p}, squirrel.ILike{"email": p}, squirrel.ILike{"message": p}})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("enquiries").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count enquiries query: %w", err)
	}
	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting enquiries: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := r.sb.Select("id", "name", "email", "phone", "message", "status", "resolved_by", "resolved_at", "created_at").
		From("enquiries").Where(where).OrderBy("created_at DESC").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list enquiries query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing enquiries")
		return nil, 0, fmt.Errorf("error listing enquiries: %w", err)
	}
	defer rows.Close()

	list := []*models.Enquiry{}
	for rows.Next() {
		e := &models.Enquiry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Message, &e.Status, &e.ResolvedBy, &e.ResolvedAt, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning enquiry row: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// Resolve closes an OPEN enquiry
func (r *EnquiryRepository) Resolve(ctx context.Context, id, userID int64, at time.Time) error {
	sql, args, err := r.sb.Update("enquiries").
		Set("status", models.EnquiryResolved).
		Set("resolved_by", userID).
		Set("resolved_at", at).
		Where(squirrel.Eq{"id": id, "status": models.EnquiryOpen}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build resolve enquiry query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enquiryID", id).Msg("Error resolving enquiry")
		return fmt.Errorf("error resolving enquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnquiryNotFound
	}
	return nil
}
