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
	"github.com/sharecrm/share/internal/pkg/helpers"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// PAQRepository handles submitted questionnaires
type PAQRepository struct {
	baseRepository
}

// NewPAQRepository creates a new PAQRepository
func NewPAQRepository(db *pgxpool.Pool) *PAQRepository {
	return &PAQRepository{baseRepository: newBaseRepository(db)}
}

func (r *PAQRepository) selectForms() squirrel.SelectBuilder {
	return r.sb.Select("p.id", "p.customer_id", "p.answers", "p.requires_clearance", "p.certificate_file_id",
		"p.status", "p.review_notes", "p.reviewed_by", "p.reviewed_at", "p.expires_at", "p.submitted_at",
		"c.first_name || ' ' || c.last_name").
		From("paq_forms p").
		Join("customers c ON c.id = p.customer_id")
}

func scanPAQ(row scanner) (*models.PAQForm, error) {
	f := &models.PAQForm{}
	err := row.Scan(&f.ID, &f.CustomerID, &f.Answers, &f.RequiresClearance, &f.CertificateFileID,
		&f.Status, &f.ReviewNotes, &f.ReviewedBy, &f.ReviewedAt, &f.ExpiresAt, &f.SubmittedAt, &f.CustomerName)
	return f, err
}

// Create stores a submitted form
func (r *PAQRepository) Create(ctx context.Context, f *models.PAQForm) (int64, error) {
	sql, args, err := r.sb.Insert("paq_forms").
		Columns("customer_id", "answers", "requires_clearance", "status").
		Values(f.CustomerID, f.Answers, f.RequiresClearance, models.ReviewPending).
		Suffix("RETURNING id, submitted_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create paq query: %w", err)
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&f.ID, &f.SubmittedAt); err != nil {
		logger.Error().Err(err).Int64("customerID", f.CustomerID).Msg("Error creating paq form")
		return 0, fmt.Errorf("error creating paq form: %w", err)
	}
	f.Status = models.ReviewPending
	return f.ID, nil
}

// GetByID retrieves a form
func (r *PAQRepository) GetByID(ctx context.Context, id int64) (*models.PAQForm, error) {
	sql, args, err := r.selectForms().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get paq query: %w", err)
	}
	f, err := scanPAQ(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPAQNotFound
		}
		logger.Error().Err(err).Int64("paqID", id).Msg("Error scanning paq row")
		return nil, fmt.Errorf("error retrieving paq form: %w", err)
	}
	return f, nil
}

// GetLatestByCustomer returns the most recent submission
func (r *PAQRepository) GetLatestByCustomer(ctx context.Context, customerID int64) (*models.PAQForm, error) {
	sql, args, err := r.selectForms().Where(squirrel.Eq{"p.customer_id": customerID}).
		OrderBy("p.submitted_at DESC", "p.id DESC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest paq query: %w", err)
	}
	f, err := scanPAQ(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPAQNotFound
		}
		return nil, fmt.Errorf("error retrieving latest paq form: %w", err)
	}
	return f, nil
}

// List returns a page of forms, optionally by status
func (r *PAQRepository) List(ctx context.Context, filter dto.ListFilter) ([]*models.PAQForm, int64, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"p.status": filter.Status})
	}
	if filter.Search != "" {
		where = append(where, squirrel.Expr("c.first_name || ' ' || c.last_name ILIKE ?", searchPattern(filter.Search)))
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("paq_forms p").
		Join("customers c ON c.id = p.customer_id").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count paq query: %w", err)
	}
	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting paq forms: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := r.selectForms().Where(where).OrderBy("p.submitted_at DESC").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list paq query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing paq forms")
		return nil, 0, fmt.Errorf("error listing paq forms: %w", err)
	}
	defer rows.Close()

	forms := []*models.PAQForm{}
	for rows.Next() {
		f, err := scanPAQ(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning paq row: %w", err)
		}
		forms = append(forms, f)
	}
	return forms, total, rows.Err()
}

// AttachCertificate links an uploaded certificate to a pending form
func (r *PAQRepository) AttachCertificate(ctx context.Context, id, fileID int64) error {
	sql, args, err := r.sb.Update("paq_forms").
		Set("certificate_file_id", fileID).
		Where(squirrel.Eq{"id": id, "status": models.ReviewPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attach certificate query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paqID", id).Msg("Error attaching certificate")
		return fmt.Errorf("error attaching certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyReviewed
	}
	return nil
}

// Review moves a PENDING form to its outcome; a form already reviewed is a conflict
func (r *PAQRepository) Review(ctx context.Context, id int64, status models.ReviewStatus, notes string,
	reviewer int64, reviewedAt time.Time, expiresAt *time.Time) error {
	sql, args, err := r.sb.Update("paq_forms").
		Set("status", status).
		Set("review_notes", notes).
		Set("reviewed_by", reviewer).
		Set("reviewed_at", reviewedAt).
		Set("expires_at", expiresAt).
		Where(squirrel.Eq{"id": id, "status": models.ReviewPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review paq query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paqID", id).Msg("Error reviewing paq form")
		return fmt.Errorf("error reviewing paq form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyReviewed
	}
	return nil
}
