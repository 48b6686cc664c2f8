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
	"github.com/sharecrm/share/internal/pkg/helpers"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// CancellationRepository handles booking cancellation requests
type CancellationRepository struct {
	baseRepository
}

// NewCancellationRepository creates a new CancellationRepository
func NewCancellationRepository(db *pgxpool.Pool) *CancellationRepository {
	return &CancellationRepository{baseRepository: newBaseRepository(db)}
}

func (r *CancellationRepository) selectCancellations() squirrel.SelectBuilder {
	return r.sb.Select("x.id", "x.booking_id", "x.customer_id", "x.reason", "x.status", "x.refund_credit_cents",
		"x.review_notes", "x.reviewed_by", "x.reviewed_at", "x.created_at",
		"c.first_name || ' ' || c.last_name", "cl.name", "s.session_date").
		From("cancellations x").
		Join("customers c ON c.id = x.customer_id").
		Join("bookings b ON b.id = x.booking_id").
		Join("classes cl ON cl.id = b.class_id").
		Join("sessions s ON s.id = b.session_id")
}

func scanCancellation(row scanner) (*models.Cancellation, error) {
	x := &models.Cancellation{}
	err := row.Scan(&x.ID, &x.BookingID, &x.CustomerID, &x.Reason, &x.Status, &x.RefundCreditCents,
		&x.ReviewNotes, &x.ReviewedBy, &x.ReviewedAt, &x.CreatedAt, &x.CustomerName, &x.ClassName, &x.SessionDate)
	return x, err
}

// Create records a PENDING request; only one may be pending per booking
func (r *CancellationRepository) Create(ctx context.Context, x *models.Cancellation) (int64, error) {
	sql, args, err := r.sb.Insert("cancellations").
		Columns("booking_id", "customer_id", "reason", "status").
		Values(x.BookingID, x.CustomerID, x.Reason, models.ReviewPending).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create cancellation query: %w", err)
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&x.ID, &x.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "cancellations_pending_booking_key") {
			return 0, apperrors.ErrCancellationPending
		}
		logger.Error().Err(err).Int64("bookingID", x.BookingID).Msg("Error creating cancellation")
		return 0, fmt.Errorf("error creating cancellation: %w", err)
	}
	x.Status = models.ReviewPending
	return x.ID, nil
}

// GetByID retrieves a cancellation request
func (r *CancellationRepository) GetByID(ctx context.Context, id int64) (*models.Cancellation, error) {
	sql, args, err := r.selectCancellations().Where(squirrel.Eq{"x.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get cancellation query: %w", err)
	}
	x, err := scanCancellation(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCancellationNotFound
		}
		return nil, fmt.Errorf("error retrieving cancellation: %w", err)
	}
	return x, nil
}

// List returns a page of cancellation requests, oldest pending first
func (r *CancellationRepository) List(ctx context.Context, filter dto.ListFilter, customerID int64) ([]*models.Cancellation, int64, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"x.status": filter.Status})
	}
	if customerID > 0 {
		where = append(where, squirrel.Eq{"x.customer_id": customerID})
	}
	if filter.Search != "" {
		where = append(where, squirrel.Expr("c.first_name || ' ' || c.last_name ILIKE ?", searchPattern(filter.Search)))
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("cancellations x").
		Join("customers c ON c.id = x.customer_id").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count cancellations query: %w", err)
	}
	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting cancellations: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := r.selectCancellations().Where(where).OrderBy("x.created_at", "x.id").
		Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list cancellations query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing cancellations")
		return nil, 0, fmt.Errorf("error listing cancellations: %w", err)
	}
	defer rows.Close()

	list := []*models.Cancellation{}
	for rows.Next() {
		x, err := scanCancellation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning cancellation row: %w", err)
		}
		list = append(list, x)
	}
	return list, total, rows.Err()
}

// Review moves a PENDING request to its outcome. Only one caller can win;
// every later call gets ErrAlreadyReviewed.
func (r *CancellationRepository) Review(ctx context.Context, id int64, status models.ReviewStatus,
	refundCents int64, notes string, reviewer int64, at time.Time) error {
	sql, args, err := r.sb.Update("cancellations").
		Set("status", status).
		Set("refund_credit_cents", refundCents).
		Set("review_notes", notes).
		Set("reviewed_by", reviewer).
		Set("reviewed_at", at).
		Where(squirrel.Eq{"id": id, "status": models.ReviewPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review cancellation query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("cancellationID", id).Msg("Error reviewing cancellation")
		return fmt.Errorf("error reviewing cancellation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyReviewed
	}
	return nil
}

// SetRefund records the credit actually issued for an approved request
func (r *CancellationRepository) SetRefund(ctx context.Context, id, refundCents int64) error {
	sql, args, err := r.sb.Update("cancellations").
		Set("refund_credit_cents", refundCents).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set refund query: %w", err)
	}
	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error setting cancellation refund: %w", err)
	}
	return nil
}
