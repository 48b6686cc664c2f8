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

// PaymentRepository handles payments
type PaymentRepository struct {
	baseRepository
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{baseRepository: newBaseRepository(db)}
}

func (r *PaymentRepository) selectPayments() squirrel.SelectBuilder {
	return r.sb.Select("p.id", "p.enrollment_id", "p.customer_id", "p.amount_cents", "p.method", "p.status",
		"p.provider_reference", "p.created_at", "p.updated_at", "c.first_name || ' ' || c.last_name").
		From("payments p").
		Join("customers c ON c.id = p.customer_id")
}

func scanPayment(row scanner) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.EnrollmentID, &p.CustomerID, &p.AmountCents, &p.Method, &p.Status,
		&p.ProviderReference, &p.CreatedAt, &p.UpdatedAt, &p.CustomerName)
	return p, err
}

func (r *PaymentRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing payments")
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Create inserts a payment
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) (int64, error) {
	sql, args, err := r.sb.Insert("payments").
		Columns("enrollment_id", "customer_id", "amount_cents", "method", "status", "provider_reference").
		Values(p.EnrollmentID, p.CustomerID, p.AmountCents, p.Method, p.Status, p.ProviderReference).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create payment query: %w", err)
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("enrollmentID", p.EnrollmentID).Msg("Error creating payment")
		return 0, fmt.Errorf("error creating payment: %w", err)
	}
	return p.ID, nil
}

// GetByID retrieves a payment
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	sql, args, err := r.selectPayments().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}
	p, err := scanPayment(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}
	return p, nil
}

// ListByEnrollment returns an enrollment's payments
func (r *PaymentRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Payment, error) {
	sql, args, err := r.selectPayments().Where(squirrel.Eq{"p.enrollment_id": enrollmentID}).OrderBy("p.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment payments query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

// List returns a page of payments
func (r *PaymentRepository) List(ctx context.Context, filter dto.PaymentFilter) ([]*models.Payment, int64, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"p.status": filter.Status})
	}
	if filter.Method != "" {
		where = append(where, squirrel.Eq{"p.method": filter.Method})
	}
	if filter.From != nil {
		where = append(where, squirrel.GtOrEq{"p.created_at": *filter.From})
	}
	if filter.To != nil {
		where = append(where, squirrel.Lt{"p.created_at": filter.To.AddDate(0, 0, 1)})
	}
	if filter.Search != "" {
		where = append(where, squirrel.Expr("c.first_name || ' ' || c.last_name ILIKE ?", searchPattern(filter.Search)))
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("payments p").
		Join("customers c ON c.id = p.customer_id").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count payments query: %w", err)
	}
	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting payments: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := r.selectPayments().Where(where).OrderBy("p.created_at DESC", "p.id DESC").
		Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list payments query: %w", err)
	}
	payments, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// UpdateStatus moves a payment out of from; a payment not in from is a conflict
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus, method *models.PaymentMethod) error {
	q := r.sb.Update("payments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})
	if method != nil {
		q = q.Set("method", *method)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update payment query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error updating payment")
		return fmt.Errorf("error updating payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment is not %s", apperrors.ErrInvalidStatus, from)
	}
	return nil
}

// SumSucceeded totals the succeeded payments of an enrollment
func (r *PaymentRepository) SumSucceeded(ctx context.Context, enrollmentID int64) (int64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(amount_cents), 0)").From("payments").
		Where(squirrel.Eq{"enrollment_id": enrollmentID, "status": models.PaymentSucceeded}).
		Where(squirrel.NotEq{"method": models.PaymentCredit}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build payment sum query: %w", err)
	}
	var sum int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("error summing payments: %w", err)
	}
	return sum, nil
}
