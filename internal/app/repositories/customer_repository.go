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

var customerColumns = []string{
	"id", "user_id", "first_name", "last_name", "email", "phone", "date_of_birth", "address",
	"emergency_contact_name", "emergency_contact_phone", "credit_cents", "paq_status", "paq_expires_at",
	"is_blocked", "blocked_reason", "created_at", "updated_at",
}

// CustomerRepository handles customer records
type CustomerRepository struct {
	baseRepository
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{baseRepository: newBaseRepository(db)}
}

func scanCustomer(row scanner) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.DateOfBirth, &c.Address,
		&c.EmergencyContactName, &c.EmergencyContactPhone, &c.CreditCents, &c.PAQStatus, &c.PAQExpiresAt,
		&c.IsBlocked, &c.BlockedReason, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a customer and returns its ID
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) (int64, error) {
	sql, args, err := r.sb.Insert("customers").
		Columns("user_id", "first_name", "last_name", "email", "phone", "date_of_birth", "address",
			"emergency_contact_name", "emergency_contact_phone").
		Values(c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth, c.Address,
			c.EmergencyContactName, c.EmergencyContactPhone).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create customer SQL")
		return 0, fmt.Errorf("failed to build create customer query: %w", err)
	}

	var id int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "customers_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", c.Email).Msg("Error creating customer")
		return 0, fmt.Errorf("error creating customer: %w", err)
	}
	return id, nil
}

func (r *CustomerRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Customer, error) {
	sql, args, err := r.sb.Select(customerColumns...).From("customers").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get customer query: %w", err)
	}
	c, err := scanCustomer(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCustomerNotFound
		}
		logger.Error().Err(err).Msg("Error scanning customer row")
		return nil, fmt.Errorf("error retrieving customer: %w", err)
	}
	return c, nil
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the customer linked to a login
func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

// Update writes the editable contact fields
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	sql, args, err := r.sb.Update("customers").
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("date_of_birth", c.DateOfBirth).
		Set("address", c.Address).
		Set("emergency_contact_name", c.EmergencyContactName).
		Set("emergency_contact_phone", c.EmergencyContactPhone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update customer query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "customers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("customerID", c.ID).Msg("Error updating customer")
		return fmt.Errorf("error updating customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer; refused while enrollments reference it
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("customers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete customer query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer has enrollments", apperrors.ErrResourceInUse)
		}
		logger.Error().Err(err).Int64("customerID", id).Msg("Error deleting customer")
		return fmt.Errorf("error deleting customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

// List returns a page of customers
func (r *CustomerRepository) List(ctx context.Context, filter dto.CustomerFilter) ([]*models.Customer, int64, error) {
	where := squirrel.And{}
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"first_name": p},
			squirrel.ILike{"last_name": p},
			squirrel.ILike{"email": p},
			squirrel.Expr("first_name || ' ' || last_name ILIKE ?", p),
		})
	}
	if filter.Blocked != nil {
		where = append(where, squirrel.Eq{"is_blocked": *filter.Blocked})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"paq_status": filter.Status})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("customers").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count customers query: %w", err)
	}
	var total int64
	if err := r.conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting customers")
		return nil, 0, fmt.Errorf("error counting customers: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := r.sb.Select(customerColumns...).From("customers").Where(where).
		OrderBy("last_name", "first_name", "id").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list customers query: %w", err)
	}
	customers, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// All returns every customer, for exports
func (r *CustomerRepository) All(ctx context.Context) ([]*models.Customer, error) {
	sql, args, err := r.sb.Select(customerColumns...).From("customers").OrderBy("last_name", "first_name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build all customers query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *CustomerRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Customer, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing customers")
		return nil, fmt.Errorf("error listing customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// SetBlocked blocks or unblocks a customer
func (r *CustomerRepository) SetBlocked(ctx context.Context, id int64, blocked bool, reason *string) error {
	sql, args, err := r.sb.Update("customers").
		Set("is_blocked", blocked).
		Set("blocked_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build block customer query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("customerID", id).Bool("blocked", blocked).Msg("Error changing customer block state")
		return fmt.Errorf("error changing customer block state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

// UpdatePAQStatus mirrors the latest questionnaire outcome onto the customer
func (r *CustomerRepository) UpdatePAQStatus(ctx context.Context, id int64, status models.PAQStatus, expiresAt *time.Time) error {
	sql, args, err := r.sb.Update("customers").
		Set("paq_status", status).
		Set("paq_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update paq status query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("customerID", id).Msg("Error updating customer paq status")
		return fmt.Errorf("error updating customer paq status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}
