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
	"github.com/sharecrm/share/internal/pkg/logger"
)

// applyCreditSQL moves the balance and writes the ledger row in one statement.
// The WHERE clause keeps the balance non-negative; no row means the change was refused.
const applyCreditSQL = `
WITH upd AS (
    UPDATE customers
       SET credit_cents = credit_cents + $2, updated_at = NOW()
     WHERE id = $1 AND credit_cents + $2 >= 0
 RETURNING id, credit_cents
)
INSERT INTO credit_transactions (customer_id, amount_cents, balance_after_cents, reason, note, reference_id, created_by)
SELECT id, $2, credit_cents, $3, $4, $5, $6 FROM upd
RETURNING id, balance_after_cents, created_at`

// CreditRepository handles customer credit balances and the ledger
type CreditRepository struct {
	baseRepository
}

// NewCreditRepository creates a new CreditRepository
func NewCreditRepository(db *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{baseRepository: newBaseRepository(db)}
}

// Apply atomically adds change.AmountCents (which may be negative) to the balance
func (r *CreditRepository) Apply(ctx context.Context, change models.CreditChange) (*models.CreditTransaction, error) {
	tx := &models.CreditTransaction{
		CustomerID:  change.CustomerID,
		AmountCents: change.AmountCents,
		Reason:      change.Reason,
		Note:        change.Note,
		ReferenceID: change.ReferenceID,
		CreatedBy:   change.CreatedBy,
	}

	err := r.conn(ctx).QueryRow(ctx, applyCreditSQL,
		change.CustomerID, change.AmountCents, change.Reason, change.Note, change.ReferenceID, change.CreatedBy,
	).Scan(&tx.ID, &tx.BalanceAfterCents, &tx.CreatedAt)
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("customerID", change.CustomerID).Int64("amount", change.AmountCents).
			Msg("Error applying credit change")
		return nil, fmt.Errorf("error applying credit change: %w", err)
	}

	exists, err := r.customerExists(ctx, change.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCustomerNotFound
	}
	return nil, apperrors.ErrInsufficientCredit
}

func (r *CreditRepository) customerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking customer: %w", err)
	}
	return exists, nil
}

// Balance returns the current credit of a customer
func (r *CreditRepository) Balance(ctx context.Context, customerID int64) (int64, error) {
	sql, args, err := r.sb.Select("credit_cents").From("customers").Where(squirrel.Eq{"id": customerID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build balance query: %w", err)
	}
	var balance int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCustomerNotFound
		}
		return 0, fmt.Errorf("error reading balance: %w", err)
	}
	return balance, nil
}

// ListByCustomer returns the newest ledger entries first
func (r *CreditRepository) ListByCustomer(ctx context.Context, customerID int64, limit uint64) ([]*models.CreditTransaction, error) {
	sql, args, err := r.sb.Select("id", "customer_id", "amount_cents", "balance_after_cents", "reason", "note",
		"reference_id", "created_by", "created_at").
		From("credit_transactions").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build credit ledger query: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("customerID", customerID).Msg("Error listing credit ledger")
		return nil, fmt.Errorf("error listing credit ledger: %w", err)
	}
	defer rows.Close()

	entries := []*models.CreditTransaction{}
	for rows.Next() {
		t := &models.CreditTransaction{}
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.AmountCents, &t.BalanceAfterCents, &t.Reason, &t.Note,
			&t.ReferenceID, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning credit row: %w", err)
		}
		entries = append(entries, t)
	}
	return entries, rows.Err()
}
