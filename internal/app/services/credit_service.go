package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
)

// ledgerPageSize caps the ledger entries returned with a balance
const ledgerPageSize = 50

// CreditService reads and adjusts customer credit
type CreditService struct {
	customers CustomerStore
	credit    CreditStore
	events    events.Publisher
	logger    zerolog.Logger
}

// NewCreditService creates a new CreditService
func NewCreditService(customers CustomerStore, credit CreditStore, publisher events.Publisher, logger zerolog.Logger) *CreditService {
	return &CreditService{
		customers: customers,
		credit:    credit,
		events:    publisher,
		logger:    logger,
	}
}

// Summary returns the balance and recent ledger of a customer
func (s *CreditService) Summary(ctx context.Context, customerID int64) (*dto.CreditSummaryResponse, error) {
	balance, err := s.credit.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	txs, err := s.credit.ListByCustomer(ctx, customerID, ledgerPageSize)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*models.CreditTransaction{}
	}
	return &dto.CreditSummaryResponse{
		CustomerID:   customerID,
		BalanceCents: balance,
		Transactions: txs,
	}, nil
}

// SummaryForUser is Summary for the customer linked to a login
func (s *CreditService) SummaryForUser(ctx context.Context, userID int64) (*dto.CreditSummaryResponse, error) {
	c, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Summary(ctx, c.ID)
}

// Adjust moves a balance by a signed amount; overdrawing is ErrInsufficientCredit
func (s *CreditService) Adjust(ctx context.Context, actor Actor, customerID int64, req *dto.CreditAdjustmentRequest) (*models.CreditTransaction, error) {
	if req.AmountCents == 0 {
		return nil, fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidationFailed)
	}

	tx, err := s.credit.Apply(ctx, models.CreditChange{
		CustomerID:  customerID,
		AmountCents: req.AmountCents,
		Reason:      models.CreditManualAdjustment,
		Note:        strings.TrimSpace(req.Note),
		CreatedBy:   &actor.UserID,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInsufficientCredit) {
			s.logger.Warn().Int64("customerID", customerID).Int64("amountCents", req.AmountCents).Msg("Credit adjustment would overdraw balance")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("customerID", customerID).
		Int64("amountCents", req.AmountCents).
		Int64("balanceCents", tx.BalanceAfterCents).
		Int64("by", actor.UserID).
		Msg("Credit adjusted")
	events.Emit(ctx, s.events, events.SubjectCreditAdjusted, tx)
	return tx, nil
}

// refundBooking records the refund of a cancelled booking and credits it
// when the booking's enrollment is paid. Refunds on unpaid enrollments are
// held on the booking until the payment settles. It reports whether credit
// was issued now.
func refundBooking(ctx context.Context, bookings BookingStore, credit CreditStore, b *models.Booking, change models.CreditChange) (bool, error) {
	issue := b.EnrollmentStatus == models.EnrollmentActive
	if err := bookings.RecordRefund(ctx, b.ID, change.AmountCents, issue); err != nil {
		return false, err
	}
	if !issue {
		return false, nil
	}
	if _, err := credit.Apply(ctx, change); err != nil {
		return false, err
	}
	return true, nil
}
