package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/payments"
)

// PaymentService settles enrollment payments
type PaymentService struct {
	tx          Transactor
	payments    PaymentStore
	enrollments EnrollmentStore
	customers   CustomerStore
	bookings    BookingStore
	credit      CreditStore
	gateway     payments.Gateway
	events      events.Publisher
	logger      zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	tx Transactor,
	paymentStore PaymentStore,
	enrollments EnrollmentStore,
	customers CustomerStore,
	bookings BookingStore,
	credit CreditStore,
	gateway payments.Gateway,
	publisher events.Publisher,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		tx:          tx,
		payments:    paymentStore,
		enrollments: enrollments,
		customers:   customers,
		bookings:    bookings,
		credit:      credit,
		gateway:     gateway,
		events:      publisher,
		logger:      logger,
	}
}

// Confirm checks a card payment with the gateway and settles it
func (s *PaymentService) Confirm(ctx context.Context, userID, paymentID int64) (*dto.PaymentConfirmation, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.CustomerID != customer.ID {
		return nil, apperrors.ErrPaymentNotFound
	}
	if payment.Method != models.PaymentCard || payment.ProviderReference == nil {
		return nil, fmt.Errorf("%w: only card payments are confirmed online", apperrors.ErrInvalidStatus)
	}
	if payment.Status != models.PaymentPending {
		return nil, fmt.Errorf("%w: payment is %s", apperrors.ErrInvalidStatus, payment.Status)
	}

	intent, err := s.gateway.GetIntent(ctx, *payment.ProviderReference)
	if err != nil {
		s.logger.Error().Err(err).Int64("paymentID", paymentID).Str("gateway", s.gateway.Name()).Msg("Failed to fetch payment intent")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}

	switch intent.Status {
	case payments.IntentSucceeded:
		if intent.AmountCents != payment.AmountCents {
			s.logger.Error().Int64("paymentID", paymentID).Int64("intentCents", intent.AmountCents).Int64("paymentCents", payment.AmountCents).Msg("Payment intent amount mismatch")
			return nil, fmt.Errorf("%w: amount mismatch", apperrors.ErrPaymentNotConfirmed)
		}
		if err := s.settle(ctx, payment, nil, userID); err != nil {
			return nil, err
		}
	case payments.IntentCanceled, payments.IntentFailed:
		if err := s.payments.UpdateStatus(ctx, payment.ID, models.PaymentPending, models.PaymentFailed, nil); err != nil {
			return nil, err
		}
		s.logger.Warn().Int64("paymentID", paymentID).Str("intentStatus", string(intent.Status)).Msg("Card payment failed")
		events.Emit(ctx, s.events, events.SubjectPaymentFailed, map[string]interface{}{
			"paymentId":    payment.ID,
			"enrollmentId": payment.EnrollmentID,
		})
	}

	return s.confirmation(ctx, payment.ID, string(intent.Status))
}

// MarkPaid records a counter payment for a pending payment
func (s *PaymentService) MarkPaid(ctx context.Context, actor Actor, paymentID int64, req *dto.MarkPaidRequest) (*dto.PaymentConfirmation, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return nil, fmt.Errorf("%w: payment is %s", apperrors.ErrInvalidStatus, payment.Status)
	}
	method := models.PaymentCash
	if req != nil && req.Method != "" {
		method = req.Method
	}
	if err := s.settle(ctx, payment, &method, actor.UserID); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("paymentID", paymentID).Str("method", string(method)).Int64("by", actor.UserID).Msg("Payment marked as paid")
	return s.confirmation(ctx, payment.ID, "")
}

// settle moves the payment to SUCCEEDED and activates its enrollment
// together. Refunds held on the enrollment's cancelled bookings are credited
// in the same transaction.
func (s *PaymentService) settle(ctx context.Context, payment *models.Payment, method *models.PaymentMethod, by int64) error {
	var released int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.UpdateStatus(ctx, payment.ID, models.PaymentPending, models.PaymentSucceeded, method); err != nil {
			return err
		}
		if err := s.enrollments.UpdateStatus(ctx, payment.EnrollmentID, models.EnrollmentPendingPayment, models.EnrollmentActive); err != nil {
			return err
		}

		held, err := s.bookings.SettleRefunds(ctx, payment.EnrollmentID)
		if err != nil {
			return err
		}
		for _, b := range held {
			bookingID := b.ID
			if _, err := s.credit.Apply(ctx, models.CreditChange{
				CustomerID:  b.CustomerID,
				AmountCents: b.RefundCents,
				Reason:      models.CreditHeldRefund,
				Note:        fmt.Sprintf("Booking #%d cancelled before payment", b.ID),
				ReferenceID: &bookingID,
				CreatedBy:   &by,
			}); err != nil {
				return err
			}
			released += b.RefundCents
		}
		return nil
	})
	if err != nil {
		return err
	}
	if released > 0 {
		s.logger.Info().Int64("enrollmentID", payment.EnrollmentID).Int64("creditCents", released).Msg("Held booking refunds credited")
	}
	events.Emit(ctx, s.events, events.SubjectPaymentSucceeded, map[string]interface{}{
		"paymentId":    payment.ID,
		"enrollmentId": payment.EnrollmentID,
		"amountCents":  payment.AmountCents,
	})
	return nil
}

func (s *PaymentService) confirmation(ctx context.Context, paymentID int64, intentStatus string) (*dto.PaymentConfirmation, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollments.GetByID(ctx, payment.EnrollmentID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentConfirmation{
		Payment:          payment,
		EnrollmentStatus: enrollment.Status,
		IntentStatus:     intentStatus,
	}, nil
}

// List returns payments for staff
func (s *PaymentService) List(ctx context.Context, filter dto.PaymentFilter) ([]*models.Payment, int64, error) {
	return s.payments.List(ctx, filter)
}
