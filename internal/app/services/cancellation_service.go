package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/email"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// CancellationService handles requests to give up single bookings
type CancellationService struct {
	tx            Transactor
	cancellations CancellationStore
	bookings      BookingStore
	classes       ClassStore
	customers     CustomerStore
	credit        CreditStore
	mailer        email.EmailService
	events        events.Publisher
	settings      Settings
	logger        zerolog.Logger
	now           func() time.Time
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(
	tx Transactor,
	cancellations CancellationStore,
	bookings BookingStore,
	classes ClassStore,
	customers CustomerStore,
	credit CreditStore,
	mailer email.EmailService,
	publisher events.Publisher,
	settings Settings,
	logger zerolog.Logger,
) *CancellationService {
	return &CancellationService{
		tx:            tx,
		cancellations: cancellations,
		bookings:      bookings,
		classes:       classes,
		customers:     customers,
		credit:        credit,
		mailer:        mailer,
		events:        publisher,
		settings:      settings,
		logger:        logger,
		now:           time.Now,
	}
}

// Request asks for one of the caller's bookings to be cancelled
func (s *CancellationService) Request(ctx context.Context, userID, bookingID int64, req *dto.CancellationRequest) (*models.Cancellation, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customer.ID {
		return nil, apperrors.ErrBookingNotFound
	}
	if booking.Status != models.BookingBooked {
		return nil, fmt.Errorf("%w: booking is %s", apperrors.ErrInvalidStatus, booking.Status)
	}

	start, err := helpers.SessionStart(booking.SessionDate, booking.StartTime, s.settings.Location)
	if err != nil {
		return nil, err
	}
	if start.Sub(s.now()) < s.settings.CancellationNotice {
		s.logger.Warn().Int64("bookingID", bookingID).Time("sessionStart", start).Msg("Cancellation requested inside notice period")
		return nil, apperrors.ErrCancellationTooLate
	}

	x := &models.Cancellation{
		BookingID:  bookingID,
		CustomerID: customer.ID,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     models.ReviewPending,
	}
	id, err := s.cancellations.Create(ctx, x)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("cancellationID", id).Int64("bookingID", bookingID).Msg("Cancellation requested")
	events.Emit(ctx, s.events, events.SubjectCancellationRequested, map[string]interface{}{
		"cancellationId": id,
		"bookingId":      bookingID,
		"customerId":     customer.ID,
	})
	return s.cancellations.GetByID(ctx, id)
}

// ListMine returns the caller's cancellation requests
func (s *CancellationService) ListMine(ctx context.Context, userID int64, filter dto.ListFilter) ([]*models.Cancellation, int64, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.cancellations.List(ctx, filter, customer.ID)
}

// List returns cancellation requests for review
func (s *CancellationService) List(ctx context.Context, filter dto.ListFilter) ([]*models.Cancellation, int64, error) {
	return s.cancellations.List(ctx, filter, 0)
}

// Approve cancels the booking and credits the refund, or holds it on the
// booking while the enrollment is unpaid. The status change is guarded on
// PENDING, so a request is approved and credited at most once.
func (s *CancellationService) Approve(ctx context.Context, actor Actor, id int64, req *dto.ApproveCancellationRequest) (*models.Cancellation, error) {
	notes := strings.TrimSpace(req.Notes)
	var (
		refund int64
		held   bool
	)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		x, err := s.cancellations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if x.Status != models.ReviewPending {
			return apperrors.ErrAlreadyReviewed
		}
		booking, err := s.bookings.GetByID(ctx, x.BookingID)
		if err != nil {
			return err
		}

		if req.CreditOverrideCents != nil {
			refund = *req.CreditOverrideCents
		} else {
			class, err := s.classes.GetByID(ctx, booking.ClassID, s.settings.Today(s.now()))
			if err != nil {
				return err
			}
			refund = class.RefundPerSession()
		}

		if err := s.cancellations.Review(ctx, id, models.ReviewApproved, refund, notes, actor.UserID, s.now()); err != nil {
			return err
		}

		if err := s.bookings.Cancel(ctx, booking.ID); err != nil {
			if !errors.Is(err, apperrors.ErrInvalidStatus) {
				return err
			}
			// The session was cancelled meanwhile and already credited
			refund = 0
			if err := s.cancellations.SetRefund(ctx, id, 0); err != nil {
				return err
			}
		}

		if refund == 0 {
			return nil
		}
		issued, err := refundBooking(ctx, s.bookings, s.credit, booking, models.CreditChange{
			CustomerID:  x.CustomerID,
			AmountCents: refund,
			Reason:      models.CreditCancellationRefund,
			Note:        fmt.Sprintf("%s on %s", x.ClassName, x.SessionDate.Format(helpers.DateLayout)),
			ReferenceID: &id,
			CreatedBy:   &actor.UserID,
		})
		held = !issued
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyReviewed) {
			s.logger.Warn().Int64("cancellationID", id).Int64("by", actor.UserID).Msg("Cancellation already reviewed")
		}
		return nil, err
	}

	s.logger.Info().Int64("cancellationID", id).Int64("refundCents", refund).Bool("refundHeld", held).Int64("by", actor.UserID).Msg("Cancellation approved")
	return s.finishReview(ctx, id, events.SubjectCancellationApproved, true, refund, notes)
}

// Reject closes a pending request and leaves the booking in place
func (s *CancellationService) Reject(ctx context.Context, actor Actor, id int64, req *dto.RejectCancellationRequest) (*models.Cancellation, error) {
	notes := strings.TrimSpace(req.Notes)
	if err := s.cancellations.Review(ctx, id, models.ReviewRejected, 0, notes, actor.UserID, s.now()); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyReviewed) {
			if _, getErr := s.cancellations.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
		}
		return nil, err
	}
	s.logger.Info().Int64("cancellationID", id).Int64("by", actor.UserID).Msg("Cancellation rejected")
	return s.finishReview(ctx, id, events.SubjectCancellationRejected, false, 0, notes)
}

func (s *CancellationService) finishReview(ctx context.Context, id int64, subject string, approved bool, refund int64, notes string) (*models.Cancellation, error) {
	x, err := s.cancellations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, subject, map[string]interface{}{
		"cancellationId": id,
		"customerId":     x.CustomerID,
		"refundCents":    refund,
	})

	if s.mailer != nil {
		customer, err := s.customers.GetByID(ctx, x.CustomerID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("cancellationID", id).Msg("Failed to load customer for cancellation email")
			return x, nil
		}
		err = s.mailer.SendCancellationDecision(customer.Email, customer.FullName(), email.CancellationDecision{
			ClassName:   x.ClassName,
			SessionDate: x.SessionDate.Format(helpers.DateLayout),
			Approved:    approved,
			CreditCents: refund,
			Notes:       notes,
		})
		if err != nil {
			s.logger.Warn().Err(err).Int64("cancellationID", id).Msg("Failed to send cancellation decision")
		}
	}
	return x, nil
}
