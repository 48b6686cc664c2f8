package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/email"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/payments"
)

// EnrollmentService prices, creates and cancels enrollments
type EnrollmentService struct {
	tx          Transactor
	customers   CustomerStore
	terms       TermStore
	classes     ClassStore
	sessions    SessionStore
	enrollments EnrollmentStore
	bookings    BookingStore
	payments    PaymentStore
	credit      CreditStore
	gateway     payments.Gateway
	mailer      email.EmailService
	events      events.Publisher
	settings    Settings
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	tx Transactor,
	customers CustomerStore,
	terms TermStore,
	classes ClassStore,
	sessions SessionStore,
	enrollments EnrollmentStore,
	bookings BookingStore,
	paymentStore PaymentStore,
	credit CreditStore,
	gateway payments.Gateway,
	mailer email.EmailService,
	publisher events.Publisher,
	settings Settings,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		tx:          tx,
		customers:   customers,
		terms:       terms,
		classes:     classes,
		sessions:    sessions,
		enrollments: enrollments,
		bookings:    bookings,
		payments:    paymentStore,
		credit:      credit,
		gateway:     gateway,
		mailer:      mailer,
		events:      publisher,
		settings:    settings,
		logger:      logger,
		now:         time.Now,
	}
}

// enrollmentPlan is a validated, priced request
type enrollmentPlan struct {
	term     *models.Term
	classes  []*models.Class
	sessions map[int64][]*models.Session
	quote    *dto.EnrollmentQuote
}

func validateClassIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one class must be selected", apperrors.ErrValidationFailed)
	}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: invalid class id %d", apperrors.ErrValidationFailed, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: class %d selected twice", apperrors.ErrValidationFailed, id)
		}
		seen[id] = true
	}
	return nil
}

func (s *EnrollmentService) checkCustomer(customer *models.Customer, now time.Time) error {
	if customer.IsBlocked {
		return apperrors.ErrAccountBlocked
	}
	if !customer.HasValidPAQ(now) {
		return apperrors.ErrPAQNotApproved
	}
	return nil
}

// plan applies the enrollment rules in order and prices the result. With
// lock set the classes are read FOR UPDATE, so ctx must carry a transaction.
func (s *EnrollmentService) plan(ctx context.Context, customer *models.Customer, req *dto.EnrollmentRequest, lock bool) (*enrollmentPlan, error) {
	now := s.now()
	today := s.settings.Today(now)

	if err := validateClassIDs(req.ClassIDs); err != nil {
		return nil, err
	}
	if err := s.checkCustomer(customer, now); err != nil {
		return nil, err
	}

	term, err := s.terms.GetByID(ctx, req.TermID)
	if err != nil {
		return nil, err
	}
	if !term.EnrollmentOpen || term.EndDate.Before(today) {
		return nil, apperrors.ErrEnrollmentClosed
	}

	classes, err := s.loadClasses(ctx, req.ClassIDs, today, lock)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		if !c.IsActive || c.TermID != term.ID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrClassUnavailable, c.Name)
		}
	}

	upcoming, err := s.sessions.UpcomingByClass(ctx, req.ClassIDs, today)
	if err != nil {
		return nil, err
	}
	var sessionIDs []int64
	for _, c := range classes {
		if len(upcoming[c.ID]) == 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoUpcomingSessions, c.Name)
		}
		for _, sess := range upcoming[c.ID] {
			sessionIDs = append(sessionIDs, sess.ID)
		}
	}

	booked, err := s.bookings.ActiveSessionIDs(ctx, customer.ID, sessionIDs)
	if err != nil {
		return nil, err
	}
	if len(booked) > 0 {
		return nil, fmt.Errorf("%w: session %d", apperrors.ErrAlreadyBooked, booked[0])
	}

	counts, err := s.bookings.BookedCounts(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		for _, sess := range upcoming[c.ID] {
			if counts[sess.ID] >= c.Capacity {
				return nil, fmt.Errorf("%w: %s on %s", apperrors.ErrClassFull, c.Name, sess.SessionDate.Format("2006-01-02"))
			}
		}
	}

	quote := &dto.EnrollmentQuote{TermID: term.ID, Lines: make([]dto.QuoteLine, 0, len(classes))}
	for _, c := range classes {
		line := dto.QuoteLine{
			ClassID:              c.ID,
			ClassName:            c.Name,
			Sessions:             len(upcoming[c.ID]),
			PricePerSessionCents: c.PricePerSessionCents,
		}
		for _, sess := range upcoming[c.ID] {
			line.SessionIDs = append(line.SessionIDs, sess.ID)
		}
		line.SubtotalCents = int64(line.Sessions) * c.PricePerSessionCents
		quote.TotalCents += line.SubtotalCents
		quote.Lines = append(quote.Lines, line)
	}

	balance, err := s.credit.Balance(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	quote.CreditAvailableCents = balance
	if req.UseCredit {
		quote.CreditAppliedCents = min(balance, quote.TotalCents)
	}
	quote.AmountDueCents = quote.TotalCents - quote.CreditAppliedCents

	return &enrollmentPlan{term: term, classes: classes, sessions: upcoming, quote: quote}, nil
}

// loadClasses returns the classes in request order
func (s *EnrollmentService) loadClasses(ctx context.Context, ids []int64, today time.Time, lock bool) ([]*models.Class, error) {
	if !lock {
		classes := make([]*models.Class, 0, len(ids))
		for _, id := range ids {
			c, err := s.classes.GetByID(ctx, id, today)
			if err != nil {
				return nil, err
			}
			classes = append(classes, c)
		}
		return classes, nil
	}

	locked, err := s.classes.LockForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Class, len(locked))
	for _, c := range locked {
		byID[c.ID] = c
	}
	classes := make([]*models.Class, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", apperrors.ErrClassNotFound, id)
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// Quote prices an enrollment without writing anything
func (s *EnrollmentService) Quote(ctx context.Context, userID int64, req *dto.EnrollmentRequest) (*dto.EnrollmentQuote, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.plan(ctx, customer, req, false)
	if err != nil {
		return nil, err
	}
	return p.quote, nil
}

// EnrollSelf enrolls the customer linked to the caller; customers pay by card
func (s *EnrollmentService) EnrollSelf(ctx context.Context, actor Actor, req *dto.EnrollmentRequest) (*dto.EnrollmentResult, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCard
	}
	if req.PaymentMethod != models.PaymentCard {
		return nil, fmt.Errorf("%w: customers pay by card", apperrors.ErrValidationFailed)
	}
	customer, err := s.customers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.enroll(ctx, actor, customer, req)
}

// EnrollOnBehalf lets staff enroll a customer and record a counter payment
func (s *EnrollmentService) EnrollOnBehalf(ctx context.Context, actor Actor, req *dto.AdminEnrollmentRequest) (*dto.EnrollmentResult, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}
	switch req.PaymentMethod {
	case models.PaymentCard, models.PaymentCash, models.PaymentBankTransfer:
	default:
		return nil, fmt.Errorf("%w: unsupported payment method %s", apperrors.ErrValidationFailed, req.PaymentMethod)
	}
	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	return s.enroll(ctx, actor, customer, &req.EnrollmentRequest)
}

// enroll writes the enrollment, bookings, credit debit and payment in one
// transaction. Class rows stay locked until commit, so concurrent enrollments
// into the same class are checked against each other's bookings.
func (s *EnrollmentService) enroll(ctx context.Context, actor Actor, customer *models.Customer, req *dto.EnrollmentRequest) (*dto.EnrollmentResult, error) {
	// Cheap rejections before a transaction is opened
	if err := validateClassIDs(req.ClassIDs); err != nil {
		return nil, err
	}
	if err := s.checkCustomer(customer, s.now()); err != nil {
		s.logger.Warn().Int64("customerID", customer.ID).Err(err).Msg("Enrollment rejected")
		return nil, err
	}

	var (
		result   = &dto.EnrollmentResult{}
		plan     *enrollmentPlan
		intentID string
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		plan, err = s.plan(ctx, customer, req, true)
		if err != nil {
			return err
		}
		quote := plan.quote

		enrollment := &models.Enrollment{
			CustomerID:         customer.ID,
			TermID:             plan.term.ID,
			Status:             models.EnrollmentActive,
			TotalCents:         quote.TotalCents,
			CreditAppliedCents: quote.CreditAppliedCents,
			CreatedBy:          &actor.UserID,
		}
		if quote.AmountDueCents > 0 && req.PaymentMethod == models.PaymentCard {
			enrollment.Status = models.EnrollmentPendingPayment
		}
		enrollmentID, err := s.enrollments.Create(ctx, enrollment)
		if err != nil {
			return err
		}
		enrollment.ID = enrollmentID

		var bookings []*models.Booking
		for _, c := range plan.classes {
			for _, sess := range plan.sessions[c.ID] {
				bookings = append(bookings, &models.Booking{
					EnrollmentID: enrollmentID,
					CustomerID:   customer.ID,
					ClassID:      c.ID,
					SessionID:    sess.ID,
				})
			}
		}
		if err := s.bookings.CreateBatch(ctx, bookings); err != nil {
			return err
		}
		enrollment.Bookings = bookings

		if quote.CreditAppliedCents > 0 {
			if _, err := s.credit.Apply(ctx, models.CreditChange{
				CustomerID:  customer.ID,
				AmountCents: -quote.CreditAppliedCents,
				Reason:      models.CreditEnrollmentPayment,
				Note:        fmt.Sprintf("Enrollment #%d", enrollmentID),
				ReferenceID: &enrollmentID,
				CreatedBy:   &actor.UserID,
			}); err != nil {
				return err
			}
		}

		payment, err := s.recordPayment(ctx, enrollment, req.PaymentMethod, quote, &intentID)
		if err != nil {
			return err
		}
		enrollment.Payments = []*models.Payment{payment}

		result.Enrollment = enrollment
		result.Payment = payment
		result.Quote = quote
		return nil
	})
	if err != nil {
		if intentID != "" {
			s.voidIntent(ctx, intentID)
		}
		if errors.Is(err, apperrors.ErrClassFull) || errors.Is(err, apperrors.ErrAlreadyBooked) {
			s.logger.Warn().Int64("customerID", customer.ID).Err(err).Msg("Enrollment rejected")
		}
		return nil, err
	}

	result.Enrollment.CustomerName = customer.FullName()
	s.logger.Info().
		Int64("enrollmentID", result.Enrollment.ID).
		Int64("customerID", customer.ID).
		Int("bookings", len(result.Enrollment.Bookings)).
		Int64("totalCents", result.Quote.TotalCents).
		Int64("creditCents", result.Quote.CreditAppliedCents).
		Str("status", string(result.Enrollment.Status)).
		Msg("Enrollment created")

	events.Emit(ctx, s.events, events.SubjectEnrollmentCreated, map[string]interface{}{
		"enrollmentId": result.Enrollment.ID,
		"customerId":   customer.ID,
		"termId":       plan.term.ID,
		"totalCents":   result.Quote.TotalCents,
		"status":       result.Enrollment.Status,
	})
	s.sendConfirmation(customer, plan, result.Enrollment)
	return result, nil
}

// recordPayment inserts the payment row for a new enrollment. A card intent
// created on the way is reported through intentID.
func (s *EnrollmentService) recordPayment(ctx context.Context, e *models.Enrollment, method models.PaymentMethod, quote *dto.EnrollmentQuote, intentID *string) (*models.Payment, error) {
	payment := &models.Payment{
		EnrollmentID: e.ID,
		CustomerID:   e.CustomerID,
		AmountCents:  quote.AmountDueCents,
		Method:       method,
		Status:       models.PaymentSucceeded,
	}

	switch {
	case quote.AmountDueCents == 0:
		payment.Method = models.PaymentCredit
		payment.AmountCents = quote.CreditAppliedCents
	case method == models.PaymentCard:
		intent, err := s.gateway.CreateIntent(ctx, quote.AmountDueCents, s.settings.Currency, map[string]string{
			"enrollment_id": strconv.FormatInt(e.ID, 10),
			"customer_id":   strconv.FormatInt(e.CustomerID, 10),
		})
		if err != nil {
			s.logger.Error().Err(err).Int64("enrollmentID", e.ID).Str("gateway", s.gateway.Name()).Msg("Failed to create payment intent")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
		}
		*intentID = intent.ID
		payment.Status = models.PaymentPending
		payment.ProviderReference = &intent.ID
		payment.ClientSecret = intent.ClientSecret
	}

	id, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = id
	return payment, nil
}

// voidIntent cancels a card intent whose enrollment was rolled back
func (s *EnrollmentService) voidIntent(ctx context.Context, intentID string) {
	if err := s.gateway.CancelIntent(context.WithoutCancel(ctx), intentID); err != nil {
		s.logger.Error().Err(err).Str("intentID", intentID).Str("gateway", s.gateway.Name()).Msg("Failed to cancel orphaned payment intent")
		return
	}
	s.logger.Warn().Str("intentID", intentID).Msg("Payment intent cancelled after enrollment rollback")
}

func (s *EnrollmentService) sendConfirmation(customer *models.Customer, plan *enrollmentPlan, e *models.Enrollment) {
	if s.mailer == nil {
		return
	}
	names := make([]string, 0, len(plan.classes))
	for _, c := range plan.classes {
		names = append(names, c.Name)
	}
	err := s.mailer.SendEnrollmentConfirmation(customer.Email, customer.FullName(), email.EnrollmentSummary{
		EnrollmentID:   e.ID,
		TermName:       plan.term.Name,
		Classes:        names,
		TotalCents:     e.TotalCents,
		CreditCents:    e.CreditAppliedCents,
		AmountDueCents: e.AmountDueCents(),
		Status:         string(e.Status),
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("enrollmentID", e.ID).Msg("Failed to send enrollment confirmation")
	}
}

// Get returns an enrollment with its bookings and payments
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	e, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Bookings, err = s.bookings.ListByEnrollment(ctx, id); err != nil {
		return nil, err
	}
	if e.Payments, err = s.payments.ListByEnrollment(ctx, id); err != nil {
		return nil, err
	}
	return e, nil
}

// GetMine returns an enrollment owned by the caller; others' enrollments are not found
func (s *EnrollmentService) GetMine(ctx context.Context, userID, id int64) (*models.Enrollment, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CustomerID != customer.ID {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

// ListMine returns the caller's enrollments
func (s *EnrollmentService) ListMine(ctx context.Context, userID int64, filter dto.ListFilter) ([]*models.Enrollment, int64, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.enrollments.List(ctx, dto.EnrollmentFilter{ListFilter: filter, CustomerID: customer.ID})
}

// List returns enrollments for staff
func (s *EnrollmentService) List(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error) {
	return s.enrollments.List(ctx, filter)
}

// Cancel cancels an enrollment and its active bookings. With refundAsCredit
// the credit used plus every settled non-credit payment goes back to the
// customer, less the credit already issued for its cancelled bookings.
func (s *EnrollmentService) Cancel(ctx context.Context, actor Actor, id int64, req *dto.CancelEnrollmentRequest) (*models.Enrollment, error) {
	var refund int64
	var customerID int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		e, err := s.enrollments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e.Status == models.EnrollmentCancelled {
			return fmt.Errorf("%w: enrollment is already cancelled", apperrors.ErrInvalidStatus)
		}
		customerID = e.CustomerID

		if err := s.enrollments.UpdateStatus(ctx, id, e.Status, models.EnrollmentCancelled); err != nil {
			return err
		}
		if _, err := s.bookings.CancelByEnrollment(ctx, id); err != nil {
			return err
		}

		pays, err := s.payments.ListByEnrollment(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range pays {
			if p.Status == models.PaymentPending {
				if err := s.payments.UpdateStatus(ctx, p.ID, models.PaymentPending, models.PaymentFailed, nil); err != nil {
					return err
				}
			}
		}

		if req == nil || !req.RefundAsCredit {
			return nil
		}
		paid, err := s.payments.SumSucceeded(ctx, id)
		if err != nil {
			return err
		}
		credited, err := s.bookings.RefundedCents(ctx, id)
		if err != nil {
			return err
		}
		refund = max(e.CreditAppliedCents+paid-credited, 0)
		if refund == 0 {
			return nil
		}
		_, err = s.credit.Apply(ctx, models.CreditChange{
			CustomerID:  e.CustomerID,
			AmountCents: refund,
			Reason:      models.CreditEnrollmentRefund,
			Note:        fmt.Sprintf("Enrollment #%d cancelled", id),
			ReferenceID: &id,
			CreatedBy:   &actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("enrollmentID", id).Int64("refundCents", refund).Int64("by", actor.UserID).Msg("Enrollment cancelled")
	events.Emit(ctx, s.events, events.SubjectEnrollmentCancelled, map[string]interface{}{
		"enrollmentId": id,
		"customerId":   customerID,
		"refundCents":  refund,
	})
	return s.Get(ctx, id)
}
