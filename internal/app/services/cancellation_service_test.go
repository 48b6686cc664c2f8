package services

import (
	"context"
	"testing"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookedCustomer enrolls a customer into every session of one class
func bookedCustomer(t *testing.T, f *fixture, priceCents int64, subsidised bool) (*models.User, *models.Customer, *models.Class, []*models.Booking) {
	t.Helper()
	u, c := f.addCustomer("Jo", 0)
	term := f.addTerm()
	class := f.addClass(term, "Gentle Yoga", priceCents, 10, 3)
	class.IsSubsidised = subsidised

	_, err := f.enrollmentService(nil).EnrollOnBehalf(context.Background(), staffActor(), &dto.AdminEnrollmentRequest{
		CustomerID:        c.ID,
		EnrollmentRequest: dto.EnrollmentRequest{TermID: term.ID, ClassIDs: []int64{class.ID}},
	})
	require.NoError(t, err)

	var bookings []*models.Booking
	for _, id := range sortedKeys(f.db.bookings) {
		bookings = append(bookings, f.db.bookings[id])
	}
	return u, c, class, bookings
}

func TestCancellationRequest(t *testing.T) {
	f := newFixture()
	u, c, _, bookings := bookedCustomer(t, f, 1200, false)
	other, _ := f.addCustomer("Pat", 0)
	svc := f.cancellationService()

	// The first session is 25 hours away, the notice period is 24
	x, err := svc.Request(context.Background(), u.ID, bookings[0].ID, &dto.CancellationRequest{Reason: " away "})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, x.Status)
	assert.Equal(t, c.ID, x.CustomerID)
	assert.Equal(t, "away", x.Reason)
	assert.Equal(t, "Gentle Yoga", x.ClassName)
	assert.True(t, f.published(events.SubjectCancellationRequested))

	_, err = svc.Request(context.Background(), u.ID, bookings[0].ID, &dto.CancellationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrCancellationPending)

	_, err = svc.Request(context.Background(), other.ID, bookings[1].ID, &dto.CancellationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestCancellationRequest_InsideNotice(t *testing.T) {
	f := newFixture()
	u, _, _, bookings := bookedCustomer(t, f, 1200, false)
	svc := f.cancellationService()
	svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	_, err := svc.Request(context.Background(), u.ID, bookings[0].ID, &dto.CancellationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrCancellationTooLate)

	_, err = svc.Request(context.Background(), u.ID, bookings[1].ID, &dto.CancellationRequest{})
	assert.NoError(t, err)
}

func TestCancellationApprove_CreditsOnce(t *testing.T) {
	f := newFixture()
	u, c, _, bookings := bookedCustomer(t, f, 1200, false)
	svc := f.cancellationService()

	x, err := svc.Request(context.Background(), u.ID, bookings[1].ID, &dto.CancellationRequest{})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), staffActor(), x.ID, &dto.ApproveCancellationRequest{Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, approved.Status)
	assert.Equal(t, int64(1200), approved.RefundCreditCents)
	assert.Equal(t, models.BookingCancelled, f.db.bookings[bookings[1].ID].Status)
	assert.Equal(t, int64(1200), f.db.customers[c.ID].CreditCents)

	_, err = svc.Approve(context.Background(), staffActor(), x.ID, &dto.ApproveCancellationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
	_, err = svc.Reject(context.Background(), staffActor(), x.ID, &dto.RejectCancellationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)

	assert.Equal(t, int64(1200), f.db.customers[c.ID].CreditCents)
	assert.Len(t, f.db.ledgerFor(c.ID, models.CreditCancellationRefund), 1)
	require.Len(t, f.mailer.decisions, 1)
	assert.True(t, f.mailer.decisions[0].Approved)
}

func TestCancellationApprove_SubsidisedRefundsNothing(t *testing.T) {
	f := newFixture()
	u, c, _, bookings := bookedCustomer(t, f, 500, true)
	svc := f.cancellationService()

	x, err := svc.Request(context.Background(), u.ID, bookings[1].ID, &dto.CancellationRequest{})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), staffActor(), x.ID, &dto.ApproveCancellationRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), approved.RefundCreditCents)
	assert.Equal(t, models.BookingCancelled, f.db.bookings[bookings[1].ID].Status)
	assert.Equal(t, int64(0), f.db.customers[c.ID].CreditCents)
	assert.Empty(t, f.db.ledgerFor(c.ID, models.CreditCancellationRefund))
}

func TestCancellationApprove_Override(t *testing.T) {
	f := newFixture()
	u, c, _, bookings := bookedCustomer(t, f, 1200, false)
	svc := f.cancellationService()

	x, err := svc.Request(context.Background(), u.ID, bookings[2].ID, &dto.CancellationRequest{})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), staffActor(), x.ID, &dto.ApproveCancellationRequest{CreditOverrideCents: ptr(int64(300))})
	require.NoError(t, err)
	assert.Equal(t, int64(300), approved.RefundCreditCents)
	assert.Equal(t, int64(300), f.db.customers[c.ID].CreditCents)
}

func TestCancellationApprove_AfterSessionCancelled(t *testing.T) {
	f := newFixture()
	u, c, class, bookings := bookedCustomer(t, f, 1200, false)
	svc := f.cancellationService()

	x, err := svc.Request(context.Background(), u.ID, bookings[1].ID, &dto.CancellationRequest{})
	require.NoError(t, err)

	_, err = f.classService().UpdateSession(context.Background(), staffActor(), bookings[1].SessionID,
		&dto.UpdateSessionRequest{Status: models.SessionCancelled})
	require.NoError(t, err)
	require.Equal(t, class.PricePerSessionCents, f.db.customers[c.ID].CreditCents)

	approved, err := svc.Approve(context.Background(), staffActor(), x.ID, &dto.ApproveCancellationRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), approved.RefundCreditCents)
	assert.Equal(t, int64(1200), f.db.customers[c.ID].CreditCents, "the session refund is not paid twice")
}

func TestCancellationApprove_HoldsRefundUntilPaid(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 0)
	term := f.addTerm()
	class := f.addClass(term, "Gentle Yoga", 1200, 10, 3)
	gateway := payments.NewOfflineGateway()

	enrolled, err := f.enrollmentService(gateway).EnrollSelf(context.Background(), customerActor(u),
		&dto.EnrollmentRequest{TermID: term.ID, ClassIDs: []int64{class.ID}})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPending, enrolled.Payment.Status)
	booking := enrolled.Enrollment.Bookings[1]
	svc := f.cancellationService()

	x, err := svc.Request(context.Background(), u.ID, booking.ID, &dto.CancellationRequest{})
	require.NoError(t, err)
	approved, err := svc.Approve(context.Background(), staffActor(), x.ID, &dto.ApproveCancellationRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1200), approved.RefundCreditCents)
	assert.Equal(t, models.BookingCancelled, f.db.bookings[booking.ID].Status)
	assert.Zero(t, f.db.customers[c.ID].CreditCents, "an unpaid enrollment earns no credit yet")
	assert.Empty(t, f.db.ledgerFor(c.ID, models.CreditCancellationRefund))

	_, err = f.paymentService(gateway).MarkPaid(context.Background(), staffActor(), enrolled.Payment.ID, &dto.MarkPaidRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), f.db.customers[c.ID].CreditCents)
	held := f.db.ledgerFor(c.ID, models.CreditHeldRefund)
	require.Len(t, held, 1)
	assert.Equal(t, booking.ID, *held[0].ReferenceID)
}

func TestCancellationReject(t *testing.T) {
	f := newFixture()
	u, c, _, bookings := bookedCustomer(t, f, 1200, false)
	svc := f.cancellationService()

	x, err := svc.Request(context.Background(), u.ID, bookings[1].ID, &dto.CancellationRequest{})
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), staffActor(), x.ID, &dto.RejectCancellationRequest{Notes: "too late"})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, rejected.Status)
	assert.Equal(t, models.BookingBooked, f.db.bookings[bookings[1].ID].Status)
	assert.Equal(t, int64(0), f.db.customers[c.ID].CreditCents)
	assert.True(t, f.published(events.SubjectCancellationRejected))

	mine, total, err := svc.ListMine(context.Background(), u.ID, dto.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, x.ID, mine[0].ID)
}
