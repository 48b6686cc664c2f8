package services

import (
	"context"
	"testing"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/helpers"
	"github.com/sharecrm/share/internal/pkg/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classRequest(termID, venueID int64) *dto.ClassRequest {
	return &dto.ClassRequest{
		Name:                 " Chair Pilates ",
		TermID:               termID,
		VenueID:              venueID,
		Weekday:              ptr(int(time.Wednesday)),
		StartTime:            "09:30",
		EndTime:              "10:30",
		Capacity:             12,
		PricePerSessionCents: 900,
	}
}

func TestClassCreate_Validation(t *testing.T) {
	f := newFixture()
	term := f.addTerm()
	venue := &models.Venue{ID: f.db.id(), Name: "Hall", IsActive: true}
	f.db.venues[venue.ID] = venue
	svc := f.classService()

	created, err := svc.Create(context.Background(), classRequest(term.ID, venue.ID))
	require.NoError(t, err)
	assert.Equal(t, "Chair Pilates", created.Name)
	assert.True(t, created.IsActive)

	tests := []struct {
		name   string
		mutate func(r *dto.ClassRequest)
		want   error
	}{
		{"bad clock", func(r *dto.ClassRequest) { r.StartTime = "9:30" }, apperrors.ErrValidationFailed},
		{"end before start", func(r *dto.ClassRequest) { r.EndTime = "09:00" }, apperrors.ErrValidationFailed},
		{"weekday out of range", func(r *dto.ClassRequest) { r.Weekday = ptr(7) }, apperrors.ErrValidationFailed},
		{"zero capacity", func(r *dto.ClassRequest) { r.Capacity = 0 }, apperrors.ErrValidationFailed},
		{"negative price", func(r *dto.ClassRequest) { r.PricePerSessionCents = -1 }, apperrors.ErrValidationFailed},
		{"unknown term", func(r *dto.ClassRequest) { r.TermID = 9999 }, apperrors.ErrTermNotFound},
		{"unknown venue", func(r *dto.ClassRequest) { r.VenueID = 9999 }, apperrors.ErrVenueNotFound},
		{"unknown instructor", func(r *dto.ClassRequest) { r.InstructorID = ptr(int64(9999)) }, apperrors.ErrInstructorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := classRequest(term.ID, venue.ID)
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateSessions(t *testing.T) {
	f := newFixture()
	term := f.addTerm() // 2026-02-02 (Mon) .. 2026-03-29 (Sun)
	venue := &models.Venue{ID: f.db.id(), Name: "Hall", IsActive: true}
	f.db.venues[venue.ID] = venue
	svc := f.classService()

	class, err := svc.Create(context.Background(), classRequest(term.ID, venue.ID))
	require.NoError(t, err)

	resp, err := svc.GenerateSessions(context.Background(), class.ID, &dto.GenerateSessionsRequest{SkipDates: []string{"2026-02-18"}})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Created)
	for _, s := range resp.Sessions {
		assert.Equal(t, time.Wednesday, s.SessionDate.Weekday())
		assert.NotEqual(t, "2026-02-18", s.SessionDate.Format(helpers.DateLayout))
	}

	again, err := svc.GenerateSessions(context.Background(), class.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Created, "only the skipped date is new")
	assert.NotNil(t, again.Sessions)

	_, err = svc.GenerateSessions(context.Background(), class.ID, &dto.GenerateSessionsRequest{SkipDates: []string{"18/02/2026"}})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateSession_CancelCreditsBookedCustomers(t *testing.T) {
	f := newFixture()
	_, jo, class, bookings := bookedCustomer(t, f, 1100, false)
	_, pat := f.addCustomer("Pat", 0)
	sessionID := bookings[0].SessionID
	patEnrollment := &models.Enrollment{ID: f.db.id(), CustomerID: pat.ID, TermID: class.TermID, Status: models.EnrollmentActive}
	f.db.enrollments[patEnrollment.ID] = patEnrollment
	patBooking := &models.Booking{ID: f.db.id(), EnrollmentID: patEnrollment.ID, CustomerID: pat.ID, ClassID: class.ID, SessionID: sessionID, Status: models.BookingBooked}
	f.db.bookings[patBooking.ID] = patBooking
	svc := f.classService()

	result, err := svc.UpdateSession(context.Background(), staffActor(), sessionID, &dto.UpdateSessionRequest{
		Status: models.SessionCancelled,
		Notes:  ptr("Hall flooded"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionCancelled, result.Session.Status)
	assert.Equal(t, "Hall flooded", result.Session.Notes)
	assert.Equal(t, 2, result.BookingsCancelled)
	assert.Equal(t, int64(2200), result.CreditIssuedCents)
	assert.Zero(t, result.CreditHeldCents)
	assert.Equal(t, int64(1100), f.db.customers[jo.ID].CreditCents)
	assert.Equal(t, int64(1100), f.db.customers[pat.ID].CreditCents)
	assert.True(t, f.published(events.SubjectSessionCancelled))

	credits := f.db.ledgerFor(jo.ID, models.CreditSessionCancelled)
	require.Len(t, credits, 1)
	assert.Equal(t, bookings[0].ID, *credits[0].ReferenceID)

	// Other sessions keep their bookings
	assert.Equal(t, models.BookingBooked, f.db.bookings[bookings[1].ID].Status)
}

func TestUpdateSession_CancelHoldsRefundUntilPaid(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 0)
	term := f.addTerm()
	class := f.addClass(term, "Gentle Yoga", 1000, 10, 2)
	gateway := payments.NewOfflineGateway()

	enrolled, err := f.enrollmentService(gateway).EnrollSelf(context.Background(), customerActor(u),
		&dto.EnrollmentRequest{TermID: term.ID, ClassIDs: []int64{class.ID}})
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentPendingPayment, enrolled.Enrollment.Status)
	first := enrolled.Enrollment.Bookings[0]

	result, err := f.classService().UpdateSession(context.Background(), staffActor(), first.SessionID,
		&dto.UpdateSessionRequest{Status: models.SessionCancelled})
	require.NoError(t, err)
	assert.Equal(t, 1, result.BookingsCancelled)
	assert.Zero(t, result.CreditIssuedCents)
	assert.Equal(t, int64(1000), result.CreditHeldCents)
	assert.Zero(t, f.db.customers[c.ID].CreditCents, "nothing is credited before the card payment settles")
	assert.Equal(t, int64(1000), f.db.bookings[first.ID].RefundCents)
	assert.Nil(t, f.db.bookings[first.ID].RefundedAt)

	_, err = f.paymentService(gateway).Confirm(context.Background(), u.ID, enrolled.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), f.db.customers[c.ID].CreditCents)
	require.Len(t, f.db.ledgerFor(c.ID, models.CreditHeldRefund), 1)
	assert.NotNil(t, f.db.bookings[first.ID].RefundedAt)

	// Cancelling the paid enrollment refunds only the session still booked
	_, err = f.enrollmentService(gateway).Cancel(context.Background(), staffActor(), enrolled.Enrollment.ID,
		&dto.CancelEnrollmentRequest{RefundAsCredit: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), f.db.customers[c.ID].CreditCents)
}

func TestUpdateSession_UnpaidEnrollmentForfeitsHeldRefund(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 0)
	term := f.addTerm()
	class := f.addClass(term, "Gentle Yoga", 1000, 10, 2)
	gateway := payments.NewOfflineGateway()
	enrollments := f.enrollmentService(gateway)

	enrolled, err := enrollments.EnrollSelf(context.Background(), customerActor(u),
		&dto.EnrollmentRequest{TermID: term.ID, ClassIDs: []int64{class.ID}})
	require.NoError(t, err)

	_, err = f.classService().UpdateSession(context.Background(), staffActor(), enrolled.Enrollment.Bookings[0].SessionID,
		&dto.UpdateSessionRequest{Status: models.SessionCancelled})
	require.NoError(t, err)

	_, err = enrollments.Cancel(context.Background(), staffActor(), enrolled.Enrollment.ID, &dto.CancelEnrollmentRequest{RefundAsCredit: true})
	require.NoError(t, err)

	_, err = f.paymentService(gateway).Confirm(context.Background(), u.ID, enrolled.Payment.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Zero(t, f.db.customers[c.ID].CreditCents)
	assert.Empty(t, f.db.ledgerFor(c.ID, models.CreditHeldRefund))
}

func TestUpdateSession_CancelSubsidisedIssuesNoCredit(t *testing.T) {
	f := newFixture()
	_, jo, _, bookings := bookedCustomer(t, f, 400, true)

	result, err := f.classService().UpdateSession(context.Background(), staffActor(), bookings[0].SessionID,
		&dto.UpdateSessionRequest{Status: models.SessionCancelled})
	require.NoError(t, err)
	assert.Equal(t, 1, result.BookingsCancelled)
	assert.Equal(t, int64(0), result.CreditIssuedCents)
	assert.Equal(t, int64(0), f.db.customers[jo.ID].CreditCents)
}

func TestUpdateSession_Transitions(t *testing.T) {
	f := newFixture()
	_, jo, _, bookings := bookedCustomer(t, f, 1000, false)
	svc := f.classService()
	sessionID := bookings[0].SessionID

	_, err := svc.UpdateSession(context.Background(), staffActor(), sessionID, &dto.UpdateSessionRequest{Status: models.SessionCompleted})
	require.NoError(t, err)

	// Notes may still change on a completed session
	result, err := svc.UpdateSession(context.Background(), staffActor(), sessionID, &dto.UpdateSessionRequest{
		Status: models.SessionCompleted,
		Notes:  ptr("great turnout"),
	})
	require.NoError(t, err)
	assert.Equal(t, "great turnout", result.Session.Notes)

	_, err = svc.UpdateSession(context.Background(), staffActor(), sessionID, &dto.UpdateSessionRequest{Status: models.SessionCancelled})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Equal(t, int64(0), f.db.customers[jo.ID].CreditCents)
}
