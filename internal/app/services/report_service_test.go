package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/export"
	"github.com/sharecrm/share/internal/pkg/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enrollTwo enrolls Jo in two classes by bank transfer and Pat in one by card
func enrollTwo(t *testing.T, f *fixture) (*models.Term, *dto.EnrollmentResult, *dto.EnrollmentResult) {
	t.Helper()
	_, jo := f.addCustomer("Jo", 500)
	pat, _ := f.addCustomer("Pat", 0)
	term := f.addTerm()
	yoga := f.addClass(term, "Gentle Yoga", 1000, 10, 3)
	aqua := f.addClass(term, "Aqua Fit", 1500, 10, 2)
	svc := f.enrollmentService(payments.NewOfflineGateway())

	joResult, err := svc.EnrollOnBehalf(context.Background(), staffActor(), &dto.AdminEnrollmentRequest{
		CustomerID: jo.ID,
		EnrollmentRequest: dto.EnrollmentRequest{TermID: term.ID, ClassIDs: []int64{yoga.ID, aqua.ID},
			UseCredit: true, PaymentMethod: models.PaymentBankTransfer},
	})
	require.NoError(t, err)
	patResult, err := svc.EnrollSelf(context.Background(), customerActor(pat),
		&dto.EnrollmentRequest{TermID: term.ID, ClassIDs: []int64{yoga.ID}})
	require.NoError(t, err)
	return term, joResult, patResult
}

func TestReportEnrollments_OneRowPerClass(t *testing.T) {
	f := newFixture()
	term, jo, pat := enrollTwo(t, f)

	report, err := f.reportService().Enrollments(context.Background(), term.ID, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "enrollments-20260202.csv", report.Filename())
	assert.Equal(t, "Enrollments: Term 1 2026", report.Table.Title)
	assert.Equal(t, []string{"Enrollment", "Customer", "Email", "Class", "Sessions", "Status", "Total", "Credit", "Enrolled"}, report.Table.Headers)

	joID, patID := itoa(jo.Enrollment.ID), itoa(pat.Enrollment.ID)
	assert.Equal(t, [][]string{
		{joID, "Jo Citizen", "jo@example.org", "Aqua Fit", "2", "ACTIVE", "60.00", "5.00", "2026-02-02"},
		{joID, "Jo Citizen", "jo@example.org", "Gentle Yoga", "3", "ACTIVE", "60.00", "5.00", "2026-02-02"},
		{patID, "Pat Citizen", "pat@example.org", "Gentle Yoga", "3", "PENDING_PAYMENT", "30.00", "0.00", "2026-02-02"},
	}, report.Table.Rows)
}

func TestReportEnrollments_RequiresTerm(t *testing.T) {
	f := newFixture()

	_, err := f.reportService().Enrollments(context.Background(), 0, export.FormatCSV)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.reportService().Enrollments(context.Background(), 999, export.FormatCSV)
	assert.Error(t, err)
}

func TestReportPayments_Columns(t *testing.T) {
	f := newFixture()
	_, jo, pat := enrollTwo(t, f)
	require.NotNil(t, pat.Payment.ProviderReference)

	report, err := f.reportService().Payments(context.Background(), nil, nil, export.FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, "payments-20260202.xlsx", report.Filename())
	assert.Equal(t, []string{"Payment", "Enrollment", "Customer", "Method", "Status", "Amount", "Reference", "Created"}, report.Table.Headers)
	assert.Equal(t, [][]string{
		{itoa(jo.Payment.ID), itoa(jo.Enrollment.ID), "Jo Citizen", "BANK_TRANSFER", "SUCCEEDED", "55.00", "", "2026-02-02 09:00"},
		{itoa(pat.Payment.ID), itoa(pat.Enrollment.ID), "Pat Citizen", "CARD", "PENDING", "30.00", *pat.Payment.ProviderReference, "2026-02-02 09:00"},
	}, report.Table.Rows)
}

func TestReportPayments_DateRange(t *testing.T) {
	f := newFixture()
	enrollTwo(t, f)
	svc := f.reportService()

	tomorrow := testNow.AddDate(0, 0, 1)
	report, err := svc.Payments(context.Background(), &tomorrow, nil, export.FormatCSV)
	require.NoError(t, err)
	assert.NotNil(t, report.Table.Rows)
	assert.Empty(t, report.Table.Rows)

	day := testNow.Truncate(24 * time.Hour)
	report, err = svc.Payments(context.Background(), &day, &day, export.FormatCSV)
	require.NoError(t, err)
	assert.Len(t, report.Table.Rows, 2)

	_, err = svc.Payments(context.Background(), &tomorrow, &day, export.FormatCSV)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestReportCustomers_Columns(t *testing.T) {
	f := newFixture()
	_, c := f.addCustomer("Jo", 1250)
	phone := "0400 000 000"
	c.Phone = &phone

	report, err := f.reportService().Customers(context.Background(), export.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "customers-20260202.pdf", report.Filename())
	require.Len(t, report.Table.Rows, 1)
	assert.Equal(t, []string{itoa(c.ID), "Jo", "Citizen", "jo@example.org", "0400 000 000", "APPROVED", "2027-02-02", "12.50", "false"},
		report.Table.Rows[0])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "0.00", dollars(0))
	assert.Equal(t, "0.05", dollars(5))
	assert.Equal(t, "12.50", dollars(1250))
	assert.Equal(t, "-3.10", dollars(-310))
}
