package services

import (
	"context"
	"strings"
	"testing"

	"github.com/sharecrm/share/internal/app/auth"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answers(yes ...string) map[string]bool {
	out := make(map[string]bool, len(paqQuestions))
	for _, q := range paqQuestions {
		out[q.Code] = false
	}
	for _, code := range yes {
		out[code] = true
	}
	return out
}

func TestValidateAnswers(t *testing.T) {
	clearance, err := validateAnswers(answers())
	require.NoError(t, err)
	assert.False(t, clearance)

	clearance, err = validateAnswers(answers("chest_pain"))
	require.NoError(t, err)
	assert.True(t, clearance)

	partial := answers()
	delete(partial, "dizziness")
	_, err = validateAnswers(partial)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "dizziness")

	extra := answers()
	extra["smoker"] = true
	_, err = validateAnswers(extra)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestPAQSubmitAndApprove(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 0)
	c.PAQStatus = models.PAQStatusNone
	c.PAQExpiresAt = nil
	svc := f.paqService()

	form, err := svc.Submit(context.Background(), u.ID, &dto.SubmitPAQRequest{Answers: answers()})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, form.Status)
	assert.False(t, form.RequiresClearance)
	assert.Equal(t, models.PAQStatusPending, f.db.customers[c.ID].PAQStatus)
	assert.True(t, f.published(events.SubjectPAQSubmitted))

	reviewed, err := svc.Review(context.Background(), staffActor(), form.ID, &dto.ReviewPAQRequest{Approve: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, reviewed.Status)
	require.NotNil(t, reviewed.ExpiresAt)
	assert.Equal(t, testNow.Add(f.settings.PAQValidity), *reviewed.ExpiresAt)

	customer := f.db.customers[c.ID]
	assert.Equal(t, models.PAQStatusApproved, customer.PAQStatus)
	assert.True(t, customer.HasValidPAQ(testNow))
	require.Len(t, f.mailer.outcomes, 1)
	assert.True(t, f.mailer.outcomes[0].Approved)

	_, err = svc.Review(context.Background(), staffActor(), form.ID, &dto.ReviewPAQRequest{Approve: ptr(false)})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
}

func TestPAQApprove_RequiresCertificate(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 0)
	svc := f.paqService()

	form, err := svc.Submit(context.Background(), u.ID, &dto.SubmitPAQRequest{Answers: answers("heart_condition")})
	require.NoError(t, err)
	assert.True(t, form.RequiresClearance)

	_, err = svc.Review(context.Background(), staffActor(), form.ID, &dto.ReviewPAQRequest{Approve: ptr(true)})
	assert.ErrorIs(t, err, apperrors.ErrMedicalClearanceRequired)

	withCert, err := svc.UploadCertificate(context.Background(), u.ID, form.ID, "clearance.pdf", 100, pdfBody())
	require.NoError(t, err)
	require.NotNil(t, withCert.CertificateFileID)
	assert.True(t, strings.HasPrefix(withCert.CertificateURL, "https://files.test/paq/"))
	assert.Len(t, f.storage.objects, 1)

	file := f.db.files[*withCert.CertificateFileID]
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, u.ID, *file.UploadedBy)

	_, err = svc.Review(context.Background(), staffActor(), form.ID, &dto.ReviewPAQRequest{Approve: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.PAQStatusApproved, f.db.customers[c.ID].PAQStatus)
}

func TestPAQReject(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 0)
	svc := f.paqService()

	form, err := svc.Submit(context.Background(), u.ID, &dto.SubmitPAQRequest{Answers: answers("asthma_attack")})
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), staffActor(), form.ID, &dto.ReviewPAQRequest{Approve: ptr(false), Notes: "see a GP"})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, reviewed.Status)
	assert.Nil(t, reviewed.ExpiresAt)
	assert.Equal(t, models.PAQStatusRejected, f.db.customers[c.ID].PAQStatus)
	assert.False(t, f.db.customers[c.ID].HasValidPAQ(testNow))
}

func TestPAQUploadCertificate_Rejections(t *testing.T) {
	f := newFixture()
	u, _ := f.addCustomer("Jo", 0)
	other, _ := f.addCustomer("Pat", 0)
	svc := f.paqService()

	form, err := svc.Submit(context.Background(), u.ID, &dto.SubmitPAQRequest{Answers: answers("dizziness")})
	require.NoError(t, err)

	_, err = svc.UploadCertificate(context.Background(), other.ID, form.ID, "c.pdf", 100, pdfBody())
	assert.ErrorIs(t, err, apperrors.ErrPAQNotFound)

	_, err = svc.UploadCertificate(context.Background(), u.ID, form.ID, "c.pdf", f.settings.MaxUploadBytes+1, pdfBody())
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	_, err = svc.UploadCertificate(context.Background(), u.ID, form.ID, "c.exe", 20, strings.NewReader("MZ this is not a pdf"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)

	assert.Empty(t, f.storage.objects)
	assert.Empty(t, f.db.files)
}

func TestFileURL_OwnerOrPermission(t *testing.T) {
	f := newFixture()
	u, _ := f.addCustomer("Jo", 0)
	other, _ := f.addCustomer("Pat", 0)
	svc := f.paqService()

	form, err := svc.Submit(context.Background(), u.ID, &dto.SubmitPAQRequest{Answers: answers("dizziness")})
	require.NoError(t, err)
	form, err = svc.UploadCertificate(context.Background(), u.ID, form.ID, "c.pdf", 100, pdfBody())
	require.NoError(t, err)
	fileID := *form.CertificateFileID

	files := NewFileService(memFiles{f.db}, f.storage, f.perms)

	link, err := files.URL(context.Background(), customerActor(u), fileID)
	require.NoError(t, err)
	assert.Equal(t, "c.pdf", link.FileName)

	_, err = files.URL(context.Background(), customerActor(other), fileID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	role := &models.Role{ID: f.db.id(), Name: "Health", Permissions: []string{auth.PermPAQRead}}
	f.db.roles[role.ID] = role
	staff := &models.User{ID: f.db.id(), Email: "nurse@share.test", RoleType: models.RoleStaff, RoleID: &role.ID, IsActive: true}
	f.db.users[staff.ID] = staff
	_, err = files.URL(context.Background(), Actor{UserID: staff.ID, RoleType: models.RoleStaff, RoleID: &role.ID}, fileID)
	assert.NoError(t, err)

	staff.IsActive = false
	_, err = files.URL(context.Background(), Actor{UserID: staff.ID, RoleType: models.RoleStaff, RoleID: &role.ID}, fileID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
