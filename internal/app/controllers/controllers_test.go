package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/middleware"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withActor stands in for JWTAuth
func withActor(userID int64, roleType models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRoleType, roleType)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error
}

type stubAuth struct {
	registered *dto.RegisterRequest
	loginErr   error
}

func (s *stubAuth) Register(_ context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.registered = req
	return &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: "access", TokenType: "Bearer"},
		User:  &dto.UserResponse{ID: 7, Email: req.Email, RoleType: models.RoleCustomer},
	}, nil
}

func (s *stubAuth) Login(_ context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.AuthResponse{User: &dto.UserResponse{ID: 7, Email: req.Email}}, nil
}

func (s *stubAuth) Refresh(context.Context, string) (*dto.AuthResponse, error) { return nil, nil }
func (s *stubAuth) Logout(context.Context, string) error                     { return nil }
func (s *stubAuth) Me(context.Context, int64) (*dto.UserResponse, error)      { return nil, nil }

func TestAuthController_Register(t *testing.T) {
	svc := &stubAuth{}
	c := NewAuthController(svc, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/register", c.Register)

	w := doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"email":     "jo@example.org",
		"password":  "Passw0rd!",
		"firstName": "Jo",
		"lastName":  "Citizen",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    *dto.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.Equal(t, int64(7), resp.Data.User.ID)
	assert.Equal(t, "Jo", svc.registered.FirstName)
}

func TestAuthController_RegisterRejectsBadEmail(t *testing.T) {
	c := NewAuthController(&stubAuth{}, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/register", c.Register)

	w := doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"email":     "not-an-email",
		"password":  "Passw0rd!",
		"firstName": "Jo",
		"lastName":  "Citizen",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Code)
}

func TestAuthController_LoginInvalidCredentials(t *testing.T) {
	c := NewAuthController(&stubAuth{loginErr: apperrors.ErrInvalidCredentials}, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/login", c.Login)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "jo@example.org",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, decodeError(t, w).Code)
}

type stubEnrollments struct {
	EnrollmentUseCases
	gotActor services.Actor
	gotReq   *dto.EnrollmentRequest
	err      error
}

func (s *stubEnrollments) EnrollSelf(_ context.Context, actor services.Actor, req *dto.EnrollmentRequest) (*dto.EnrollmentResult, error) {
	s.gotActor, s.gotReq = actor, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EnrollmentResult{
		Enrollment: &models.Enrollment{ID: 40, TermID: req.TermID, Status: models.EnrollmentPendingPayment},
	}, nil
}

func (s *stubEnrollments) Get(_ context.Context, id int64) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id}, nil
}

func enrollmentRouter(svc EnrollmentUseCases) *gin.Engine {
	c := NewEnrollmentController(svc, zerolog.Nop())
	r := gin.New()
	me := r.Group("/me", withActor(12, models.RoleCustomer))
	me.POST("/enrollments", c.Enroll)
	r.GET("/admin/enrollments/:id", c.Get)
	return r
}

func TestEnrollmentController_Enroll(t *testing.T) {
	svc := &stubEnrollments{}
	r := enrollmentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/me/enrollments", dto.EnrollmentRequest{
		TermID:        2,
		ClassIDs:      []int64{8, 9},
		PaymentMethod: models.PaymentCard,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(12), svc.gotActor.UserID)
	assert.Equal(t, models.RoleCustomer, svc.gotActor.RoleType)
	assert.Equal(t, []int64{8, 9}, svc.gotReq.ClassIDs)
	assert.Contains(t, w.Body.String(), `"PENDING_PAYMENT"`)
}

func TestEnrollmentController_EnrollWithoutClasses(t *testing.T) {
	svc := &stubEnrollments{}
	r := enrollmentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/me/enrollments", map[string]interface{}{
		"termId":   2,
		"classIds": []int64{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Code)
	assert.Nil(t, svc.gotReq, "service must not be called")
}

func TestEnrollmentController_EnrollConflict(t *testing.T) {
	r := enrollmentRouter(&stubEnrollments{err: apperrors.ErrAlreadyBooked})

	w := doJSON(t, r, http.MethodPost, "/me/enrollments", dto.EnrollmentRequest{TermID: 2, ClassIDs: []int64{8}})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, decodeError(t, w).Code)
}

func TestEnrollmentController_EnrollRequiresActor(t *testing.T) {
	c := NewEnrollmentController(&stubEnrollments{}, zerolog.Nop())
	r := gin.New()
	r.POST("/me/enrollments", c.Enroll)

	w := doJSON(t, r, http.MethodPost, "/me/enrollments", dto.EnrollmentRequest{TermID: 2, ClassIDs: []int64{8}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Code)
}

func TestParseIDParam(t *testing.T) {
	r := enrollmentRouter(&stubEnrollments{})

	for _, id := range []string{"abc", "0", "-3"} {
		w := doJSON(t, r, http.MethodGet, "/admin/enrollments/"+id, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		detail := decodeError(t, w)
		assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
		assert.Equal(t, "id", detail.Field)
	}

	w := doJSON(t, r, http.MethodGet, "/admin/enrollments/40", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

type stubReports struct {
	ReportUseCases
	termID int64
	format export.Format
}

func (s *stubReports) Enrollments(_ context.Context, termID int64, format export.Format) (*services.Report, error) {
	s.termID, s.format = termID, format
	return &services.Report{
		Name:        "enrollments",
		Format:      format,
		GeneratedAt: time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC),
		Table: &export.Table{
			Title:   "Enrollments",
			Headers: []string{"Customer", "Status"},
			Rows:    [][]string{{"Jo Citizen", "ACTIVE"}},
		},
	}, nil
}

func TestReportController_EnrollmentsCSV(t *testing.T) {
	svc := &stubReports{}
	c := NewReportController(svc, zerolog.Nop())
	r := gin.New()
	r.GET("/admin/reports/enrollments", c.Enrollments)

	w := doJSON(t, r, http.MethodGet, "/admin/reports/enrollments?termId=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), svc.termID)
	assert.Equal(t, export.FormatCSV, svc.format)
	assert.Equal(t, `attachment; filename="enrollments-20260203.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Jo Citizen,ACTIVE")
}

func TestReportController_Validation(t *testing.T) {
	c := NewReportController(&stubReports{}, zerolog.Nop())
	r := gin.New()
	r.GET("/admin/reports/enrollments", c.Enrollments)

	tests := []struct {
		query string
		field string
	}{
		{"", "termId"},
		{"?termId=x", "termId"},
		{"?termId=2&format=docx", "format"},
	}
	for _, tt := range tests {
		w := doJSON(t, r, http.MethodGet, "/admin/reports/enrollments"+tt.query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.query)
		assert.Equal(t, tt.field, decodeError(t, w).Field, tt.query)
	}
}

type stubPAQ struct {
	PAQUseCases
	formID   int64
	filename string
	content  string
}

func (s *stubPAQ) UploadCertificate(_ context.Context, userID, formID int64, filename string, size int64, r io.Reader) (*models.PAQForm, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) != size {
		return nil, errors.New("size mismatch")
	}
	s.formID, s.filename, s.content = formID, filename, string(raw)
	fileID := int64(3)
	return &models.PAQForm{ID: formID, CustomerID: userID, CertificateFileID: &fileID}, nil
}

func TestPAQController_UploadCertificate(t *testing.T) {
	svc := &stubPAQ{}
	c := NewPAQController(svc, nil, zerolog.Nop())
	r := gin.New()
	r.POST("/me/paq/:id/certificate", withActor(12, models.RoleCustomer), c.UploadCertificate)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "../../clearance.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 clearance"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/me/paq/31/certificate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(31), svc.formID)
	assert.Equal(t, "clearance.pdf", svc.filename)
	assert.Equal(t, "%PDF-1.4 clearance", svc.content)
}

func TestPAQController_UploadCertificateMissingFile(t *testing.T) {
	c := NewPAQController(&stubPAQ{}, nil, zerolog.Nop())
	r := gin.New()
	r.POST("/me/paq/:id/certificate", withActor(12, models.RoleCustomer), c.UploadCertificate)

	w := doJSON(t, r, http.MethodPost, "/me/paq/31/certificate", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file", decodeError(t, w).Field)
}

type stubAttendance struct {
	AttendanceUseCases
	err error
}

func (s *stubAttendance) AuthorizeLiveFeed(context.Context, services.Actor, int64) error {
	return s.err
}

type stubLive struct {
	served    bool
	sessionID int64
	userID    int64
}

func (s *stubLive) ServeSession(c *gin.Context, sessionID, userID int64) {
	s.served, s.sessionID, s.userID = true, sessionID, userID
	c.Status(http.StatusSwitchingProtocols)
}

func TestInstructorController_Live(t *testing.T) {
	tests := []struct {
		name       string
		authErr    error
		wantStatus int
		wantServed bool
	}{
		{"own session", nil, http.StatusSwitchingProtocols, true},
		{"someone else's session", apperrors.NewForbiddenError("session belongs to another instructor"), http.StatusForbidden, false},
		{"missing session", apperrors.ErrSessionNotFound, http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := &stubLive{}
			c := NewInstructorController(&stubAttendance{err: tt.authErr}, live, zerolog.Nop())
			r := gin.New()
			r.GET("/instructor/sessions/:id/live", withActor(5, models.RoleInstructor), c.Live)

			w := doJSON(t, r, http.MethodGet, "/instructor/sessions/77/live", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantServed, live.served)
			if tt.wantServed {
				assert.Equal(t, int64(77), live.sessionID)
				assert.Equal(t, int64(5), live.userID)
			}
		})
	}
}
