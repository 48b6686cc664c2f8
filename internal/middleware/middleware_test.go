package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubPerms resolves permissions from each user's current role
type stubPerms struct {
	roleOf map[int64]int64
	byRole map[int64][]string
	err    error
}

func (s stubPerms) HasPermission(_ context.Context, userID int64, code string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	roleID, ok := s.roleOf[userID]
	if !ok {
		return false, nil
	}
	for _, p := range s.byRole[roleID] {
		if p == code {
			return true, nil
		}
	}
	return false, nil
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "share-test",
	})
}

func tokenFor(t *testing.T, jwt *auth.JWTService, user *models.User) string {
	t.Helper()
	pair, err := jwt.GenerateTokenPair(user)
	require.NoError(t, err)
	return pair.AccessToken
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func protectedRouter(m *AuthMiddleware, guards ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "roleType": actor.RoleType})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTAuth(t *testing.T) {
	jwt := newJWT()
	m := NewAuthMiddleware(jwt, stubPerms{})
	r := protectedRouter(m)
	token := tokenFor(t, jwt, &models.User{ID: 7, Email: "jo@example.org", RoleType: models.RoleCustomer})

	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{"bearer header", "Bearer " + token, "", http.StatusOK, ""},
		{"raw token", token, "", http.StatusOK, ""},
		{"query token for websockets", "", "?token=" + token, http.StatusOK, ""},
		{"missing", "", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"garbage", "Bearer not.a.token", "", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, w).Error.Code)
			} else {
				assert.JSONEq(t, `{"userId":7,"roleType":"CUSTOMER"}`, w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	jwt := newJWT()
	frontDesk, coordinator := int64(1), int64(2)
	perms := stubPerms{
		roleOf: map[int64]int64{1: coordinator, 2: frontDesk},
		byRole: map[int64][]string{
			frontDesk:   {"customers.read"},
			coordinator: {"customers.read", "reports.export"},
		},
	}
	m := NewAuthMiddleware(jwt, perms)
	r := protectedRouter(m, m.RequirePermission("reports.export"))

	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"holder", &models.User{ID: 1, Email: "a@share.test", RoleType: models.RoleStaff, RoleID: &coordinator}, http.StatusOK},
		{"staff without code", &models.User{ID: 2, Email: "b@share.test", RoleType: models.RoleStaff, RoleID: &frontDesk}, http.StatusForbidden},
		{"customer", &models.User{ID: 3, Email: "c@example.org", RoleType: models.RoleCustomer}, http.StatusForbidden},
		{"instructor", &models.User{ID: 4, Email: "d@share.test", RoleType: models.RoleInstructor}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwt, tt.user))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequirePermission_UsesCurrentRole(t *testing.T) {
	jwt := newJWT()
	frontDesk, coordinator := int64(1), int64(2)
	perms := stubPerms{
		roleOf: map[int64]int64{5: coordinator},
		byRole: map[int64][]string{
			frontDesk:   {"customers.read"},
			coordinator: {"customers.read", "reports.export"},
		},
	}
	m := NewAuthMiddleware(jwt, perms)
	r := protectedRouter(m, m.RequirePermission("reports.export"))
	token := tokenFor(t, jwt, &models.User{ID: 5, Email: "e@share.test", RoleType: models.RoleStaff, RoleID: &coordinator})

	serve := func() int {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve())

	perms.roleOf[5] = frontDesk
	assert.Equal(t, http.StatusForbidden, serve())

	delete(perms.roleOf, 5)
	assert.Equal(t, http.StatusForbidden, serve())
}

func TestRequirePermission_LookupFailure(t *testing.T) {
	jwt := newJWT()
	roleID := int64(1)
	m := NewAuthMiddleware(jwt, stubPerms{err: errors.New("redis down")})
	r := protectedRouter(m, m.RequirePermission("customers.read"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwt, &models.User{ID: 1, Email: "a@share.test", RoleType: models.RoleStaff, RoleID: &roleID}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRoleRequired(t *testing.T) {
	jwt := newJWT()
	m := NewAuthMiddleware(jwt, stubPerms{})
	r := protectedRouter(m, m.RoleRequired(models.RoleInstructor))

	for roleType, want := range map[models.RoleType]int{
		models.RoleInstructor: http.StatusOK,
		models.RoleCustomer:   http.StatusForbidden,
		models.RoleStaff:      http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwt, &models.User{ID: 9, Email: "x@share.test", RoleType: roleType}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, roleType)
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{fmt.Errorf("%w: at least one class is required", apperrors.ErrValidationFailed), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrAccountBlocked, http.StatusForbidden, dto.ErrorCodeAccountBlocked},
		{apperrors.NewForbiddenError("session belongs to another instructor"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrClassNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.NewResourceNotFoundError("thing"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrAlreadyBooked, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrAlreadyReviewed, http.StatusConflict, dto.ErrorCodeConflict},
		{fmt.Errorf("%w: Yoga", apperrors.ErrClassFull), http.StatusUnprocessableEntity, dto.ErrorCodeCapacityReached},
		{apperrors.ErrInsufficientCredit, http.StatusUnprocessableEntity, dto.ErrorCodeInsufficientCredit},
		{apperrors.ErrPAQNotApproved, http.StatusUnprocessableEntity, dto.ErrorCodePAQRequired},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantStatus != http.StatusInternalServerError {
				assert.Equal(t, tt.err.Error(), body.Error.Details, "message surfaced verbatim")
			} else {
				assert.Nil(t, body.Error.Details)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://share.example.org"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://share.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://share.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, w).Error.Code)
}
