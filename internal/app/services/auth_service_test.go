package services

import (
	"context"
	"testing"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) authService() *AuthService {
	m := f.db
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "share-test",
	})
	return NewAuthService(m, memUsers{m}, memCustomers{m}, memTokens{m}, memInstructors{m}, f.perms, jwtService, f.logger)
}

func register(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  "Passw0rd!",
		FirstName: "Jo",
		LastName:  "Citizen",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_CreatesCustomer(t *testing.T) {
	f := newFixture()
	svc := f.authService()

	resp := register(t, svc, " Jo@Example.org ")
	assert.Equal(t, "jo@example.org", resp.User.Email)
	assert.Equal(t, models.RoleCustomer, resp.User.RoleType)
	require.NotNil(t, resp.User.CustomerID)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)

	customer := f.db.customers[*resp.User.CustomerID]
	assert.Equal(t, models.PAQStatusNone, customer.PAQStatus)
	assert.Equal(t, resp.User.ID, *customer.UserID)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jo@example.org", Password: "Passw0rd!", FirstName: "J", LastName: "C"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Email: "weak@example.org", Password: "password", FirstName: "W", LastName: "P"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	svc := f.authService()
	register(t, svc, "jo@example.org")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "JO@example.org", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.NotNil(t, resp.User.CustomerID)
	assert.NotNil(t, f.db.users[resp.User.ID].LastLoginAt)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jo@example.org", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.org", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_BlockedCustomer(t *testing.T) {
	f := newFixture()
	svc := f.authService()
	reg := register(t, svc, "jo@example.org")

	customers := NewCustomerService(memCustomers{f.db}, memTokens{f.db}, f.logger)
	_, err := customers.Block(context.Background(), *reg.User.CustomerID, "no-shows")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jo@example.org", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)

	_, err = svc.Refresh(context.Background(), reg.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked, "blocking revokes refresh tokens")

	_, err = customers.Unblock(context.Background(), *reg.User.CustomerID)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jo@example.org", Password: "Passw0rd!"})
	assert.NoError(t, err)
}

func TestRefresh_RotatesToken(t *testing.T) {
	f := newFixture()
	svc := f.authService()
	reg := register(t, svc, "jo@example.org")

	rotated, err := svc.Refresh(context.Background(), reg.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.Token.RefreshToken, rotated.Token.RefreshToken)

	_, err = svc.Refresh(context.Background(), reg.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	require.NoError(t, svc.Logout(context.Background(), rotated.Token.RefreshToken))
	_, err = svc.Refresh(context.Background(), rotated.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	assert.ErrorIs(t, svc.Logout(context.Background(), " "), apperrors.ErrTokenInvalid)
}

func TestMe_DescribesStaffAndInstructors(t *testing.T) {
	f := newFixture()
	svc := f.authService()

	role := &models.Role{ID: f.db.id(), Name: "Front desk", Permissions: []string{"customers.read"}}
	f.db.roles[role.ID] = role
	staff := &models.User{ID: f.db.id(), Email: "desk@share.test", RoleType: models.RoleStaff, RoleID: &role.ID, IsActive: true}
	f.db.users[staff.ID] = staff

	me, err := svc.Me(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"customers.read"}, me.Permissions)

	u, instructor := f.addInstructor()
	me, err = svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, me.InstructorID)
	assert.Equal(t, instructor.ID, *me.InstructorID)
}
