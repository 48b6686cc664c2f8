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
	"github.com/sharecrm/share/internal/pkg/auth"
)

// AuthService handles sign-up, login and token rotation
type AuthService struct {
	tx          Transactor
	users       UserStore
	customers   CustomerStore
	tokens      TokenStore
	instructors InstructorStore
	perms       PermissionChecker
	jwtService  *auth.JWTService
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	tx Transactor,
	users UserStore,
	customers CustomerStore,
	tokens TokenStore,
	instructors InstructorStore,
	perms PermissionChecker,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		tx:          tx,
		users:       users,
		customers:   customers,
		tokens:      tokens,
		instructors: instructors,
		perms:       perms,
		jwtService:  jwtService,
		logger:      logger,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a CUSTOMER login and its customer record together
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidPassword, err.Error())
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     normalizeEmail(req.Email),
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  models.RoleCustomer,
		IsActive:  true,
	}

	var customerID int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.users.Create(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		customerID, err = s.customers.Create(ctx, &models.Customer{
			UserID:    &id,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Phone:     req.Phone,
			PAQStatus: models.PAQStatusNone,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Int64("customerID", customerID).Msg("Customer registered")

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.User = &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		RoleType:   user.RoleType,
		CustomerID: &customerID,
	}
	return resp, nil
}

// Login authenticates by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.ensureCanAuthenticate(ctx, user); err != nil {
		s.logger.Warn().Int64("userID", user.ID).Err(err).Msg("Login rejected")
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.User, err = s.describe(ctx, user)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Refresh rotates a refresh token; the presented token is revoked
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	stored, err := s.tokens.GetActiveToken(ctx, refreshToken, s.now())
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCanAuthenticate(ctx, user); err != nil {
		_ = s.tokens.RevokeAllUserTokens(ctx, user.ID)
		return nil, err
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.User, err = s.describe(ctx, user)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	return s.tokens.RevokeToken(ctx, refreshToken)
}

// Me describes the logged-in account
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, user)
}

// ensureCanAuthenticate rejects inactive logins and blocked customers
func (s *AuthService) ensureCanAuthenticate(ctx context.Context, user *models.User) error {
	if !user.IsActive {
		return apperrors.ErrAccountDisabled
	}
	if user.RoleType != models.RoleCustomer {
		return nil
	}
	customer, err := s.customers.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCustomerNotFound) {
			return nil
		}
		return err
	}
	if customer.IsBlocked {
		return apperrors.ErrAccountBlocked
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}
	if err := s.tokens.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           pair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             pair.ExpiresIn,
			RefreshToken:          pair.RefreshToken,
			RefreshTokenExpiresIn: pair.RefreshExpiresIn,
		},
	}, nil
}

func (s *AuthService) describe(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleType:  user.RoleType,
		RoleID:    user.RoleID,
	}

	switch user.RoleType {
	case models.RoleCustomer:
		customer, err := s.customers.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrCustomerNotFound) {
			return nil, err
		}
		if customer != nil {
			resp.CustomerID = &customer.ID
		}
	case models.RoleInstructor:
		instructor, err := s.instructors.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrInstructorNotFound) {
			return nil, err
		}
		if instructor != nil {
			resp.InstructorID = &instructor.ID
		}
	case models.RoleStaff:
		if user.RoleID != nil {
			perms, err := s.perms.RolePermissions(ctx, *user.RoleID)
			if err != nil {
				return nil, err
			}
			resp.Permissions = perms
		}
	}
	return resp, nil
}
