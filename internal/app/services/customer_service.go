package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// CustomerService manages customer records
type CustomerService struct {
	customers CustomerStore
	tokens    TokenStore
	logger    zerolog.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers CustomerStore, tokens TokenStore, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		tokens:    tokens,
		logger:    logger,
	}
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, filter dto.CustomerFilter) ([]*models.Customer, int64, error) {
	return s.customers.List(ctx, filter)
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// Create adds a customer without a login, e.g. someone who enrolled at the counter
func (s *CustomerService) Create(ctx context.Context, req *dto.CustomerRequest) (*models.Customer, error) {
	dob, err := helpers.ParseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
	}

	c := &models.Customer{
		FirstName:             strings.TrimSpace(req.FirstName),
		LastName:              strings.TrimSpace(req.LastName),
		Email:                 normalizeEmail(req.Email),
		Phone:                 req.Phone,
		DateOfBirth:           dob,
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		PAQStatus:             models.PAQStatusNone,
	}
	id, err := s.customers.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, id)
}

// Update replaces the contact details of a customer
func (s *CustomerService) Update(ctx context.Context, id int64, req *dto.CustomerRequest) (*models.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dob, err := helpers.ParseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
	}

	c.FirstName = strings.TrimSpace(req.FirstName)
	c.LastName = strings.TrimSpace(req.LastName)
	c.Email = normalizeEmail(req.Email)
	c.Phone = req.Phone
	c.DateOfBirth = dob
	c.Address = req.Address
	c.EmergencyContactName = req.EmergencyContactName
	c.EmergencyContactPhone = req.EmergencyContactPhone

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, id)
}

// Delete removes a customer that never enrolled
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("customerID", id).Msg("Customer deleted")
	return nil
}

// Block stops a customer from logging in and revokes their sessions
func (s *CustomerService) Block(ctx context.Context, id int64, reason string) (*models.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if err := s.customers.SetBlocked(ctx, id, true, &reason); err != nil {
		return nil, err
	}
	if c.UserID != nil {
		if err := s.tokens.RevokeAllUserTokens(ctx, *c.UserID); err != nil {
			s.logger.Warn().Err(err).Int64("customerID", id).Msg("Failed to revoke tokens of blocked customer")
		}
	}
	s.logger.Info().Int64("customerID", id).Str("reason", reason).Msg("Customer blocked")
	return s.customers.GetByID(ctx, id)
}

// Unblock lets a customer log in again
func (s *CustomerService) Unblock(ctx context.Context, id int64) (*models.Customer, error) {
	if err := s.customers.SetBlocked(ctx, id, false, nil); err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, id)
}

// Profile returns the customer record linked to a login
func (s *CustomerService) Profile(ctx context.Context, userID int64) (*models.Customer, error) {
	return s.customers.GetByUserID(ctx, userID)
}

// UpdateProfile changes the fields a customer manages themselves
func (s *CustomerService) UpdateProfile(ctx context.Context, userID int64, req *dto.ProfileRequest) (*models.Customer, error) {
	c, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dob, err := helpers.ParseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
	}

	c.Phone = req.Phone
	c.DateOfBirth = dob
	c.Address = req.Address
	c.EmergencyContactName = req.EmergencyContactName
	c.EmergencyContactPhone = req.EmergencyContactPhone

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.customers.GetByID(ctx, c.ID)
}
