package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	appauth "github.com/sharecrm/share/internal/app/auth"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/auth"
)

// RoleService manages staff roles
type RoleService struct {
	tx     Transactor
	roles  RoleStore
	users  UserStore
	perms  PermissionChecker
	logger zerolog.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(tx Transactor, roles RoleStore, users UserStore, perms PermissionChecker, logger zerolog.Logger) *RoleService {
	return &RoleService{tx: tx, roles: roles, users: users, perms: perms, logger: logger}
}

// Permissions returns the permission catalogue
func (s *RoleService) Permissions() []dto.PermissionResponse {
	all := appauth.AllPermissions()
	out := make([]dto.PermissionResponse, len(all))
	for i, p := range all {
		out[i] = dto.PermissionResponse{Code: p.Code, Description: p.Description}
	}
	return out
}

// List returns every role with its permissions
func (s *RoleService) List(ctx context.Context) ([]*models.Role, error) {
	return s.roles.List(ctx)
}

// Get returns one role
func (s *RoleService) Get(ctx context.Context, id int64) (*models.Role, error) {
	return s.roles.GetByID(ctx, id)
}

// Create adds a role with its permissions
func (s *RoleService) Create(ctx context.Context, req *dto.RoleRequest) (*models.Role, error) {
	perms, err := appauth.NormalizePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}
	role := &models.Role{Name: strings.TrimSpace(req.Name), Description: req.Description}

	var id int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if id, err = s.roles.Create(ctx, role); err != nil {
			return err
		}
		return s.roles.SetPermissions(ctx, id, perms)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("roleID", id).Strs("permissions", perms).Msg("Role created")
	return s.roles.GetByID(ctx, id)
}

// Update replaces a role's name, description and permissions
func (s *RoleService) Update(ctx context.Context, id int64, req *dto.RoleRequest) (*models.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.IsSystem {
		return nil, apperrors.ErrSystemRole
	}
	perms, err := appauth.NormalizePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}
	role.Name = strings.TrimSpace(req.Name)
	role.Description = req.Description

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.roles.Update(ctx, role); err != nil {
			return err
		}
		return s.roles.SetPermissions(ctx, id, perms)
	})
	if err != nil {
		return nil, err
	}
	s.perms.InvalidateRole(ctx, id)
	s.logger.Info().Int64("roleID", id).Strs("permissions", perms).Msg("Role updated")
	return s.roles.GetByID(ctx, id)
}

// Delete removes a role nobody holds
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return apperrors.ErrSystemRole
	}
	holders, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if holders > 0 {
		return fmt.Errorf("%w: %d users", apperrors.ErrRoleInUse, holders)
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	s.perms.InvalidateRole(ctx, id)
	s.logger.Info().Int64("roleID", id).Msg("Role deleted")
	return nil
}

// UserService manages staff and instructor logins
type UserService struct {
	tx          Transactor
	users       UserStore
	roles       RoleStore
	instructors InstructorStore
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(tx Transactor, users UserStore, roles RoleStore, instructors InstructorStore, logger zerolog.Logger) *UserService {
	return &UserService{tx: tx, users: users, roles: roles, instructors: instructors, logger: logger}
}

// Create adds a STAFF login holding a role, or an INSTRUCTOR login linked to an instructor
func (s *UserService) Create(ctx context.Context, actor Actor, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidPassword, err.Error())
	}

	user := &models.User{
		Email:     normalizeEmail(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  req.RoleType,
		IsActive:  true,
	}

	switch req.RoleType {
	case models.RoleStaff:
		if req.RoleID == nil {
			return nil, fmt.Errorf("%w: roleId is required for staff", apperrors.ErrValidationFailed)
		}
		if _, err := s.roles.GetByID(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = req.RoleID
	case models.RoleInstructor:
		if req.InstructorID == nil {
			return nil, fmt.Errorf("%w: instructorId is required for instructors", apperrors.ErrValidationFailed)
		}
		instructor, err := s.instructors.GetByID(ctx, *req.InstructorID)
		if err != nil {
			return nil, err
		}
		if instructor.UserID != nil {
			return nil, apperrors.NewConflictError("instructor already has a login")
		}
	default:
		return nil, fmt.Errorf("%w: roleType must be STAFF or INSTRUCTOR", apperrors.ErrValidationFailed)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hashed

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.users.Create(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		if user.RoleType == models.RoleInstructor {
			return s.instructors.LinkUser(ctx, *req.InstructorID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("roleType", string(user.RoleType)).Int64("by", actor.UserID).Msg("User created")
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleType:  user.RoleType,
		RoleID:    user.RoleID,
	}
	if user.RoleType == models.RoleInstructor {
		resp.InstructorID = req.InstructorID
	}
	return resp, nil
}

// AssignRole moves a staff login to another role; it applies from the next token
func (s *UserService) AssignRole(ctx context.Context, userID, roleID int64) (*models.User, error) {
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, userID, roleID); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Int64("roleID", roleID).Msg("Role assigned")
	return s.users.GetByID(ctx, userID)
}

// ListStaff returns staff and instructor logins
func (s *UserService) ListStaff(ctx context.Context, filter dto.ListFilter) ([]*models.User, int64, error) {
	return s.users.ListStaff(ctx, filter)
}

// EnquiryService stores public contact form submissions
type EnquiryService struct {
	enquiries EnquiryStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEnquiryService creates a new EnquiryService
func NewEnquiryService(enquiries EnquiryStore, logger zerolog.Logger) *EnquiryService {
	return &EnquiryService{enquiries: enquiries, logger: logger, now: time.Now}
}

// Submit stores an OPEN enquiry
func (s *EnquiryService) Submit(ctx context.Context, req *dto.EnquiryRequest) (*models.Enquiry, error) {
	e := &models.Enquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
		Status:  models.EnquiryOpen,
	}
	if _, err := s.enquiries.Create(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("enquiryID", e.ID).Msg("Enquiry received")
	return e, nil
}

// List returns enquiries, optionally by status
func (s *EnquiryService) List(ctx context.Context, filter dto.ListFilter) ([]*models.Enquiry, int64, error) {
	return s.enquiries.List(ctx, filter)
}

// Resolve closes an OPEN enquiry
func (s *EnquiryService) Resolve(ctx context.Context, actor Actor, id int64) error {
	return s.enquiries.Resolve(ctx, id, actor.UserID, s.now())
}
