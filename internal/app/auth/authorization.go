package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/cache"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// Common errors specific to authorization that aren't in the central apperrors
var (
	ErrNotInstructor = errors.New("only instructors can perform this action")
	ErrNotStaff      = errors.New("only staff can perform this action")
)

// UserReader loads a login with its current role
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RolePermissionReader loads a role's permission codes
type RolePermissionReader interface {
	GetPermissions(ctx context.Context, roleID int64) ([]string, error)
}

// InstructorReader finds the instructor linked to a login
type InstructorReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error)
}

// AuthorizationService answers permission questions for staff and instructors
type AuthorizationService struct {
	users       UserReader
	roles       RolePermissionReader
	instructors InstructorReader
	cache       cache.PermissionCache
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users UserReader, roles RolePermissionReader, instructors InstructorReader, permCache cache.PermissionCache) *AuthorizationService {
	return &AuthorizationService{
		users:       users,
		roles:       roles,
		instructors: instructors,
		cache:       permCache,
	}
}

// RolePermissions returns the codes of roleID, cache first
func (s *AuthorizationService) RolePermissions(ctx context.Context, roleID int64) ([]string, error) {
	perms, ok, err := s.cache.Get(ctx, roleID)
	if err != nil {
		logger.Warn().Err(err).Int64("roleID", roleID).Msg("Permission cache read failed, falling back to database")
	} else if ok {
		return perms, nil
	}

	perms, err = s.roles.GetPermissions(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}
	if err := s.cache.Set(ctx, roleID, perms); err != nil {
		logger.Warn().Err(err).Int64("roleID", roleID).Msg("Permission cache write failed")
	}
	return perms, nil
}

// HasPermission reports whether userID may use code. The login is read on
// every call, so a reassigned role or a deactivated account applies to
// tokens issued before the change. Only active staff hold permissions.
func (s *AuthorizationService) HasPermission(ctx context.Context, userID int64, code string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive || user.RoleType != models.RoleStaff || user.RoleID == nil {
		return false, nil
	}
	perms, err := s.RolePermissions(ctx, *user.RoleID)
	if err != nil {
		return false, err
	}
	return HasPermission(perms, code), nil
}

// InvalidateRole drops cached permissions after a role changes
func (s *AuthorizationService) InvalidateRole(ctx context.Context, roleID int64) {
	if err := s.cache.Invalidate(ctx, roleID); err != nil {
		logger.Warn().Err(err).Int64("roleID", roleID).Msg("Permission cache invalidation failed")
	}
}

// ValidateInstructor returns the instructor linked to userID
func (s *AuthorizationService) ValidateInstructor(ctx context.Context, roleType models.RoleType, userID int64) (*models.Instructor, error) {
	if roleType != models.RoleInstructor {
		return nil, apperrors.NewCustomError(apperrors.ErrPermissionDenied, ErrNotInstructor.Error())
	}
	instructor, err := s.instructors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstructorNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrPermissionDenied, "login is not linked to an instructor")
		}
		return nil, err
	}
	if !instructor.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrPermissionDenied, "instructor is inactive")
	}
	return instructor, nil
}
