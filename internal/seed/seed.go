package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appAuth "github.com/sharecrm/share/internal/app/auth"
	appModels "github.com/sharecrm/share/internal/app/models"
	appRepos "github.com/sharecrm/share/internal/app/repositories"
	"github.com/sharecrm/share/internal/db"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	pkgAuth "github.com/sharecrm/share/internal/pkg/auth"
)

// AdministratorRole is the system role that always holds every permission
const AdministratorRole = "Administrator"

// Admin is the first staff login created on an empty database
type Admin struct {
	Email    string
	Password string
}

// CreateDefaultData makes sure the Administrator role exists with the full
// permission catalogue, and creates the first administrator login when an
// email is configured and not yet taken.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, repos *appRepos.Repositories, admin Admin, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (roles, administrator)...")

	var roleID int64
	err := database.WithTransaction(ctx, func(ctx context.Context) error {
		role, err := repos.RoleRepository.GetByName(ctx, AdministratorRole)
		switch {
		case errors.Is(err, apperrors.ErrRoleNotFound):
			roleID, err = repos.RoleRepository.Create(ctx, &appModels.Role{
				Name:        AdministratorRole,
				Description: "Full access to the back office",
				IsSystem:    true,
			})
			if err != nil {
				return err
			}
			lgr.Info().Int64("roleID", roleID).Msg("Administrator role created")
		case err != nil:
			return err
		default:
			roleID = role.ID
		}
		// the catalogue may have grown since the role was created
		return repos.RoleRepository.SetPermissions(ctx, roleID, appAuth.AllPermissionCodes())
	})
	if err != nil {
		return fmt.Errorf("seeding administrator role: %w", err)
	}

	if admin.Email == "" {
		lgr.Warn().Msg("No seed administrator email configured, skipping administrator login")
		return nil
	}

	_, err = repos.UserRepository.GetByEmail(ctx, admin.Email)
	if err == nil {
		lgr.Debug().Str("email", admin.Email).Msg("Administrator login already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("looking up administrator login: %w", err)
	}

	if err := pkgAuth.ValidatePasswordStrength(admin.Password); err != nil {
		return fmt.Errorf("seed administrator password: %w", err)
	}
	hashed, err := pkgAuth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing administrator password: %w", err)
	}

	userID, err := repos.UserRepository.Create(ctx, &appModels.User{
		Email:     admin.Email,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		RoleType:  appModels.RoleStaff,
		RoleID:    &roleID,
		IsActive:  true,
	})
	if err != nil {
		return fmt.Errorf("creating administrator login: %w", err)
	}

	lgr.Info().Int64("userID", userID).Str("email", admin.Email).Msg("Administrator login created")
	return nil
}
