package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/dberrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// RoleRepository handles roles and their permission codes
type RoleRepository struct {
	baseRepository
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{baseRepository: newBaseRepository(db)}
}

func (r *RoleRepository) selectRoles() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id", "r.name", "r.description", "r.is_system", "r.created_at", "r.updated_at",
		"COALESCE(array_agg(rp.permission ORDER BY rp.permission) FILTER (WHERE rp.permission IS NOT NULL), '{}')",
	).
		From("roles r").
		LeftJoin("role_permissions rp ON rp.role_id = r.id").
		GroupBy("r.id")
}

func scanRole(row scanner) (*models.Role, error) {
	role := &models.Role{}
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.IsSystem, &role.CreatedAt, &role.UpdatedAt, &role.Permissions)
	return role, err
}

// List returns every role with its permissions
func (r *RoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	sql, args, err := r.selectRoles().OrderBy("r.name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list roles query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing roles")
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	defer rows.Close()

	roles := []*models.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning role row: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Role, error) {
	sql, args, err := r.selectRoles().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get role query: %w", err)
	}
	role, err := scanRole(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		logger.Error().Err(err).Msg("Error scanning role row")
		return nil, fmt.Errorf("error retrieving role: %w", err)
	}
	return role, nil
}

// GetByID retrieves a role with its permissions
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	return r.getOne(ctx, squirrel.Eq{"r.id": id})
}

// GetByName retrieves a role by its unique name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return r.getOne(ctx, squirrel.Eq{"r.name": name})
}

// GetPermissions returns the permission codes of a role
func (r *RoleRepository) GetPermissions(ctx context.Context, roleID int64) ([]string, error) {
	sql, args, err := r.sb.Select("permission").From("role_permissions").
		Where(squirrel.Eq{"role_id": roleID}).OrderBy("permission").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get permissions query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("roleID", roleID).Msg("Error loading role permissions")
		return nil, fmt.Errorf("error loading role permissions: %w", err)
	}
	perms, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning role permissions: %w", err)
	}
	return perms, nil
}

// Create inserts a role; call SetPermissions in the same transaction
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) (int64, error) {
	sql, args, err := r.sb.Insert("roles").
		Columns("name", "description", "is_system").
		Values(role.Name, role.Description, role.IsSystem).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create role query: %w", err)
	}
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "roles_name_key") {
			return 0, apperrors.NewConflictError("a role with this name already exists")
		}
		logger.Error().Err(err).Str("name", role.Name).Msg("Error creating role")
		return 0, fmt.Errorf("error creating role: %w", err)
	}
	return id, nil
}

// Update changes name and description
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	sql, args, err := r.sb.Update("roles").
		Set("name", role.Name).
		Set("description", role.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": role.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update role query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "roles_name_key") {
			return apperrors.NewConflictError("a role with this name already exists")
		}
		logger.Error().Err(err).Int64("roleID", role.ID).Msg("Error updating role")
		return fmt.Errorf("error updating role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// SetPermissions replaces the permission codes of a role
func (r *RoleRepository) SetPermissions(ctx context.Context, roleID int64, permissions []string) error {
	sql, args, err := r.sb.Delete("role_permissions").Where(squirrel.Eq{"role_id": roleID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear permissions query: %w", err)
	}
	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("roleID", roleID).Msg("Error clearing role permissions")
		return fmt.Errorf("error clearing role permissions: %w", err)
	}
	if len(permissions) == 0 {
		return nil
	}

	insert := r.sb.Insert("role_permissions").Columns("role_id", "permission")
	for _, p := range permissions {
		insert = insert.Values(roleID, p)
	}
	sql, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert permissions query: %w", err)
	}
	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("roleID", roleID).Msg("Error inserting role permissions")
		return fmt.Errorf("error inserting role permissions: %w", err)
	}
	return nil
}

// Delete removes a role
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("roles").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete role query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrRoleInUse
		}
		logger.Error().Err(err).Int64("roleID", id).Msg("Error deleting role")
		return fmt.Errorf("error deleting role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}
