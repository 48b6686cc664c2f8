package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/middleware"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// RoleUseCases is the role service as seen by controllers
type RoleUseCases interface {
	Permissions() []dto.PermissionResponse
	List(ctx context.Context) ([]*models.Role, error)
	Get(ctx context.Context, id int64) (*models.Role, error)
	Create(ctx context.Context, req *dto.RoleRequest) (*models.Role, error)
	Update(ctx context.Context, id int64, req *dto.RoleRequest) (*models.Role, error)
	Delete(ctx context.Context, id int64) error
}

// UserUseCases manages staff and instructor logins
type UserUseCases interface {
	Create(ctx context.Context, actor services.Actor, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	AssignRole(ctx context.Context, userID, roleID int64) (*models.User, error)
	ListStaff(ctx context.Context, filter dto.ListFilter) ([]*models.User, int64, error)
}

// EnquiryUseCases lists and resolves enquiries
type EnquiryUseCases interface {
	List(ctx context.Context, filter dto.ListFilter) ([]*models.Enquiry, int64, error)
	Resolve(ctx context.Context, actor services.Actor, id int64) error
}

// UserController handles roles, logins and enquiries
type UserController struct {
	roles     RoleUseCases
	users     UserUseCases
	enquiries EnquiryUseCases
	logger    zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(roles RoleUseCases, users UserUseCases, enquiries EnquiryUseCases, logger zerolog.Logger) *UserController {
	return &UserController{
		roles:     roles,
		users:     users,
		enquiries: enquiries,
		logger:    logger,
	}
}

// Permissions returns the permission catalogue
// @Summary Permission catalogue
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PermissionResponse}
// @Router /admin/permissions [get]
func (c *UserController) Permissions(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.roles.Permissions(), "")
}

// ListRoles returns every role
// @Summary List roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Role}
// @Router /admin/roles [get]
func (c *UserController) ListRoles(ctx *gin.Context) {
	roles, err := c.roles.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, roles, "")
}

// GetRole returns one role
// @Summary Get role
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 200 {object} dto.APIResponse{data=models.Role}
// @Router /admin/roles/{id} [get]
func (c *UserController) GetRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	role, err := c.roles.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, role, "")
}

// CreateRole adds a role
// @Summary Create role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RoleRequest true "Role"
// @Success 201 {object} dto.APIResponse{data=models.Role}
// @Failure 400 {object} dto.ErrorResponse "Unknown permission code"
// @Router /admin/roles [post]
func (c *UserController) CreateRole(ctx *gin.Context) {
	var req dto.RoleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	role, err := c.roles.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, role, "Role created")
}

// UpdateRole replaces a role and its permissions
// @Summary Update role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Param request body dto.RoleRequest true "Role"
// @Success 200 {object} dto.APIResponse{data=models.Role}
// @Failure 409 {object} dto.ErrorResponse "System role"
// @Router /admin/roles/{id} [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	role, err := c.roles.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("roleID", id).Strs("permissions", role.Permissions).Msg("Role updated")
	respond(ctx, http.StatusOK, role, "Role updated")
}

// DeleteRole removes a role no user holds
// @Summary Delete role
// @Tags roles
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse "Role in use or system role"
// @Router /admin/roles/{id} [delete]
func (c *UserController) DeleteRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.roles.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListUsers returns staff and instructor logins
// @Summary List staff logins
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.User}}
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	filter := helpers.ParseListFilter(ctx)
	users, total, err := c.users.ListStaff(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, users, total, filter)
}

// CreateUser creates a staff or instructor login
// @Summary Create login
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Login"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.users.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("userID", user.ID).Str("roleType", string(user.RoleType)).Msg("Login created")
	respond(ctx, http.StatusCreated, user, "User created")
}

// AssignRole moves a staff login to another role
// @Summary Assign role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.AssignRoleRequest true "Role"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Router /admin/users/{id}/role [put]
func (c *UserController) AssignRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssignRoleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	user, err := c.users.AssignRole(ctx.Request.Context(), id, req.RoleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user, "Role assigned")
}

// ListEnquiries returns contact form submissions
// @Summary List enquiries
// @Tags enquiries
// @Produce json
// @Security BearerAuth
// @Param status query string false "OPEN or RESOLVED"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Enquiry}}
// @Router /admin/enquiries [get]
func (c *UserController) ListEnquiries(ctx *gin.Context) {
	filter := helpers.ParseListFilter(ctx)
	enquiries, total, err := c.enquiries.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, enquiries, total, filter)
}

// ResolveEnquiry closes an open enquiry
// @Summary Resolve enquiry
// @Tags enquiries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or already resolved"
// @Router /admin/enquiries/{id}/resolve [post]
func (c *UserController) ResolveEnquiry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	if err := c.enquiries.Resolve(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Enquiry resolved")
}
