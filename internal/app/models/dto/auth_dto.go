package dto

import "github.com/sharecrm/share/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jo@example.org"`
	Password string `json:"password" binding:"required" example:"Passw0rd!"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn" example:"3600"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty" example:"2592000"`
}

// RefreshTokenRequest carries a refresh token for rotation or logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest is a customer self sign-up
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email" example:"jo@example.org"`
	Password  string  `json:"password" binding:"required,min=8" example:"Passw0rd!"`
	FirstName string  `json:"firstName" binding:"required,max=100" example:"Jo"`
	LastName  string  `json:"lastName" binding:"required,max=100" example:"Citizen"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=50" example:"0400 000 000"`
}

// UserResponse is the authenticated account as seen by clients
type UserResponse struct {
	ID           int64           `json:"id" example:"1"`
	Email        string          `json:"email" example:"jo@example.org"`
	FirstName    string          `json:"firstName" example:"Jo"`
	LastName     string          `json:"lastName" example:"Citizen"`
	RoleType     models.RoleType `json:"roleType" example:"CUSTOMER"`
	RoleID       *int64          `json:"roleId,omitempty"`
	Permissions  []string        `json:"permissions,omitempty"`
	CustomerID   *int64          `json:"customerId,omitempty"`
	InstructorID *int64          `json:"instructorId,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}

// CreateUserRequest lets staff create a staff or instructor login
type CreateUserRequest struct {
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required,min=8"`
	FirstName    string          `json:"firstName" binding:"required,max=100"`
	LastName     string          `json:"lastName" binding:"required,max=100"`
	RoleType     models.RoleType `json:"roleType" binding:"required,oneof=STAFF INSTRUCTOR" example:"STAFF"`
	RoleID       *int64          `json:"roleId,omitempty" binding:"omitempty,min=1"`
	InstructorID *int64          `json:"instructorId,omitempty" binding:"omitempty,min=1"`
}

// AssignRoleRequest moves a staff user to another role
type AssignRoleRequest struct {
	RoleID int64 `json:"roleId" binding:"required,min=1" example:"2"`
}

// RoleRequest creates or replaces a role
type RoleRequest struct {
	Name        string   `json:"name" binding:"required,max=100" example:"Front desk"`
	Description string   `json:"description" binding:"max=500"`
	Permissions []string `json:"permissions" binding:"required,dive,required" example:"customers.read,enrollments.write"`
}

// PermissionResponse describes one permission code
type PermissionResponse struct {
	Code        string `json:"code" example:"reports.export"`
	Description string `json:"description" example:"Export reports"`
}
