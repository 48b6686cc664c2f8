package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
	ContextRoleID   = "roleID"
)

// PermissionChecker answers whether a login currently holds a permission code
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID int64, code string) (bool, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	perms      PermissionChecker
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, perms PermissionChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		perms:      perms,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func abortForbidden(c *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
}

// tokenFromRequest reads the bearer token. Browsers cannot set headers on a
// websocket handshake, so the token query parameter is accepted too.
func tokenFromRequest(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		header = c.Query("token")
	}
	if header == "" {
		return "", auth.ErrInvalidFormat
	}
	header = strings.Trim(strings.TrimSpace(header), "\"'")
	return auth.ExtractBearerToken(header)
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)
		if claims.RoleID != nil {
			c.Set(ContextRoleID, *claims.RoleID)
		}

		c.Next()
	}
}

// RoleRequired lets through only the listed role types
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}
		for _, r := range roles {
			if actor.RoleType == r {
				c.Next()
				return
			}
		}
		abortForbidden(c, "You don't have sufficient permissions for this operation")
	}
}

// RequirePermission lets through staff whose current role holds code
func (m *AuthMiddleware) RequirePermission(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		allowed, err := m.perms.HasPermission(c.Request.Context(), actor.UserID, code)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if !allowed {
			abortForbidden(c, "missing permission "+code)
			return
		}

		c.Next()
	}
}

// CurrentActor reads the caller placed in the context by JWTAuth
func CurrentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return services.Actor{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		return services.Actor{}, false
	}
	actor := services.Actor{UserID: id}
	if roleType, ok := c.Get(ContextRoleType); ok {
		actor.RoleType, _ = roleType.(models.RoleType)
	}
	if roleID, ok := c.Get(ContextRoleID); ok {
		if rid, ok := roleID.(int64); ok {
			actor.RoleID = &rid
		}
	}
	return actor, actor.RoleType != ""
}
