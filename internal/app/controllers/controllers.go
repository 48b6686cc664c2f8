// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/middleware"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

func badRequest(ctx *gin.Context, field, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField(field)
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// parseIDParam reads a positive int64 path parameter, writing a VAL_001 response when it is not one
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, name, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

// parseIDQuery reads an optional positive int64 query parameter; absent means 0
func parseIDQuery(ctx *gin.Context, name string) (int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, name, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

func parseDateQuery(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	d, err := helpers.ParseOptionalDate(&raw)
	if err != nil {
		badRequest(ctx, name, err.Error())
		return nil, false
	}
	return d, true
}

func parseBoolQuery(ctx *gin.Context, name string) (*bool, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(ctx, name, "Invalid "+name+" value")
		return nil, false
	}
	return &v, true
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		middleware.HandleBindError(ctx, err)
		return false
	}
	return true
}

// currentActor reads the caller; routes guarded by JWTAuth always have one
func currentActor(ctx *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return services.Actor{}, false
	}
	return actor, true
}

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

func respondPage(ctx *gin.Context, items interface{}, total int64, filter dto.ListFilter) {
	respond(ctx, http.StatusOK, helpers.NewPaginatedResponse(items, total, filter.Page, filter.Size), "")
}
