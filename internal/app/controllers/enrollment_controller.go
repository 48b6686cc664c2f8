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

// EnrollmentUseCases is the enrollment service as seen by controllers
type EnrollmentUseCases interface {
	Quote(ctx context.Context, userID int64, req *dto.EnrollmentRequest) (*dto.EnrollmentQuote, error)
	EnrollSelf(ctx context.Context, actor services.Actor, req *dto.EnrollmentRequest) (*dto.EnrollmentResult, error)
	EnrollOnBehalf(ctx context.Context, actor services.Actor, req *dto.AdminEnrollmentRequest) (*dto.EnrollmentResult, error)
	Get(ctx context.Context, id int64) (*models.Enrollment, error)
	GetMine(ctx context.Context, userID, id int64) (*models.Enrollment, error)
	ListMine(ctx context.Context, userID int64, filter dto.ListFilter) ([]*models.Enrollment, int64, error)
	List(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error)
	Cancel(ctx context.Context, actor services.Actor, id int64, req *dto.CancelEnrollmentRequest) (*models.Enrollment, error)
}

// EnrollmentController handles enrollments for customers and staff
type EnrollmentController struct {
	enrollments EnrollmentUseCases
	logger      zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollments EnrollmentUseCases, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{enrollments: enrollments, logger: logger}
}

// Quote prices an enrollment without writing anything
// @Summary Quote enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentRequest true "Term and classes"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentQuote}
// @Failure 400 {object} dto.ErrorResponse "No classes selected"
// @Failure 422 {object} dto.ErrorResponse "Enrollment rule failed"
// @Router /me/enrollments/quote [post]
func (c *EnrollmentController) Quote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.EnrollmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	quote, err := c.enrollments.Quote(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, quote, "")
}

// Enroll creates an enrollment for the caller
// @Summary Enroll
// @Description Books every upcoming session of the chosen classes. Card payments start PENDING.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentRequest true "Term, classes and payment"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResult}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already booked"
// @Failure 422 {object} dto.ErrorResponse "Class full, questionnaire missing or enrollment closed"
// @Router /me/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.EnrollmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.enrollments.EnrollSelf(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().
		Int64("enrollmentID", result.Enrollment.ID).
		Int64("userID", actor.UserID).
		Str("status", string(result.Enrollment.Status)).
		Msg("Enrollment created")
	respond(ctx, http.StatusCreated, result, "Enrollment created")
}

// ListMine returns the caller's enrollments
// @Summary My enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Enrollment status"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Enrollment}}
// @Router /me/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	filter := helpers.ParseListFilter(ctx)
	enrollments, total, err := c.enrollments.ListMine(ctx.Request.Context(), actor.UserID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, enrollments, total, filter)
}

// GetMine returns one of the caller's enrollments
// @Summary My enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 404 {object} dto.ErrorResponse
// @Router /me/enrollments/{id} [get]
func (c *EnrollmentController) GetMine(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	enrollment, err := c.enrollments.GetMine(ctx.Request.Context(), actor.UserID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollment, "")
}

// EnrollOnBehalf lets staff enroll a customer at the counter
// @Summary Enroll a customer
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminEnrollmentRequest true "Customer, term, classes and payment"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResult}
// @Failure 409 {object} dto.ErrorResponse "Already booked"
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/enrollments [post]
func (c *EnrollmentController) EnrollOnBehalf(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.AdminEnrollmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.enrollments.EnrollOnBehalf(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().
		Int64("enrollmentID", result.Enrollment.ID).
		Int64("customerID", req.CustomerID).
		Int64("staffID", actor.UserID).
		Msg("Enrollment created by staff")
	respond(ctx, http.StatusCreated, result, "Enrollment created")
}

// List returns enrollments
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param termId query int false "Term ID"
// @Param customerId query int false "Customer ID"
// @Param status query string false "Enrollment status"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Enrollment}}
// @Router /admin/enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	filter := dto.EnrollmentFilter{ListFilter: helpers.ParseListFilter(ctx)}
	var ok bool
	if filter.TermID, ok = parseIDQuery(ctx, "termId"); !ok {
		return
	}
	if filter.CustomerID, ok = parseIDQuery(ctx, "customerId"); !ok {
		return
	}

	enrollments, total, err := c.enrollments.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, enrollments, total, filter.ListFilter)
}

// Get returns one enrollment with its bookings
// @Summary Get enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Router /admin/enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	enrollment, err := c.enrollments.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollment, "")
}

// Cancel cancels a whole enrollment
// @Summary Cancel enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.CancelEnrollmentRequest false "Refund options"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 409 {object} dto.ErrorResponse "Already cancelled"
// @Router /admin/enrollments/{id}/cancel [post]
func (c *EnrollmentController) Cancel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.CancelEnrollmentRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollments.Cancel(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollment, "Enrollment cancelled")
}
