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

// CancellationUseCases is the cancellation service as seen by controllers
type CancellationUseCases interface {
	Request(ctx context.Context, userID, bookingID int64, req *dto.CancellationRequest) (*models.Cancellation, error)
	ListMine(ctx context.Context, userID int64, filter dto.ListFilter) ([]*models.Cancellation, int64, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*models.Cancellation, int64, error)
	Approve(ctx context.Context, actor services.Actor, id int64, req *dto.ApproveCancellationRequest) (*models.Cancellation, error)
	Reject(ctx context.Context, actor services.Actor, id int64, req *dto.RejectCancellationRequest) (*models.Cancellation, error)
}

// CancellationController handles booking cancellation requests
type CancellationController struct {
	cancellations CancellationUseCases
	logger        zerolog.Logger
}

// NewCancellationController creates a new CancellationController
func NewCancellationController(cancellations CancellationUseCases, logger zerolog.Logger) *CancellationController {
	return &CancellationController{cancellations: cancellations, logger: logger}
}

// Request asks to cancel one of the caller's bookings
// @Summary Request cancellation
// @Tags cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body dto.CancellationRequest false "Reason"
// @Success 201 {object} dto.APIResponse{data=models.Cancellation}
// @Failure 409 {object} dto.ErrorResponse "Request already pending"
// @Failure 422 {object} dto.ErrorResponse "Inside the notice period"
// @Router /me/bookings/{id}/cancellation [post]
func (c *CancellationController) Request(ctx *gin.Context) {
	bookingID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.CancellationRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	cancellation, err := c.cancellations.Request(ctx.Request.Context(), actor.UserID, bookingID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, cancellation, "Cancellation requested")
}

// ListMine returns the caller's cancellation requests
// @Summary My cancellations
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Cancellation}}
// @Router /me/cancellations [get]
func (c *CancellationController) ListMine(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	filter := helpers.ParseListFilter(ctx)
	items, total, err := c.cancellations.ListMine(ctx.Request.Context(), actor.UserID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, items, total, filter)
}

// List returns cancellation requests for review
// @Summary List cancellations
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Cancellation}}
// @Router /admin/cancellations [get]
func (c *CancellationController) List(ctx *gin.Context) {
	filter := helpers.ParseListFilter(ctx)
	items, total, err := c.cancellations.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, items, total, filter)
}

// Approve cancels the booking and credits the customer
// @Summary Approve cancellation
// @Tags cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cancellation ID"
// @Param request body dto.ApproveCancellationRequest false "Credit override and notes"
// @Success 200 {object} dto.APIResponse{data=models.Cancellation}
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/cancellations/{id}/approve [post]
func (c *CancellationController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.ApproveCancellationRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	cancellation, err := c.cancellations.Approve(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("cancellationID", id).Int64("reviewerID", actor.UserID).Msg("Cancellation approved")
	respond(ctx, http.StatusOK, cancellation, "Cancellation approved")
}

// Reject declines a cancellation request
// @Summary Reject cancellation
// @Tags cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cancellation ID"
// @Param request body dto.RejectCancellationRequest false "Notes"
// @Success 200 {object} dto.APIResponse{data=models.Cancellation}
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/cancellations/{id}/reject [post]
func (c *CancellationController) Reject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.RejectCancellationRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	cancellation, err := c.cancellations.Reject(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, cancellation, "Cancellation rejected")
}
