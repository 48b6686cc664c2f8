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

// PaymentUseCases is the payment service as seen by controllers
type PaymentUseCases interface {
	Confirm(ctx context.Context, userID, paymentID int64) (*dto.PaymentConfirmation, error)
	MarkPaid(ctx context.Context, actor services.Actor, paymentID int64, req *dto.MarkPaidRequest) (*dto.PaymentConfirmation, error)
	List(ctx context.Context, filter dto.PaymentFilter) ([]*models.Payment, int64, error)
}

// PaymentController handles payment confirmation and counter payments
type PaymentController struct {
	payments PaymentUseCases
	logger   zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(payments PaymentUseCases, logger zerolog.Logger) *PaymentController {
	return &PaymentController{payments: payments, logger: logger}
}

// Confirm checks a card payment with the gateway
// @Summary Confirm card payment
// @Description Fetches the payment intent; success activates the enrollment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentConfirmation}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Gateway unavailable"
// @Router /me/payments/{id}/confirm [post]
func (c *PaymentController) Confirm(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	result, err := c.payments.Confirm(ctx.Request.Context(), actor.UserID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("paymentID", id).Str("intentStatus", result.IntentStatus).Msg("Payment confirmation checked")
	respond(ctx, http.StatusOK, result, "")
}

// MarkPaid records a counter payment
// @Summary Mark payment paid
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.MarkPaidRequest false "Method"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentConfirmation}
// @Failure 409 {object} dto.ErrorResponse "Payment is not pending"
// @Router /admin/payments/{id}/mark-paid [post]
func (c *PaymentController) MarkPaid(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.MarkPaidRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	result, err := c.payments.MarkPaid(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, result, "Payment recorded")
}

// List returns payments
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param status query string false "PENDING, SUCCEEDED or FAILED"
// @Param method query string false "CARD, CASH, BANK_TRANSFER or CREDIT"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Payment}}
// @Router /admin/payments [get]
func (c *PaymentController) List(ctx *gin.Context) {
	filter := dto.PaymentFilter{ListFilter: helpers.ParseListFilter(ctx), Method: ctx.Query("method")}
	var ok bool
	if filter.From, ok = parseDateQuery(ctx, "from"); !ok {
		return
	}
	if filter.To, ok = parseDateQuery(ctx, "to"); !ok {
		return
	}

	payments, total, err := c.payments.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, payments, total, filter.ListFilter)
}
