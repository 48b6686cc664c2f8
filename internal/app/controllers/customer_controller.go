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

// CustomerUseCases is the customer service as seen by controllers
type CustomerUseCases interface {
	List(ctx context.Context, filter dto.CustomerFilter) ([]*models.Customer, int64, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req *dto.CustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *dto.CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
	Block(ctx context.Context, id int64, reason string) (*models.Customer, error)
	Unblock(ctx context.Context, id int64) (*models.Customer, error)
	Profile(ctx context.Context, userID int64) (*models.Customer, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.ProfileRequest) (*models.Customer, error)
}

// CreditUseCases is the credit ledger as seen by controllers
type CreditUseCases interface {
	Summary(ctx context.Context, customerID int64) (*dto.CreditSummaryResponse, error)
	SummaryForUser(ctx context.Context, userID int64) (*dto.CreditSummaryResponse, error)
	Adjust(ctx context.Context, actor services.Actor, customerID int64, req *dto.CreditAdjustmentRequest) (*models.CreditTransaction, error)
}

// CustomerController handles customer records and credit
type CustomerController struct {
	customers CustomerUseCases
	credit    CreditUseCases
	logger    zerolog.Logger
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(customers CustomerUseCases, credit CreditUseCases, logger zerolog.Logger) *CustomerController {
	return &CustomerController{customers: customers, credit: credit, logger: logger}
}

// List returns a page of customers
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email"
// @Param blocked query bool false "Filter by blocked flag"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Customer}}
// @Router /admin/customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	blocked, ok := parseBoolQuery(ctx, "blocked")
	if !ok {
		return
	}
	filter := dto.CustomerFilter{ListFilter: helpers.ParseListFilter(ctx), Blocked: blocked}

	customers, total, err := c.customers.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, customers, total, filter.ListFilter)
}

// Get returns one customer
// @Summary Get customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=models.Customer}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	customer, err := c.customers.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, customer, "")
}

// Create adds a customer record without a login
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CustomerRequest true "Customer"
// @Success 201 {object} dto.APIResponse{data=models.Customer}
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /admin/customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	customer, err := c.customers.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, customer, "Customer created")
}

// Update replaces a customer's details
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param request body dto.CustomerRequest true "Customer"
// @Success 200 {object} dto.APIResponse{data=models.Customer}
// @Router /admin/customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CustomerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	customer, err := c.customers.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, customer, "Customer updated")
}

// Delete removes a customer with no enrollments
// @Summary Delete customer
// @Tags customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse "Customer has enrollments"
// @Router /admin/customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.customers.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Block stops a customer from logging in and enrolling
// @Summary Block customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param request body dto.BlockCustomerRequest true "Reason"
// @Success 200 {object} dto.APIResponse{data=models.Customer}
// @Router /admin/customers/{id}/block [post]
func (c *CustomerController) Block(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.BlockCustomerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	customer, err := c.customers.Block(ctx.Request.Context(), id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("customerID", id).Msg("Customer blocked")
	respond(ctx, http.StatusOK, customer, "Customer blocked")
}

// Unblock lifts a block
// @Summary Unblock customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=models.Customer}
// @Router /admin/customers/{id}/unblock [post]
func (c *CustomerController) Unblock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	customer, err := c.customers.Unblock(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, customer, "Customer unblocked")
}

// Credit returns a customer's balance and ledger
// @Summary Customer credit
// @Tags credit
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=dto.CreditSummaryResponse}
// @Router /admin/customers/{id}/credit [get]
func (c *CustomerController) Credit(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	summary, err := c.credit.Summary(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, summary, "")
}

// AdjustCredit adds or removes credit
// @Summary Adjust credit
// @Description Applies a signed adjustment; the balance may not go negative
// @Tags credit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param request body dto.CreditAdjustmentRequest true "Adjustment"
// @Success 201 {object} dto.APIResponse{data=models.CreditTransaction}
// @Failure 400 {object} dto.ErrorResponse "Zero amount"
// @Failure 422 {object} dto.ErrorResponse "Insufficient credit"
// @Router /admin/customers/{id}/credit [post]
func (c *CustomerController) AdjustCredit(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.CreditAdjustmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	txn, err := c.credit.Adjust(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, txn, "Credit adjusted")
}

// Profile returns the caller's customer record
// @Summary My profile
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Customer}
// @Router /me/profile [get]
func (c *CustomerController) Profile(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	customer, err := c.customers.Profile(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, customer, "")
}

// UpdateProfile edits the caller's contact details
// @Summary Update my profile
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=models.Customer}
// @Router /me/profile [put]
func (c *CustomerController) UpdateProfile(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}
	customer, err := c.customers.UpdateProfile(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, customer, "Profile updated")
}

// MyCredit returns the caller's balance and ledger
// @Summary My credit
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CreditSummaryResponse}
// @Router /me/credit [get]
func (c *CustomerController) MyCredit(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	summary, err := c.credit.SummaryForUser(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, summary, "")
}
