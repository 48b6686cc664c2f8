package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/middleware"
)

// VenueUseCases is the venue service as seen by controllers
type VenueUseCases interface {
	List(ctx context.Context, activeOnly bool) ([]*models.Venue, error)
	Get(ctx context.Context, id int64) (*models.Venue, error)
	Create(ctx context.Context, req *dto.VenueRequest) (*models.Venue, error)
	Update(ctx context.Context, id int64, req *dto.VenueRequest) (*models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// InstructorUseCases is the instructor service as seen by controllers
type InstructorUseCases interface {
	List(ctx context.Context, activeOnly bool) ([]*models.Instructor, error)
	Get(ctx context.Context, id int64) (*models.Instructor, error)
	Create(ctx context.Context, req *dto.InstructorRequest) (*models.Instructor, error)
	Update(ctx context.Context, id int64, req *dto.InstructorRequest) (*models.Instructor, error)
	Delete(ctx context.Context, id int64) error
}

// TermUseCases is the term service as seen by controllers
type TermUseCases interface {
	List(ctx context.Context) ([]*models.Term, error)
	ListOpen(ctx context.Context) ([]*models.Term, error)
	Get(ctx context.Context, id int64) (*models.Term, error)
	Create(ctx context.Context, req *dto.TermRequest) (*models.Term, error)
	Update(ctx context.Context, id int64, req *dto.TermRequest) (*models.Term, error)
	Delete(ctx context.Context, id int64) error
}

// EnquirySubmitter stores contact form submissions
type EnquirySubmitter interface {
	Submit(ctx context.Context, req *dto.EnquiryRequest) (*models.Enquiry, error)
}

// ClassLister lists classes for the public timetable
type ClassLister interface {
	List(ctx context.Context, filter dto.ClassFilter) ([]*models.Class, error)
}

// PublicController serves the unauthenticated catalogue
type PublicController struct {
	terms       TermUseCases
	venues      VenueUseCases
	classes     ClassLister
	enquiries   EnquirySubmitter
	paqQuestion func() []models.PAQQuestion
	logger      zerolog.Logger
}

// NewPublicController creates a new PublicController
func NewPublicController(terms TermUseCases, venues VenueUseCases, classes ClassLister, enquiries EnquirySubmitter, paqQuestions func() []models.PAQQuestion, logger zerolog.Logger) *PublicController {
	return &PublicController{
		terms:       terms,
		venues:      venues,
		classes:     classes,
		enquiries:   enquiries,
		paqQuestion: paqQuestions,
		logger:      logger,
	}
}

// ListTerms returns terms open for enrollment
// @Summary Open terms
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Term}
// @Router /public/terms [get]
func (c *PublicController) ListTerms(ctx *gin.Context) {
	terms, err := c.terms.ListOpen(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, terms, "")
}

// ListClasses returns the public timetable
// @Summary Active classes
// @Description Active classes with venue, instructor, schedule, price and remaining seats
// @Tags public
// @Produce json
// @Param termId query int false "Term ID"
// @Param venueId query int false "Venue ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Failure 400 {object} dto.ErrorResponse
// @Router /public/classes [get]
func (c *PublicController) ListClasses(ctx *gin.Context) {
	termID, ok := parseIDQuery(ctx, "termId")
	if !ok {
		return
	}
	venueID, ok := parseIDQuery(ctx, "venueId")
	if !ok {
		return
	}

	classes, err := c.classes.List(ctx.Request.Context(), dto.ClassFilter{TermID: termID, VenueID: venueID, ActiveOnly: true})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classes, "")
}

// ListVenues returns active venues
// @Summary Active venues
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Venue}
// @Router /public/venues [get]
func (c *PublicController) ListVenues(ctx *gin.Context) {
	venues, err := c.venues.List(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, venues, "")
}

// PAQQuestions returns the screening questions
// @Summary Questionnaire questions
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.PAQQuestion}
// @Router /public/paq/questions [get]
func (c *PublicController) PAQQuestions(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.paqQuestion(), "")
}

// SubmitEnquiry stores a contact form
// @Summary Submit an enquiry
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.EnquiryRequest true "Enquiry"
// @Success 201 {object} dto.APIResponse{data=models.Enquiry}
// @Failure 400 {object} dto.ErrorResponse
// @Router /public/enquiries [post]
func (c *PublicController) SubmitEnquiry(ctx *gin.Context) {
	var req dto.EnquiryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	enquiry, err := c.enquiries.Submit(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("enquiryID", enquiry.ID).Msg("Enquiry received")
	respond(ctx, http.StatusCreated, enquiry, "Enquiry received")
}

// CatalogueController manages venues, instructors and terms
type CatalogueController struct {
	venues      VenueUseCases
	instructors InstructorUseCases
	terms       TermUseCases
}

// NewCatalogueController creates a new CatalogueController
func NewCatalogueController(venues VenueUseCases, instructors InstructorUseCases, terms TermUseCases) *CatalogueController {
	return &CatalogueController{venues: venues, instructors: instructors, terms: terms}
}

// ListVenues returns every venue
// @Summary List venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Venue}
// @Router /admin/venues [get]
func (c *CatalogueController) ListVenues(ctx *gin.Context) {
	venues, err := c.venues.List(ctx.Request.Context(), false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, venues, "")
}

// GetVenue returns one venue
// @Summary Get venue
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Success 200 {object} dto.APIResponse{data=models.Venue}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/venues/{id} [get]
func (c *CatalogueController) GetVenue(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	venue, err := c.venues.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, venue, "")
}

// CreateVenue adds a venue
// @Summary Create venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VenueRequest true "Venue"
// @Success 201 {object} dto.APIResponse{data=models.Venue}
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Router /admin/venues [post]
func (c *CatalogueController) CreateVenue(ctx *gin.Context) {
	var req dto.VenueRequest
	if !bindJSON(ctx, &req) {
		return
	}
	venue, err := c.venues.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, venue, "Venue created")
}

// UpdateVenue replaces a venue
// @Summary Update venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Param request body dto.VenueRequest true "Venue"
// @Success 200 {object} dto.APIResponse{data=models.Venue}
// @Router /admin/venues/{id} [put]
func (c *CatalogueController) UpdateVenue(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.VenueRequest
	if !bindJSON(ctx, &req) {
		return
	}
	venue, err := c.venues.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, venue, "Venue updated")
}

// DeleteVenue removes a venue no class uses
// @Summary Delete venue
// @Tags venues
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse "Venue in use"
// @Router /admin/venues/{id} [delete]
func (c *CatalogueController) DeleteVenue(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.venues.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListInstructors returns every instructor
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active instructors"
// @Success 200 {object} dto.APIResponse{data=[]models.Instructor}
// @Router /admin/instructors [get]
func (c *CatalogueController) ListInstructors(ctx *gin.Context) {
	active, ok := parseBoolQuery(ctx, "active")
	if !ok {
		return
	}
	instructors, err := c.instructors.List(ctx.Request.Context(), active != nil && *active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, instructors, "")
}

// GetInstructor returns one instructor
// @Summary Get instructor
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=models.Instructor}
// @Router /admin/instructors/{id} [get]
func (c *CatalogueController) GetInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	instructor, err := c.instructors.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, instructor, "")
}

// CreateInstructor adds an instructor
// @Summary Create instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InstructorRequest true "Instructor"
// @Success 201 {object} dto.APIResponse{data=models.Instructor}
// @Router /admin/instructors [post]
func (c *CatalogueController) CreateInstructor(ctx *gin.Context) {
	var req dto.InstructorRequest
	if !bindJSON(ctx, &req) {
		return
	}
	instructor, err := c.instructors.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, instructor, "Instructor created")
}

// UpdateInstructor replaces an instructor
// @Summary Update instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.InstructorRequest true "Instructor"
// @Success 200 {object} dto.APIResponse{data=models.Instructor}
// @Router /admin/instructors/{id} [put]
func (c *CatalogueController) UpdateInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.InstructorRequest
	if !bindJSON(ctx, &req) {
		return
	}
	instructor, err := c.instructors.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, instructor, "Instructor updated")
}

// DeleteInstructor removes an instructor no class uses
// @Summary Delete instructor
// @Tags instructors
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 204
// @Router /admin/instructors/{id} [delete]
func (c *CatalogueController) DeleteInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.instructors.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListTerms returns every term
// @Summary List terms
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Term}
// @Router /admin/terms [get]
func (c *CatalogueController) ListTerms(ctx *gin.Context) {
	terms, err := c.terms.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, terms, "")
}

// GetTerm returns one term
// @Summary Get term
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=models.Term}
// @Router /admin/terms/{id} [get]
func (c *CatalogueController) GetTerm(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	term, err := c.terms.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, term, "")
}

// CreateTerm adds a term
// @Summary Create term
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TermRequest true "Term"
// @Success 201 {object} dto.APIResponse{data=models.Term}
// @Failure 400 {object} dto.ErrorResponse "End date before start date"
// @Router /admin/terms [post]
func (c *CatalogueController) CreateTerm(ctx *gin.Context) {
	var req dto.TermRequest
	if !bindJSON(ctx, &req) {
		return
	}
	term, err := c.terms.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, term, "Term created")
}

// UpdateTerm replaces a term
// @Summary Update term
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Param request body dto.TermRequest true "Term"
// @Success 200 {object} dto.APIResponse{data=models.Term}
// @Router /admin/terms/{id} [put]
func (c *CatalogueController) UpdateTerm(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.TermRequest
	if !bindJSON(ctx, &req) {
		return
	}
	term, err := c.terms.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, term, "Term updated")
}

// DeleteTerm removes a term no class uses
// @Summary Delete term
// @Tags terms
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 204
// @Router /admin/terms/{id} [delete]
func (c *CatalogueController) DeleteTerm(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.terms.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
