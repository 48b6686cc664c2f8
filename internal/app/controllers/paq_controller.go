package controllers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/middleware"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// PAQUseCases is the questionnaire service as seen by controllers
type PAQUseCases interface {
	Submit(ctx context.Context, userID int64, req *dto.SubmitPAQRequest) (*models.PAQForm, error)
	Latest(ctx context.Context, userID int64) (*models.PAQForm, error)
	UploadCertificate(ctx context.Context, userID, formID int64, filename string, size int64, r io.Reader) (*models.PAQForm, error)
	List(ctx context.Context, filter dto.ListFilter) ([]*models.PAQForm, int64, error)
	Get(ctx context.Context, id int64) (*models.PAQForm, error)
	Review(ctx context.Context, actor services.Actor, id int64, req *dto.ReviewPAQRequest) (*models.PAQForm, error)
}

// FileURLResolver hands out links to stored files
type FileURLResolver interface {
	URL(ctx context.Context, actor services.Actor, fileID int64) (*dto.FileURLResponse, error)
}

// PAQController handles questionnaires, certificates and file links
type PAQController struct {
	paq    PAQUseCases
	files  FileURLResolver
	logger zerolog.Logger
}

// NewPAQController creates a new PAQController
func NewPAQController(paq PAQUseCases, files FileURLResolver, logger zerolog.Logger) *PAQController {
	return &PAQController{paq: paq, files: files, logger: logger}
}

// Submit answers the questionnaire
// @Summary Submit questionnaire
// @Description Every question must be answered; any yes requires a medical certificate
// @Tags paq
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitPAQRequest true "Answers by question code"
// @Success 201 {object} dto.APIResponse{data=models.PAQForm}
// @Failure 400 {object} dto.ErrorResponse "Missing or unknown answers"
// @Router /me/paq [post]
func (c *PAQController) Submit(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.SubmitPAQRequest
	if !bindJSON(ctx, &req) {
		return
	}

	form, err := c.paq.Submit(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, form, "Questionnaire submitted")
}

// Latest returns the caller's most recent questionnaire
// @Summary My questionnaire
// @Tags paq
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.PAQForm}
// @Failure 404 {object} dto.ErrorResponse "Nothing submitted yet"
// @Router /me/paq [get]
func (c *PAQController) Latest(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	form, err := c.paq.Latest(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, form, "")
}

// UploadCertificate attaches a medical certificate to a pending questionnaire
// @Summary Upload medical certificate
// @Tags paq
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param file formData file true "PDF, PNG or JPEG"
// @Success 201 {object} dto.APIResponse{data=models.PAQForm}
// @Failure 400 {object} dto.ErrorResponse "Unsupported file type"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /me/paq/{id}/certificate [post]
func (c *PAQController) UploadCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, "file", "File is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded file")
		badRequest(ctx, "file", "Could not read uploaded file")
		return
	}
	defer file.Close()

	form, err := c.paq.UploadCertificate(ctx.Request.Context(), actor.UserID, id, filepath.Base(header.Filename), header.Size, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, form, "Certificate uploaded")
}

// List returns questionnaires for review
// @Summary List questionnaires
// @Tags paq
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.PAQForm}}
// @Router /admin/paq [get]
func (c *PAQController) List(ctx *gin.Context) {
	filter := helpers.ParseListFilter(ctx)
	forms, total, err := c.paq.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, forms, total, filter)
}

// Get returns one questionnaire
// @Summary Get questionnaire
// @Tags paq
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Success 200 {object} dto.APIResponse{data=models.PAQForm}
// @Router /admin/paq/{id} [get]
func (c *PAQController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	form, err := c.paq.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, form, "")
}

// Review approves or rejects a questionnaire
// @Summary Review questionnaire
// @Tags paq
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param request body dto.ReviewPAQRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.PAQForm}
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Failure 422 {object} dto.ErrorResponse "Certificate required"
// @Router /admin/paq/{id}/review [post]
func (c *PAQController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.ReviewPAQRequest
	if !bindJSON(ctx, &req) {
		return
	}

	form, err := c.paq.Review(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("paqID", id).Bool("approved", *req.Approve).Msg("Questionnaire reviewed")
	respond(ctx, http.StatusOK, form, "Questionnaire reviewed")
}

// FileURL returns a link to a stored file
// @Summary File link
// @Description Only the uploader or staff holding paq.read may read a file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} dto.APIResponse{data=dto.FileURLResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Router /files/{id} [get]
func (c *PAQController) FileURL(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	link, err := c.files.URL(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, link, "")
}
