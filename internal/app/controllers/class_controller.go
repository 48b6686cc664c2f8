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
)

// ClassUseCases is the class and session service as seen by controllers
type ClassUseCases interface {
	ClassLister
	Get(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, req *dto.ClassRequest) (*models.Class, error)
	Update(ctx context.Context, id int64, req *dto.ClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id int64) error
	GenerateSessions(ctx context.Context, classID int64, req *dto.GenerateSessionsRequest) (*dto.GenerateSessionsResponse, error)
	ListSessions(ctx context.Context, filter dto.SessionFilter) ([]*models.Session, error)
	GetSession(ctx context.Context, id int64) (*models.Session, error)
	UpdateSession(ctx context.Context, actor services.Actor, sessionID int64, req *dto.UpdateSessionRequest) (*dto.SessionUpdateResult, error)
}

// SessionAttendanceReader reads a session's roster for staff
type SessionAttendanceReader interface {
	SessionAttendance(ctx context.Context, sessionID int64) ([]*models.RosterEntry, error)
}

// LiveFeed upgrades a request into a session watcher
type LiveFeed interface {
	ServeSession(c *gin.Context, sessionID, userID int64)
}

// ClassController handles classes and their sessions
type ClassController struct {
	classes    ClassUseCases
	attendance SessionAttendanceReader
	live       LiveFeed
	logger     zerolog.Logger
}

// NewClassController creates a new ClassController
func NewClassController(classes ClassUseCases, attendance SessionAttendanceReader, live LiveFeed, logger zerolog.Logger) *ClassController {
	return &ClassController{classes: classes, attendance: attendance, live: live, logger: logger}
}

// List returns classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param termId query int false "Term ID"
// @Param venueId query int false "Venue ID"
// @Param instructorId query int false "Instructor ID"
// @Param active query bool false "Only active classes"
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Router /admin/classes [get]
func (c *ClassController) List(ctx *gin.Context) {
	var filter dto.ClassFilter
	var ok bool
	if filter.TermID, ok = parseIDQuery(ctx, "termId"); !ok {
		return
	}
	if filter.VenueID, ok = parseIDQuery(ctx, "venueId"); !ok {
		return
	}
	if filter.InstructorID, ok = parseIDQuery(ctx, "instructorId"); !ok {
		return
	}
	active, ok := parseBoolQuery(ctx, "active")
	if !ok {
		return
	}
	filter.ActiveOnly = active != nil && *active

	classes, err := c.classes.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classes, "")
}

// Get returns one class
// @Summary Get class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.Class}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/classes/{id} [get]
func (c *ClassController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	class, err := c.classes.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, class, "")
}

// Create adds a class
// @Summary Create class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClassRequest true "Class"
// @Success 201 {object} dto.APIResponse{data=models.Class}
// @Failure 400 {object} dto.ErrorResponse "Start time not before end time"
// @Router /admin/classes [post]
func (c *ClassController) Create(ctx *gin.Context) {
	var req dto.ClassRequest
	if !bindJSON(ctx, &req) {
		return
	}
	class, err := c.classes.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, class, "Class created")
}

// Update replaces a class
// @Summary Update class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.ClassRequest true "Class"
// @Success 200 {object} dto.APIResponse{data=models.Class}
// @Router /admin/classes/{id} [put]
func (c *ClassController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ClassRequest
	if !bindJSON(ctx, &req) {
		return
	}
	class, err := c.classes.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, class, "Class updated")
}

// Delete removes a class without bookings
// @Summary Delete class
// @Tags classes
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse "Class has bookings"
// @Router /admin/classes/{id} [delete]
func (c *ClassController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.classes.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GenerateSessions creates the weekly sessions of a class across its term
// @Summary Generate sessions
// @Description Creates one session per matching weekday in the term, skipping listed and existing dates
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.GenerateSessionsRequest false "Dates to skip"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateSessionsResponse}
// @Router /admin/classes/{id}/sessions/generate [post]
func (c *ClassController) GenerateSessions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.GenerateSessionsRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	result, err := c.classes.GenerateSessions(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("classID", id).Int("created", result.Created).Msg("Sessions generated")
	respond(ctx, http.StatusCreated, result, "Sessions generated")
}

// ListSessions returns sessions by class and date range
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Class ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param status query string false "SCHEDULED, CANCELLED or COMPLETED"
// @Success 200 {object} dto.APIResponse{data=[]models.Session}
// @Router /admin/sessions [get]
func (c *ClassController) ListSessions(ctx *gin.Context) {
	var filter dto.SessionFilter
	var ok bool
	if filter.ClassID, ok = parseIDQuery(ctx, "classId"); !ok {
		return
	}
	if filter.From, ok = parseDateQuery(ctx, "from"); !ok {
		return
	}
	if filter.To, ok = parseDateQuery(ctx, "to"); !ok {
		return
	}
	switch status := models.SessionStatus(ctx.Query("status")); status {
	case "", models.SessionScheduled, models.SessionCancelled, models.SessionCompleted:
		filter.Status = status
	default:
		badRequest(ctx, "status", "Invalid session status")
		return
	}

	sessions, err := c.classes.ListSessions(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, sessions, "")
}

// GetSession returns one session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.Session}
// @Router /admin/sessions/{id} [get]
func (c *ClassController) GetSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	session, err := c.classes.GetSession(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, session, "")
}

// UpdateSession changes a session's status or notes
// @Summary Update session
// @Description Cancelling a session cancels its bookings and credits each customer
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Status and notes"
// @Success 200 {object} dto.APIResponse{data=dto.SessionUpdateResult}
// @Router /admin/sessions/{id} [put]
func (c *ClassController) UpdateSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.UpdateSessionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.classes.UpdateSession(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, result, "Session updated")
}

// SessionAttendance returns the roster with attendance marks
// @Summary Session attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]models.RosterEntry}
// @Router /admin/sessions/{id}/attendance [get]
func (c *ClassController) SessionAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	roster, err := c.attendance.SessionAttendance(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, roster, "")
}

// Live streams attendance updates of any session to staff
// @Summary Watch a session live
// @Description WebSocket feed of attendance updates. Pass the access token as the token query parameter.
// @Tags attendance
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param token query string false "Access token"
// @Success 101
// @Router /admin/sessions/{id}/live [get]
func (c *ClassController) Live(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	if _, err := c.classes.GetSession(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.live.ServeSession(ctx, id, actor.UserID)
}
