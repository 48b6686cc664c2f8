package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/middleware"
)

// AttendanceUseCases is the instructor portal service as seen by controllers
type AttendanceUseCases interface {
	Classes(ctx context.Context, actor services.Actor) ([]*models.Class, error)
	Sessions(ctx context.Context, actor services.Actor, from, to *time.Time) ([]*models.Session, error)
	AuthorizeLiveFeed(ctx context.Context, actor services.Actor, sessionID int64) error
	Roster(ctx context.Context, actor services.Actor, sessionID int64) ([]*models.RosterEntry, error)
	Save(ctx context.Context, actor services.Actor, sessionID int64, req *dto.SaveAttendanceRequest) ([]*models.RosterEntry, error)
}

// InstructorController serves the instructor portal
type InstructorController struct {
	attendance AttendanceUseCases
	live       LiveFeed
	logger     zerolog.Logger
}

// NewInstructorController creates a new instructor controller
func NewInstructorController(attendance AttendanceUseCases, live LiveFeed, logger zerolog.Logger) *InstructorController {
	return &InstructorController{
		attendance: attendance,
		live:       live,
		logger:     logger,
	}
}

// Classes returns the caller's classes
// @Summary My classes
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Failure 403 {object} dto.ErrorResponse "Login is not linked to an instructor"
// @Router /instructor/classes [get]
func (c *InstructorController) Classes(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	classes, err := c.attendance.Classes(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classes, "")
}

// Sessions returns the caller's sessions in a date range
// @Summary My sessions
// @Description Defaults to today through the next 14 days
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Session}
// @Router /instructor/sessions [get]
func (c *InstructorController) Sessions(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	from, ok := parseDateQuery(ctx, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(ctx, "to")
	if !ok {
		return
	}

	sessions, err := c.attendance.Sessions(ctx.Request.Context(), actor, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, sessions, "")
}

// Roster returns the bookings of one of the caller's sessions
// @Summary Session roster
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]models.RosterEntry}
// @Failure 403 {object} dto.ErrorResponse "Session belongs to another instructor"
// @Router /instructor/sessions/{id}/roster [get]
func (c *InstructorController) Roster(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	roster, err := c.attendance.Roster(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, roster, "")
}

// SaveAttendance marks bookings of one of the caller's sessions
// @Summary Save attendance
// @Description Upserts one mark per booking and pushes the roster to live watchers
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.SaveAttendanceRequest true "Marks"
// @Success 200 {object} dto.APIResponse{data=[]models.RosterEntry}
// @Failure 400 {object} dto.ErrorResponse "Booking not in this session"
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/sessions/{id}/attendance [put]
func (c *InstructorController) SaveAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	var req dto.SaveAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	roster, err := c.attendance.Save(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("sessionID", id).Int("records", len(req.Records)).Msg("Attendance saved")
	respond(ctx, http.StatusOK, roster, "Attendance saved")
}

// Live streams attendance updates of one of the caller's sessions
// @Summary Watch my session live
// @Description WebSocket feed. Pass the access token as the token query parameter.
// @Tags instructor
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param token query string false "Access token"
// @Success 101
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/sessions/{id}/live [get]
func (c *InstructorController) Live(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	if err := c.attendance.AuthorizeLiveFeed(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.live.ServeSession(ctx, id, actor.UserID)
}
