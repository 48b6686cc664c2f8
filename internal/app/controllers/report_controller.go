package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/middleware"
	"github.com/sharecrm/share/internal/pkg/export"
)

// ReportUseCases builds exportable reports
type ReportUseCases interface {
	Enrollments(ctx context.Context, termID int64, format export.Format) (*services.Report, error)
	Attendance(ctx context.Context, classID int64, format export.Format) (*services.Report, error)
	Payments(ctx context.Context, from, to *time.Time, format export.Format) (*services.Report, error)
	Customers(ctx context.Context, format export.Format) (*services.Report, error)
}

// ReportController streams CSV, XLSX and PDF exports
type ReportController struct {
	reports ReportUseCases
	logger  zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reports ReportUseCases, logger zerolog.Logger) *ReportController {
	return &ReportController{reports: reports, logger: logger}
}

func (c *ReportController) format(ctx *gin.Context) (export.Format, bool) {
	f, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		badRequest(ctx, "format", err.Error())
		return "", false
	}
	return f, true
}

func (c *ReportController) send(ctx *gin.Context, report *services.Report, err error) {
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename()))
	ctx.Header("Content-Type", report.ContentType())
	ctx.Status(http.StatusOK)
	if err := report.Write(ctx.Writer); err != nil {
		// headers are gone, the client sees a truncated file
		c.logger.Error().Err(err).Str("report", report.Filename()).Msg("Failed to write report")
		_ = ctx.Error(err)
	}
}

// Enrollments exports the enrollments of a term
// @Summary Enrollment report
// @Tags reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Security BearerAuth
// @Param termId query int true "Term ID"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/reports/enrollments [get]
func (c *ReportController) Enrollments(ctx *gin.Context) {
	termID, ok := parseIDQuery(ctx, "termId")
	if !ok {
		return
	}
	if termID == 0 {
		badRequest(ctx, "termId", "termId is required")
		return
	}
	format, ok := c.format(ctx)
	if !ok {
		return
	}
	report, err := c.reports.Enrollments(ctx.Request.Context(), termID, format)
	c.send(ctx, report, err)
}

// Attendance exports the attendance of a class
// @Summary Attendance report
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param classId query int true "Class ID"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Router /admin/reports/attendance [get]
func (c *ReportController) Attendance(ctx *gin.Context) {
	classID, ok := parseIDQuery(ctx, "classId")
	if !ok {
		return
	}
	if classID == 0 {
		badRequest(ctx, "classId", "classId is required")
		return
	}
	format, ok := c.format(ctx)
	if !ok {
		return
	}
	report, err := c.reports.Attendance(ctx.Request.Context(), classID, format)
	c.send(ctx, report, err)
}

// Payments exports payments in a date range
// @Summary Payment report
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Router /admin/reports/payments [get]
func (c *ReportController) Payments(ctx *gin.Context) {
	from, ok := parseDateQuery(ctx, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(ctx, "to")
	if !ok {
		return
	}
	format, ok := c.format(ctx)
	if !ok {
		return
	}
	report, err := c.reports.Payments(ctx.Request.Context(), from, to, format)
	c.send(ctx, report, err)
}

// Customers exports every customer
// @Summary Customer report
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Router /admin/reports/customers [get]
func (c *ReportController) Customers(ctx *gin.Context) {
	format, ok := c.format(ctx)
	if !ok {
		return
	}
	report, err := c.reports.Customers(ctx.Request.Context(), format)
	c.send(ctx, report, err)
}
