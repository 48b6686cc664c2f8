package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/export"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// Report is an export ready to be written
type Report struct {
	Name        string
	Format      export.Format
	Table       *export.Table
	GeneratedAt time.Time
}

// Filename is "<name>-<yyyymmdd>.<ext>"
func (r *Report) Filename() string {
	return fmt.Sprintf("%s-%s.%s", r.Name, r.GeneratedAt.Format("20060102"), r.Format.Extension())
}

// ContentType of the rendered report
func (r *Report) ContentType() string {
	return r.Format.ContentType()
}

// Write renders the report to w
func (r *Report) Write(w io.Writer) error {
	return export.Write(w, r.Format, r.Table)
}

// ReportService builds admin exports
type ReportService struct {
	reports   ReportStore
	customers CustomerStore
	terms     TermStore
	classes   ClassStore
	settings  Settings
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(reports ReportStore, customers CustomerStore, terms TermStore, classes ClassStore, settings Settings, logger zerolog.Logger) *ReportService {
	return &ReportService{
		reports:   reports,
		customers: customers,
		terms:     terms,
		classes:   classes,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

func dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (s *ReportService) newReport(name, title string, format export.Format, headers []string, rows [][]string) *Report {
	now := s.now()
	if rows == nil {
		rows = [][]string{}
	}
	s.logger.Info().Str("report", name).Str("format", string(format)).Int("rows", len(rows)).Msg("Report generated")
	return &Report{
		Name:        name,
		Format:      format,
		GeneratedAt: helpers.DateOnly(now, s.settings.Location),
		Table:       &export.Table{Title: title, Headers: headers, Rows: rows},
	}
}

// Enrollments lists each enrolled class of a term
func (s *ReportService) Enrollments(ctx context.Context, termID int64, format export.Format) (*Report, error) {
	if termID <= 0 {
		return nil, fmt.Errorf("%w: termId is required", apperrors.ErrValidationFailed)
	}
	term, err := s.terms.GetByID(ctx, termID)
	if err != nil {
		return nil, err
	}
	data, err := s.reports.EnrollmentRows(ctx, termID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(data))
	for _, r := range data {
		rows = append(rows, []string{
			strconv.FormatInt(r.EnrollmentID, 10),
			r.CustomerName,
			r.CustomerEmail,
			r.ClassName,
			strconv.Itoa(r.Sessions),
			string(r.Status),
			dollars(r.TotalCents),
			dollars(r.CreditCents),
			r.CreatedAt.In(s.settings.Location).Format(helpers.DateLayout),
		})
	}
	return s.newReport("enrollments", "Enrollments: "+term.Name, format,
		[]string{"Enrollment", "Customer", "Email", "Class", "Sessions", "Status", "Total", "Credit", "Enrolled"}, rows), nil
}

// Attendance lists every booking of a class's sessions with its mark
func (s *ReportService) Attendance(ctx context.Context, classID int64, format export.Format) (*Report, error) {
	if classID <= 0 {
		return nil, fmt.Errorf("%w: classId is required", apperrors.ErrValidationFailed)
	}
	class, err := s.classes.GetByID(ctx, classID, s.settings.Today(s.now()))
	if err != nil {
		return nil, err
	}
	data, err := s.reports.AttendanceRows(ctx, classID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(data))
	for _, r := range data {
		status := "NOT MARKED"
		if r.Status != nil {
			status = string(*r.Status)
		}
		rows = append(rows, []string{r.SessionDate.Format(helpers.DateLayout), r.ClassName, r.CustomerName, status})
	}
	return s.newReport("attendance", "Attendance: "+class.Name, format,
		[]string{"Date", "Class", "Customer", "Attendance"}, rows), nil
}

// Payments lists payments created between from and to
func (s *ReportService) Payments(ctx context.Context, from, to *time.Time, format export.Format) (*Report, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidationFailed)
	}
	data, err := s.reports.PaymentRows(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(data))
	for _, r := range data {
		ref := ""
		if r.ProviderReference != nil {
			ref = *r.ProviderReference
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.PaymentID, 10),
			strconv.FormatInt(r.EnrollmentID, 10),
			r.CustomerName,
			string(r.Method),
			string(r.Status),
			dollars(r.AmountCents),
			ref,
			r.CreatedAt.In(s.settings.Location).Format("2006-01-02 15:04"),
		})
	}
	return s.newReport("payments", "Payments", format,
		[]string{"Payment", "Enrollment", "Customer", "Method", "Status", "Amount", "Reference", "Created"}, rows), nil
}

// Customers lists every customer with PAQ status and credit
func (s *ReportService) Customers(ctx context.Context, format export.Format) (*Report, error) {
	data, err := s.customers.All(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(data))
	for _, c := range data {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.FirstName,
			c.LastName,
			c.Email,
			deref(c.Phone),
			string(c.PAQStatus),
			optionalDate(c.PAQExpiresAt, s.settings.Location),
			dollars(c.CreditCents),
			strconv.FormatBool(c.IsBlocked),
		})
	}
	return s.newReport("customers", "Customers", format,
		[]string{"ID", "First name", "Last name", "Email", "Phone", "PAQ", "PAQ expires", "Credit", "Blocked"}, rows), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(helpers.DateLayout)
}
