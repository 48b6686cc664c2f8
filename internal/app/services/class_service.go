package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// ClassService manages classes and their sessions
type ClassService struct {
	tx          Transactor
	classes     ClassStore
	sessions    SessionStore
	terms       TermStore
	venues      VenueStore
	instructors InstructorStore
	bookings    BookingStore
	credit      CreditStore
	events      events.Publisher
	settings    Settings
	logger      zerolog.Logger
	now         func() time.Time
}

// NewClassService creates a new ClassService
func NewClassService(
	tx Transactor,
	classes ClassStore,
	sessions SessionStore,
	terms TermStore,
	venues VenueStore,
	instructors InstructorStore,
	bookings BookingStore,
	credit CreditStore,
	publisher events.Publisher,
	settings Settings,
	logger zerolog.Logger,
) *ClassService {
	return &ClassService{
		tx:          tx,
		classes:     classes,
		sessions:    sessions,
		terms:       terms,
		venues:      venues,
		instructors: instructors,
		bookings:    bookings,
		credit:      credit,
		events:      publisher,
		settings:    settings,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ClassService) today() time.Time {
	return s.settings.Today(s.now())
}

// List returns classes matching filter
func (s *ClassService) List(ctx context.Context, filter dto.ClassFilter) ([]*models.Class, error) {
	if filter.Today.IsZero() {
		filter.Today = s.today()
	}
	return s.classes.List(ctx, filter)
}

// Get returns one class with its upcoming session count and remaining seats
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	return s.classes.GetByID(ctx, id, s.today())
}

func (s *ClassService) applyClass(ctx context.Context, c *models.Class, req *dto.ClassRequest) error {
	if !helpers.IsClock(req.StartTime) || !helpers.IsClock(req.EndTime) {
		return fmt.Errorf("%w: times must be formatted as HH:MM", apperrors.ErrValidationFailed)
	}
	if !helpers.ClockBefore(req.StartTime, req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", apperrors.ErrValidationFailed)
	}
	if req.Weekday == nil || *req.Weekday < 0 || *req.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be between 0 and 6", apperrors.ErrValidationFailed)
	}
	if req.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidationFailed)
	}
	if req.PricePerSessionCents < 0 {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidationFailed)
	}

	if _, err := s.terms.GetByID(ctx, req.TermID); err != nil {
		return err
	}
	if _, err := s.venues.GetByID(ctx, req.VenueID); err != nil {
		return err
	}
	if req.InstructorID != nil {
		if _, err := s.instructors.GetByID(ctx, *req.InstructorID); err != nil {
			return err
		}
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Description = req.Description
	c.TermID = req.TermID
	c.VenueID = req.VenueID
	c.InstructorID = req.InstructorID
	c.Weekday = *req.Weekday
	c.StartTime = req.StartTime
	c.EndTime = req.EndTime
	c.Capacity = req.Capacity
	c.PricePerSessionCents = req.PricePerSessionCents
	c.IsSubsidised = req.IsSubsidised
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return nil
}

// Create adds a class
func (s *ClassService) Create(ctx context.Context, req *dto.ClassRequest) (*models.Class, error) {
	c := &models.Class{IsActive: true}
	if err := s.applyClass(ctx, c, req); err != nil {
		return nil, err
	}
	id, err := s.classes.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.classes.GetByID(ctx, id, s.today())
}

// Update replaces a class
func (s *ClassService) Update(ctx context.Context, id int64, req *dto.ClassRequest) (*models.Class, error) {
	c, err := s.classes.GetByID(ctx, id, s.today())
	if err != nil {
		return nil, err
	}
	if err := s.applyClass(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.classes.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.classes.GetByID(ctx, id, s.today())
}

// Delete removes a class that has no bookings
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	return s.classes.Delete(ctx, id)
}

// GenerateSessions creates one session per class weekday in the class's
// term. Skipped and already existing dates are left out.
func (s *ClassService) GenerateSessions(ctx context.Context, classID int64, req *dto.GenerateSessionsRequest) (*dto.GenerateSessionsResponse, error) {
	class, err := s.classes.GetByID(ctx, classID, s.today())
	if err != nil {
		return nil, err
	}
	term, err := s.terms.GetByID(ctx, class.TermID)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool)
	if req != nil {
		for _, d := range req.SkipDates {
			parsed, err := helpers.ParseDate(d)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
			}
			skip[parsed.Format(helpers.DateLayout)] = true
		}
	}

	dates := helpers.WeekdayDates(term.StartDate, term.EndDate, time.Weekday(class.Weekday), skip)
	created, err := s.sessions.CreateBatch(ctx, classID, dates)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = []*models.Session{}
	}

	s.logger.Info().Int64("classID", classID).Int("candidates", len(dates)).Int("created", len(created)).Msg("Sessions generated")
	return &dto.GenerateSessionsResponse{Created: len(created), Sessions: created}, nil
}

// ListSessions returns sessions matching filter
func (s *ClassService) ListSessions(ctx context.Context, filter dto.SessionFilter) ([]*models.Session, error) {
	return s.sessions.List(ctx, filter)
}

// GetSession returns one session
func (s *ClassService) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// UpdateSession changes a session's status or notes. Cancelling a session
// cancels its bookings and credits each booked customer.
func (s *ClassService) UpdateSession(ctx context.Context, actor Actor, sessionID int64, req *dto.UpdateSessionRequest) (*dto.SessionUpdateResult, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &dto.SessionUpdateResult{}
	switch {
	case req.Status == session.Status:
		if err := s.sessions.UpdateStatus(ctx, sessionID, session.Status, session.Status, req.Notes); err != nil {
			return nil, err
		}
	case session.Status != models.SessionScheduled:
		return nil, fmt.Errorf("%w: a %s session cannot become %s", apperrors.ErrInvalidStatus, session.Status, req.Status)
	case req.Status == models.SessionCancelled:
		if err := s.cancelSession(ctx, actor, session, req.Notes, result); err != nil {
			return nil, err
		}
	default:
		if err := s.sessions.UpdateStatus(ctx, sessionID, models.SessionScheduled, req.Status, req.Notes); err != nil {
			return nil, err
		}
	}

	result.Session, err = s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ClassService) cancelSession(ctx context.Context, actor Actor, session *models.Session, notes *string, result *dto.SessionUpdateResult) error {
	class, err := s.classes.GetByID(ctx, session.ClassID, s.today())
	if err != nil {
		return err
	}
	refund := class.RefundPerSession()

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.sessions.UpdateStatus(ctx, session.ID, models.SessionScheduled, models.SessionCancelled, notes); err != nil {
			return err
		}
		cancelled, err := s.bookings.CancelBySession(ctx, session.ID)
		if err != nil {
			return err
		}
		result.BookingsCancelled = len(cancelled)
		if refund == 0 {
			return nil
		}
		for _, b := range cancelled {
			bookingID := b.ID
			issued, err := refundBooking(ctx, s.bookings, s.credit, b, models.CreditChange{
				CustomerID:  b.CustomerID,
				AmountCents: refund,
				Reason:      models.CreditSessionCancelled,
				Note:        fmt.Sprintf("%s on %s cancelled", class.Name, session.SessionDate.Format(helpers.DateLayout)),
				ReferenceID: &bookingID,
				CreatedBy:   &actor.UserID,
			})
			if err != nil {
				return err
			}
			if issued {
				result.CreditIssuedCents += refund
			} else {
				result.CreditHeldCents += refund
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("sessionID", session.ID).
		Int("bookingsCancelled", result.BookingsCancelled).
		Int64("creditIssuedCents", result.CreditIssuedCents).
		Int64("creditHeldCents", result.CreditHeldCents).
		Msg("Session cancelled")
	events.Emit(ctx, s.events, events.SubjectSessionCancelled, map[string]interface{}{
		"sessionId":         session.ID,
		"classId":           session.ClassID,
		"bookingsCancelled": result.BookingsCancelled,
		"creditIssuedCents": result.CreditIssuedCents,
	})
	return nil
}
