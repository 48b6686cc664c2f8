package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
)

// MessageAttendanceUpdated is the websocket message type sent after a save
const MessageAttendanceUpdated = "attendance.updated"

// defaultSessionWindow is how far ahead the instructor session list looks by default
const defaultSessionWindow = 28 * 24 * time.Hour

// AttendanceService backs the instructor portal
type AttendanceService struct {
	classes    ClassStore
	sessions   SessionStore
	bookings   BookingStore
	attendance AttendanceStore
	perms      PermissionChecker
	hub        SessionBroadcaster
	events     events.Publisher
	settings   Settings
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	classes ClassStore,
	sessions SessionStore,
	bookings BookingStore,
	attendance AttendanceStore,
	perms PermissionChecker,
	hub SessionBroadcaster,
	publisher events.Publisher,
	settings Settings,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		classes:    classes,
		sessions:   sessions,
		bookings:   bookings,
		attendance: attendance,
		perms:      perms,
		hub:        hub,
		events:     publisher,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
	}
}

// Classes lists the active classes the calling instructor teaches
func (s *AttendanceService) Classes(ctx context.Context, actor Actor) ([]*models.Class, error) {
	instructor, err := s.perms.ValidateInstructor(ctx, actor.RoleType, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.classes.List(ctx, dto.ClassFilter{
		InstructorID: instructor.ID,
		ActiveOnly:   true,
		Today:        s.settings.Today(s.now()),
	})
}

// Sessions lists the calling instructor's sessions, by default the next four weeks
func (s *AttendanceService) Sessions(ctx context.Context, actor Actor, from, to *time.Time) ([]*models.Session, error) {
	instructor, err := s.perms.ValidateInstructor(ctx, actor.RoleType, actor.UserID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		from = ptr(s.settings.Today(s.now()))
	}
	if to == nil {
		to = ptr(from.Add(defaultSessionWindow))
	}
	if to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidationFailed)
	}
	return s.sessions.List(ctx, dto.SessionFilter{InstructorID: instructor.ID, From: from, To: to})
}

// ownSession returns the session when the caller instructs its class
func (s *AttendanceService) ownSession(ctx context.Context, actor Actor, sessionID int64) (*models.Session, error) {
	instructor, err := s.perms.ValidateInstructor(ctx, actor.RoleType, actor.UserID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	class, err := s.classes.GetByID(ctx, session.ClassID, s.settings.Today(s.now()))
	if err != nil {
		return nil, err
	}
	if class.InstructorID == nil || *class.InstructorID != instructor.ID {
		return nil, apperrors.NewForbiddenError("session belongs to another instructor")
	}
	return session, nil
}

// AuthorizeLiveFeed checks that the caller may watch a session's live feed
func (s *AttendanceService) AuthorizeLiveFeed(ctx context.Context, actor Actor, sessionID int64) error {
	_, err := s.ownSession(ctx, actor, sessionID)
	return err
}

// Roster lists the active bookings of one of the caller's sessions
func (s *AttendanceService) Roster(ctx context.Context, actor Actor, sessionID int64) ([]*models.RosterEntry, error) {
	if _, err := s.ownSession(ctx, actor, sessionID); err != nil {
		return nil, err
	}
	return s.bookings.Roster(ctx, sessionID)
}

// Save records attendance marks and pushes the roster to live watchers
func (s *AttendanceService) Save(ctx context.Context, actor Actor, sessionID int64, req *dto.SaveAttendanceRequest) ([]*models.RosterEntry, error) {
	session, err := s.ownSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCancelled {
		return nil, fmt.Errorf("%w: session is cancelled", apperrors.ErrInvalidStatus)
	}
	if len(req.Records) == 0 {
		return nil, fmt.Errorf("%w: no attendance records", apperrors.ErrValidationFailed)
	}

	roster, err := s.bookings.Roster(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	onRoster := make(map[int64]bool, len(roster))
	for _, e := range roster {
		onRoster[e.BookingID] = true
	}

	markedAt := s.now()
	records := make([]*models.Attendance, 0, len(req.Records))
	for _, r := range req.Records {
		if !onRoster[r.BookingID] {
			return nil, fmt.Errorf("%w: booking %d is not on this session's roster", apperrors.ErrValidationFailed, r.BookingID)
		}
		switch r.Status {
		case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
		default:
			return nil, fmt.Errorf("%w: unknown attendance status %s", apperrors.ErrValidationFailed, r.Status)
		}
		records = append(records, &models.Attendance{
			BookingID: r.BookingID,
			SessionID: sessionID,
			Status:    r.Status,
			MarkedBy:  &actor.UserID,
			MarkedAt:  markedAt,
		})
	}

	if err := s.attendance.Upsert(ctx, records); err != nil {
		return nil, err
	}

	updated, err := s.bookings.Roster(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("sessionID", sessionID).Int("records", len(records)).Int64("by", actor.UserID).Msg("Attendance recorded")
	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, MessageAttendanceUpdated, updated)
	}
	events.Emit(ctx, s.events, events.SubjectAttendanceRecorded, map[string]interface{}{
		"sessionId": sessionID,
		"records":   len(records),
	})
	return updated, nil
}

// SessionAttendance is the staff view of a session's roster and marks
func (s *AttendanceService) SessionAttendance(ctx context.Context, sessionID int64) ([]*models.RosterEntry, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.bookings.Roster(ctx, sessionID)
}
