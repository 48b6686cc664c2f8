package services

import (
	"context"
	"testing"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendance_InstructorOwnsSession(t *testing.T) {
	f := newFixture()
	_, _, class, bookings := bookedCustomer(t, f, 1000, false)
	instructorUser, instructor := f.addInstructor()
	class.InstructorID = &instructor.ID
	svc := f.attendanceService()
	actor := Actor{UserID: instructorUser.ID, RoleType: models.RoleInstructor}
	sessionID := bookings[0].SessionID

	classes, err := svc.Classes(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, class.ID, classes[0].ID)

	sessions, err := svc.Sessions(context.Background(), actor, nil, nil)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	roster, err := svc.Roster(context.Background(), actor, sessionID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Jo Citizen", roster[0].CustomerName)
	assert.Nil(t, roster[0].Attendance)

	// A second instructor cannot see the session
	otherUser := &models.User{ID: f.db.id(), RoleType: models.RoleInstructor, IsActive: true}
	f.db.users[otherUser.ID] = otherUser
	other := &models.Instructor{ID: f.db.id(), UserID: &otherUser.ID}
	f.db.instructors[other.ID] = other
	_, err = svc.Roster(context.Background(), Actor{UserID: otherUser.ID, RoleType: models.RoleInstructor}, sessionID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Classes(context.Background(), staffActor())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAttendanceSave_BroadcastsRoster(t *testing.T) {
	f := newFixture()
	_, _, class, bookings := bookedCustomer(t, f, 1000, false)
	instructorUser, instructor := f.addInstructor()
	class.InstructorID = &instructor.ID
	svc := f.attendanceService()
	actor := Actor{UserID: instructorUser.ID, RoleType: models.RoleInstructor}
	sessionID := bookings[0].SessionID

	roster, err := svc.Save(context.Background(), actor, sessionID, &dto.SaveAttendanceRequest{
		Records: []dto.AttendanceRecordRequest{{BookingID: bookings[0].ID, Status: models.AttendanceLate}},
	})
	require.NoError(t, err)
	require.NotNil(t, roster[0].Attendance)
	assert.Equal(t, models.AttendanceLate, *roster[0].Attendance)

	require.Len(t, f.hub.sent, 1)
	assert.Equal(t, sessionID, f.hub.sent[0].sessionID)
	assert.Equal(t, MessageAttendanceUpdated, f.hub.sent[0].messageType)
	assert.True(t, f.published(events.SubjectAttendanceRecorded))

	// Marking again replaces the earlier mark
	_, err = svc.Save(context.Background(), actor, sessionID, &dto.SaveAttendanceRequest{
		Records: []dto.AttendanceRecordRequest{{BookingID: bookings[0].ID, Status: models.AttendancePresent}},
	})
	require.NoError(t, err)
	marks, err := memAttendance{f.db}.ListBySession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, models.AttendancePresent, marks[0].Status)
}

func TestAttendanceSave_Rejections(t *testing.T) {
	f := newFixture()
	_, _, class, bookings := bookedCustomer(t, f, 1000, false)
	instructorUser, instructor := f.addInstructor()
	class.InstructorID = &instructor.ID
	svc := f.attendanceService()
	actor := Actor{UserID: instructorUser.ID, RoleType: models.RoleInstructor}
	sessionID := bookings[0].SessionID

	_, err := svc.Save(context.Background(), actor, sessionID, &dto.SaveAttendanceRequest{
		Records: []dto.AttendanceRecordRequest{{BookingID: bookings[1].ID, Status: models.AttendancePresent}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "booking of another session")

	_, err = svc.Save(context.Background(), actor, sessionID, &dto.SaveAttendanceRequest{
		Records: []dto.AttendanceRecordRequest{{BookingID: bookings[0].ID, Status: "ASLEEP"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	f.db.sessions[sessionID].Status = models.SessionCancelled
	_, err = svc.Save(context.Background(), actor, sessionID, &dto.SaveAttendanceRequest{
		Records: []dto.AttendanceRecordRequest{{BookingID: bookings[0].ID, Status: models.AttendancePresent}},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Empty(t, f.hub.sent)
	assert.Empty(t, f.db.attendance)
}
