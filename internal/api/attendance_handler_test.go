package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedEventID = uuid.MustParse("22222222-2222-2222-2222-222222222222")

func TestAttendanceHandler_RecordEvent(t *testing.T) {
	ts := newTestServer(t)
	recordedAt := time.Now().UTC()
	ts.events.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.AttendanceEvent) bool {
		return e.UserID == fixedUserID && e.EventType == "clock_in" && e.EventTime.Equal(fixedTime)
	})).Run(func(args mock.Arguments) {
		e := args.Get(1).(*domain.AttendanceEvent)
		e.RecordedAt = recordedAt
		e.CreatedAt = recordedAt
	}).Return(nil)

	body := fmt.Sprintf(`{"user_id":%q,"event_type":"clock_in","event_time":"2025-04-01T12:00:00Z"}`, fixedUserID)
	w := ts.do(t, http.MethodPost, "/api/attendance-events", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeBody[domain.AttendanceEvent](t, w)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.True(t, got.EventTime.Equal(fixedTime))
	assert.True(t, got.RecordedAt.Equal(recordedAt))
}

func TestAttendanceHandler_RecordEventUnknownUser(t *testing.T) {
	ts := newTestServer(t)
	ts.events.On("Create", mock.Anything, mock.Anything).Return(store.ErrUserNotFound)

	body := fmt.Sprintf(`{"user_id":%q,"event_type":"clock_in","event_time":"2025-04-01T12:00:00Z"}`, fixedUserID)
	w := ts.do(t, http.MethodPost, "/api/attendance-events", body)

	requireError(t, w, http.StatusNotFound, "not_found",
		fmt.Sprintf("User with id %s not found", fixedUserID))
}

func TestAttendanceHandler_RecordEventValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		tag     string
		message string
	}{
		{"missing user", `{"event_type":"clock_in","event_time":"2025-04-01T12:00:00Z"}`, "validation_error", "User ID is required"},
		{"blank type", fmt.Sprintf(`{"user_id":%q,"event_type":" ","event_time":"2025-04-01T12:00:00Z"}`, fixedUserID), "validation_error", "Event type cannot be empty"},
		{"missing time", fmt.Sprintf(`{"user_id":%q,"event_type":"clock_in"}`, fixedUserID), "validation_error", "Event time is required"},
		{"malformed user id", `{"user_id":"nope","event_type":"clock_in","event_time":"2025-04-01T12:00:00Z"}`, "bad_request", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			w := ts.do(t, http.MethodPost, "/api/attendance-events", tc.body)

			requireError(t, w, http.StatusBadRequest, tc.tag, tc.message)
			ts.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAttendanceHandler_GetEvent(t *testing.T) {
	ts := newTestServer(t)
	event := &domain.AttendanceEvent{
		ID: fixedEventID, UserID: fixedUserID, EventType: "clock_out",
		EventTime: fixedTime, RecordedAt: fixedTime, CreatedAt: fixedTime,
	}
	ts.events.On("GetByID", mock.Anything, fixedEventID).Return(event, nil)

	w := ts.do(t, http.MethodGet, "/api/attendance-events/"+fixedEventID.String(), "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[domain.AttendanceEvent](t, w)
	assert.Equal(t, "clock_out", got.EventType)
	assert.Equal(t, fixedUserID, got.UserID)
}

func TestAttendanceHandler_GetEventNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.events.On("GetByID", mock.Anything, fixedEventID).Return(nil, store.ErrAttendanceEventNotFound)

	w := ts.do(t, http.MethodGet, "/api/attendance-events/"+fixedEventID.String(), "")

	requireError(t, w, http.StatusNotFound, "not_found",
		fmt.Sprintf("Attendance event with id %s not found", fixedEventID))
}

func TestUserHandler_ListUserAttendanceEvents(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByID", mock.Anything, fixedUserID).Return(testUser(), nil)
	ts.events.On("ListByUserID", mock.Anything, fixedUserID).Return([]*domain.AttendanceEvent{
		{ID: uuid.New(), UserID: fixedUserID, EventType: "clock_out", EventTime: fixedTime.Add(8 * time.Hour)},
		{ID: uuid.New(), UserID: fixedUserID, EventType: "clock_in", EventTime: fixedTime},
	}, nil)

	w := ts.do(t, http.MethodGet, "/api/users/"+fixedUserID.String()+"/attendance-events", "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[[]domain.AttendanceEvent](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "clock_out", got[0].EventType)
}

func TestUserHandler_ListUserAttendanceEventsEmpty(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByID", mock.Anything, fixedUserID).Return(testUser(), nil)
	ts.events.On("ListByUserID", mock.Anything, fixedUserID).Return(nil, nil)

	w := ts.do(t, http.MethodGet, "/api/users/"+fixedUserID.String()+"/attendance-events", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUserHandler_ListUserAttendanceEventsUnknownUser(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByID", mock.Anything, fixedUserID).Return(nil, store.ErrUserNotFound)

	w := ts.do(t, http.MethodGet, "/api/users/"+fixedUserID.String()+"/attendance-events", "")

	requireError(t, w, http.StatusNotFound, "not_found",
		fmt.Sprintf("User with id %s not found", fixedUserID))
	ts.events.AssertNotCalled(t, "ListByUserID", mock.Anything, mock.Anything)
}
