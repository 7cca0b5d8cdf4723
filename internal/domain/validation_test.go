package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func assertValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		assert.NoError(t, err)
		return
	}
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation), "expected ErrValidation, got %v", err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, want, ve.Message)
	assert.Equal(t, want, err.Error())
}

func TestTaskInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input TaskInput
		want  string
	}{
		{"valid", TaskInput{Title: "Buy milk"}, ""},
		{"valid with description", TaskInput{Title: "Buy milk", Description: strPtr("two litres")}, ""},
		{"empty title", TaskInput{Title: ""}, "Title cannot be empty"},
		{"whitespace title", TaskInput{Title: "   "}, "Title cannot be empty"},
		{"tab and newline title", TaskInput{Title: "\t\n"}, "Title cannot be empty"},
		{"title of 200 characters", TaskInput{Title: strings.Repeat("a", 200)}, ""},
		{"title of 201 characters", TaskInput{Title: strings.Repeat("a", 201)}, "Title must be 200 characters or less"},
		{"multibyte title of 200 characters", TaskInput{Title: strings.Repeat("é", 200)}, ""},
		{"description of 1000 characters", TaskInput{Title: "t", Description: strPtr(strings.Repeat("d", 1000))}, ""},
		{"description of 1001 characters", TaskInput{Title: "t", Description: strPtr(strings.Repeat("d", 1001))}, "Description must be 1000 characters or less"},
		{"empty description is allowed", TaskInput{Title: "t", Description: strPtr("")}, ""},
		{"title checked before description", TaskInput{Title: " ", Description: strPtr(strings.Repeat("d", 1001))}, "Title cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, tt.input.Validate(), tt.want)
		})
	}
}

func TestTaskPatchValidate(t *testing.T) {
	completed := true
	tests := []struct {
		name  string
		patch TaskPatch
		want  string
	}{
		{"empty patch", TaskPatch{}, ""},
		{"only completed", TaskPatch{Completed: &completed}, ""},
		{"blank title present", TaskPatch{Title: strPtr("  ")}, "Title cannot be empty"},
		{"long title present", TaskPatch{Title: strPtr(strings.Repeat("x", 201))}, "Title must be 200 characters or less"},
		{"long description present", TaskPatch{Description: strPtr(strings.Repeat("x", 1001))}, "Description must be 1000 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, tt.patch.Validate(), tt.want)
		})
	}
}

func TestTaskPatchApply(t *testing.T) {
	original := Task{ID: 7, Title: "old", Description: strPtr("desc"), Completed: false}
	completed := true

	updated := TaskPatch{Completed: &completed}.Apply(original)

	assert.Equal(t, uint64(7), updated.ID)
	assert.Equal(t, "old", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desc", *updated.Description)
	assert.True(t, updated.Completed)
	assert.False(t, original.Completed, "Apply must not mutate its argument")

	updated = TaskPatch{Title: strPtr("new"), Description: strPtr("other")}.Apply(original)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "other", *updated.Description)
	assert.Equal(t, "desc", *original.Description)
}

func TestUserInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input UserInput
		want  string
	}{
		{"valid", UserInput{Name: "Ada", Email: "ada@example.com"}, ""},
		{"valid with picture", UserInput{Name: "Ada", Email: "a@b.com", Picture: strPtr("https://example.com/a.png")}, ""},
		{"blank name", UserInput{Name: " ", Email: "a@b.com"}, "Name cannot be empty"},
		{"long name", UserInput{Name: strings.Repeat("n", 101), Email: "a@b.com"}, "Name must be 100 characters or less"},
		{"name of 100 characters", UserInput{Name: strings.Repeat("n", 100), Email: "a@b.com"}, ""},
		{"blank email", UserInput{Name: "Ada", Email: "  "}, "Email cannot be empty"},
		{"long email", UserInput{Name: "Ada", Email: strings.Repeat("e", 250) + "@b.com"}, "Email must be 255 characters or less"},
		{"email without at", UserInput{Name: "Ada", Email: "ada.example.com"}, "Email must be a valid email address"},
		{"email without dot", UserInput{Name: "Ada", Email: "ada@example"}, "Email must be a valid email address"},
		{"name checked before email", UserInput{Name: "", Email: ""}, "Name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, tt.input.Validate(), tt.want)
		})
	}
}

func TestUserPatchValidate(t *testing.T) {
	tests := []struct {
		name  string
		patch UserPatch
		want  string
	}{
		{"empty patch", UserPatch{}, ""},
		{"only picture", UserPatch{Picture: strPtr("")}, ""},
		{"valid name", UserPatch{Name: strPtr("Grace")}, ""},
		{"empty name present", UserPatch{Name: strPtr("")}, "Name cannot be empty"},
		{"bad email present", UserPatch{Email: strPtr("nope")}, "Email must be a valid email address"},
		{"blank email present", UserPatch{Email: strPtr(" ")}, "Email cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, tt.patch.Validate(), tt.want)
		})
	}

	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{Picture: strPtr("p")}.IsEmpty())
}

func TestNewUser(t *testing.T) {
	user, err := NewUser(UserInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.Nil(t, user.Picture)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.False(t, user.IsDeleted())

	_, err = NewUser(UserInput{Name: "Ada", Email: "invalid"})
	assertValidationMessage(t, err, "Email must be a valid email address")
}

func TestAttendanceEventInputValidate(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	tests := []struct {
		name  string
		input AttendanceEventInput
		want  string
	}{
		{"valid", AttendanceEventInput{UserID: userID, EventType: "clock_in", EventTime: now}, ""},
		{"missing user", AttendanceEventInput{EventType: "clock_in", EventTime: now}, "User ID is required"},
		{"blank type", AttendanceEventInput{UserID: userID, EventType: " ", EventTime: now}, "Event type cannot be empty"},
		{"long type", AttendanceEventInput{UserID: userID, EventType: strings.Repeat("t", 51), EventTime: now}, "Event type must be 50 characters or less"},
		{"missing time", AttendanceEventInput{UserID: userID, EventType: "clock_in"}, "Event time is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, tt.input.Validate(), tt.want)
		})
	}
}

func TestNewAttendanceEvent(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	eventTime := time.Date(2024, 4, 1, 9, 0, 0, 0, loc)

	event, err := NewAttendanceEvent(AttendanceEventInput{
		UserID:    uuid.New(),
		EventType: "clock_in",
		EventTime: eventTime,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.True(t, event.EventTime.Equal(eventTime))
	assert.Equal(t, time.UTC, event.EventTime.Location())
	assert.True(t, event.RecordedAt.IsZero(), "recorded_at is assigned by the store")
}
