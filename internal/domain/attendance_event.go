package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceEvent is an immutable record of something a user did at a given
// moment (clock-in, clock-out, break). EventTime is supplied by the client;
// RecordedAt is assigned by the store when the event is ingested.
type AttendanceEvent struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	EventType  string    `json:"event_type"`
	EventTime  time.Time `json:"event_time"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttendanceEventInput is the payload for recording an attendance event.
type AttendanceEventInput struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	EventType string    `json:"event_type" validate:"notblank,max=50"`
	EventTime time.Time `json:"event_time" validate:"required"`
}

// Validate checks the payload and returns the first violated rule.
func (in AttendanceEventInput) Validate() error {
	return validateStruct(in)
}

// NewAttendanceEvent validates the input and builds an event with a fresh ID.
// RecordedAt and CreatedAt are left for the store to set.
func NewAttendanceEvent(in AttendanceEventInput) (*AttendanceEvent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &AttendanceEvent{
		ID:        uuid.New(),
		UserID:    in.UserID,
		EventType: in.EventType,
		EventTime: in.EventTime.UTC(),
	}, nil
}
