package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/domain"
)

// AttendanceEventStore defines persistence for attendance events.
// Events are append-only: there is no update or delete.
type AttendanceEventStore interface {
	// Create inserts the event, setting RecordedAt and CreatedAt to the
	// ingestion time regardless of EventTime.
	// Returns ErrUserNotFound if the referenced user does not exist.
	Create(ctx context.Context, event *domain.AttendanceEvent) error

	// GetByID retrieves an event.
	// Returns ErrAttendanceEventNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AttendanceEvent, error)

	// ListByUserID returns the user's events, most recent event_time first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AttendanceEvent, error)
}
