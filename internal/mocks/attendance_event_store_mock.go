package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/store"
	"github.com/stretchr/testify/mock"
)

var _ store.AttendanceEventStore = (*MockAttendanceEventStore)(nil)

// MockAttendanceEventStore is a testify mock of store.AttendanceEventStore.
type MockAttendanceEventStore struct {
	mock.Mock
}

// Create is a mock implementation of store.AttendanceEventStore.Create
func (m *MockAttendanceEventStore) Create(ctx context.Context, event *domain.AttendanceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// GetByID is a mock implementation of store.AttendanceEventStore.GetByID
func (m *MockAttendanceEventStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AttendanceEvent, error) {
	args := m.Called(ctx, id)
	if event, ok := args.Get(0).(*domain.AttendanceEvent); ok {
		return event, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUserID is a mock implementation of store.AttendanceEventStore.ListByUserID
func (m *MockAttendanceEventStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AttendanceEvent, error) {
	args := m.Called(ctx, userID)
	events, _ := args.Get(0).([]*domain.AttendanceEvent)
	return events, args.Error(1)
}
