package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/store"
	"github.com/stretchr/testify/mock"
)

var _ store.UserStore = (*MockUserStore)(nil)

// MockUserStore is a testify mock of store.UserStore.
type MockUserStore struct {
	mock.Mock
}

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return userArg(args, 0), args.Error(1)
}

// GetByIDIncludingDeleted is a mock implementation of store.UserStore.GetByIDIncludingDeleted
func (m *MockUserStore) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	return userArg(args, 0), args.Error(1)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func userArg(args mock.Arguments, i int) *domain.User {
	if user, ok := args.Get(i).(*domain.User); ok {
		return user
	}
	return nil
}
