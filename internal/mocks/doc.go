// Package mocks provides testify/mock implementations of the store
// interfaces so handler tests can run without a database.
//
// Usage:
//
//	users := new(mocks.MockUserStore)
//	users.On("GetByID", mock.Anything, id).Return(user, nil)
//	defer users.AssertExpectations(t)
package mocks
