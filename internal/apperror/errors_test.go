package apperror_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/phrazzld/attendance-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds_EveryKindIsMapped(t *testing.T) {
	seenTags := make(map[string]apperror.Kind)

	for _, k := range apperror.Kinds() {
		t.Run(k.Tag(), func(t *testing.T) {
			assert.NotEmpty(t, k.Tag())
			assert.GreaterOrEqual(t, k.Status(), 400)
			assert.Less(t, k.Status(), 600)
			assert.Contains(t,
				[]slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError},
				k.LogLevel())

			prev, dup := seenTags[k.Tag()]
			assert.False(t, dup, "tag %q shared by %v and %v", k.Tag(), prev, k)
			seenTags[k.Tag()] = k
		})
	}
	assert.Len(t, seenTags, 5)
}

func TestKinds_WireMapping(t *testing.T) {
	tests := []struct {
		kind    apperror.Kind
		status  int
		tag     string
		display string
	}{
		{apperror.KindInternal, http.StatusInternalServerError, "internal_server_error", "Internal server error: m"},
		{apperror.KindValidation, http.StatusBadRequest, "validation_error", "Validation error: m"},
		{apperror.KindUnauthorized, http.StatusUnauthorized, "unauthorized", "Unauthorized: m"},
		{apperror.KindNotFound, http.StatusNotFound, "not_found", "Not found: m"},
		{apperror.KindBadRequest, http.StatusBadRequest, "bad_request", "Bad request: m"},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			err := &apperror.Error{Kind: tc.kind, Message: "m"}
			assert.Equal(t, tc.status, err.Status())
			assert.Equal(t, tc.tag, err.Tag())
			assert.Equal(t, tc.display, err.Error())
		})
	}
}

func TestInternal_LogsDetailAndHidesIt(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), log)

	cause := errors.New("dial tcp: connection refused for postgres://app:hunter2@db:5432/app")
	err := apperror.Internal(ctx, cause)

	assert.Equal(t, apperror.KindInternal, err.Kind)
	assert.Equal(t, apperror.InternalMessage, err.Message)
	assert.NotContains(t, err.Message, "connection refused")
	assert.ErrorIs(t, err, cause)

	entry, ok := buf.FindEntry(t, "internal server error")
	require.True(t, ok, "expected an error log entry")
	assert.Equal(t, "ERROR", entry["level"])
	assert.Contains(t, entry["error"], "connection refused")
	assert.NotContains(t, entry["error"], "hunter2")
}

func TestFrom(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), log)

	tests := []struct {
		name    string
		err     error
		kind    apperror.Kind
		message string
	}{
		{
			name:    "taxonomy error passes through",
			err:     apperror.NotFound("Task with id 7 not found"),
			kind:    apperror.KindNotFound,
			message: "Task with id 7 not found",
		},
		{
			name:    "wrapped taxonomy error passes through",
			err:     fmt.Errorf("handler: %w", apperror.BadRequest("bad")),
			kind:    apperror.KindBadRequest,
			message: "bad",
		},
		{
			name:    "validation error keeps its message",
			err:     domain.NewValidationError("Title", "Title cannot be empty"),
			kind:    apperror.KindValidation,
			message: "Title cannot be empty",
		},
		{
			name:    "bare validation sentinel",
			err:     domain.ErrValidation,
			kind:    apperror.KindValidation,
			message: "validation failed",
		},
		{
			name:    "malformed body",
			err:     fmt.Errorf("%w: unexpected EOF", domain.ErrInvalidFormat),
			kind:    apperror.KindBadRequest,
			message: "invalid request format: unexpected EOF",
		},
		{
			name:    "malformed id",
			err:     domain.ErrInvalidID,
			kind:    apperror.KindBadRequest,
			message: "invalid ID",
		},
		{
			name:    "unauthorized",
			err:     domain.ErrUnauthorized,
			kind:    apperror.KindUnauthorized,
			message: "unauthorized operation",
		},
		{
			name:    "store not found",
			err:     store.ErrUserNotFound,
			kind:    apperror.KindNotFound,
			message: "Resource not found",
		},
		{
			name:    "duplicate email is internal",
			err:     store.NewStoreError("user", "create", "email already exists", store.ErrEmailExists),
			kind:    apperror.KindInternal,
			message: apperror.InternalMessage,
		},
		{
			name:    "deadline is internal",
			err:     fmt.Errorf("query: %w", context.DeadlineExceeded),
			kind:    apperror.KindInternal,
			message: apperror.InternalMessage,
		},
		{
			name:    "unknown error is internal",
			err:     errors.New("boom"),
			kind:    apperror.KindInternal,
			message: apperror.InternalMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := apperror.From(ctx, tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.kind, got.Kind)
			assert.Equal(t, tc.message, got.Message)
		})
	}
}

func TestFrom_UnknownKindFallsBackToInternal(t *testing.T) {
	err := &apperror.Error{Kind: apperror.Kind(99), Message: "x"}
	assert.Equal(t, http.StatusInternalServerError, err.Status())
	assert.Equal(t, "internal_server_error", err.Tag())
}
