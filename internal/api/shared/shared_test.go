package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))
		var in domain.TaskInput
		require.NoError(t, DecodeJSON(r, &in))
		assert.Equal(t, "x", in.Title)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		var in domain.TaskInput
		err := DecodeJSON(r, &in)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	})

	t.Run("wrong type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":5}`))
		var in domain.TaskInput
		assert.ErrorIs(t, DecodeJSON(r, &in), domain.ErrInvalidFormat)
	})
}

func TestRespondWithError(t *testing.T) {
	ctx, slot := WithErrorKindSlot(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, r, apperror.NotFound("Task with id 3 not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Error: "not_found", Message: "Task with id 3 not found"}, body)
	assert.Equal(t, "not_found", *slot)
}

func TestRespondWithError_WithoutSlot(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		RespondWithError(w, r, apperror.BadRequest("bad"))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondWithMessage(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/", nil)
	w := httptest.NewRecorder()

	RespondWithMessage(w, r, "Task with id 1 deleted successfully")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task with id 1 deleted successfully"}`, w.Body.String())
}
