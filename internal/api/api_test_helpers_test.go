package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/memstore"
	"github.com/phrazzld/attendance-api/internal/metrics"
	"github.com/phrazzld/attendance-api/internal/mocks"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler  http.Handler
	tasks    *memstore.TaskStore
	users    *mocks.MockUserStore
	events   *mocks.MockAttendanceEventStore
	registry *prometheus.Registry
	logs     *logger.TestLogBuffer
}

type serverOption func(*RouterDeps)

func withDebugRoutes() serverOption {
	return func(d *RouterDeps) { d.DebugRoutes = true }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	reg := prometheus.NewRegistry()
	ts := &testServer{
		tasks:    memstore.NewTaskStore(log),
		users:    new(mocks.MockUserStore),
		events:   new(mocks.MockAttendanceEventStore),
		registry: reg,
		logs:     buf,
	}

	deps := RouterDeps{
		Logger:   log,
		Tasks:    ts.tasks,
		Users:    ts.users,
		Events:   ts.events,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	ts.handler = NewRouter(deps)

	t.Cleanup(func() {
		ts.users.AssertExpectations(t)
		ts.events.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out), "body: %s", w.Body.String())
	return out
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, tag, message string) {
	t.Helper()

	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	body := decodeBody[shared.ErrorResponse](t, w)
	require.Equal(t, tag, body.Error)
	if message != "" {
		require.Equal(t, message, body.Message)
	}
}
