package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/attendance-api/internal/api/middleware"
	"github.com/phrazzld/attendance-api/internal/metrics"
	"github.com/phrazzld/attendance-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
)

// RouterDeps carries everything the router needs. Metrics and Gatherer are
// optional; when Gatherer is nil no /metrics route is mounted.
type RouterDeps struct {
	Logger             *slog.Logger
	Tasks              TaskStore
	Users              store.UserStore
	Events             store.AttendanceEventStore
	Metrics            metrics.Recorder
	Gatherer           prometheus.Gatherer
	CORSAllowedOrigins []string
	DebugRoutes        bool
}

// NewRouter builds the HTTP handler for the whole service.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: deps.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", Health)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	taskHandler := NewTaskHandler(deps.Tasks)
	userHandler := NewUserHandler(deps.Users, deps.Events)
	attendanceHandler := NewAttendanceHandler(deps.Events)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{id}", userHandler.GetUser)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
			r.Get("/{id}/attendance-events", userHandler.ListUserAttendanceEvents)
		})

		r.Route("/attendance-events", func(r chi.Router) {
			r.Post("/", attendanceHandler.RecordEvent)
			r.Get("/{id}", attendanceHandler.GetEvent)
		})
	})

	if deps.DebugRoutes {
		if deps.Logger != nil {
			deps.Logger.Warn("test error endpoints are enabled")
		}
		mountDebugRoutes(r)
	}

	return r
}
