package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/api"
	"github.com/phrazzld/attendance-api/internal/config"
	"github.com/phrazzld/attendance-api/internal/memstore"
	"github.com/phrazzld/attendance-api/internal/metrics"
	"github.com/phrazzld/attendance-api/internal/platform/postgres"
	"github.com/phrazzld/attendance-api/internal/redact"
	"github.com/phrazzld/attendance-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *postgres.DB

	tasks  *memstore.TaskStore
	users  store.UserStore
	events store.AttendanceEventStore

	registry *prometheus.Registry
	metrics  *metrics.Collector
}

func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", redact.DatabaseURL(cfg.Database.URL), err)
	}
	log.Info("database connection established",
		slog.String("database_url", redact.DatabaseURL(cfg.Database.URL)),
		slog.Int("max_conns", int(cfg.Database.MaxConns)))

	timeout := cfg.Database.OperationTimeout
	app := &application{
		config:   cfg,
		logger:   log,
		db:       db,
		tasks:    memstore.NewTaskStore(log),
		users:    postgres.NewPostgresUserStore(db, timeout, log),
		events:   postgres.NewPostgresAttendanceEventStore(db, timeout, log),
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.metrics = metrics.NewCollector(app.registry)
	app.metrics.RegisterTaskCount(app.tasks.Len)
	app.metrics.RegisterPoolStats(func() metrics.PoolStats {
		s := db.PoolStats()
		return metrics.PoolStats{
			MaxConns:      s.MaxConns,
			TotalConns:    s.TotalConns,
			AcquiredConns: s.AcquiredConns,
			IdleConns:     s.IdleConns,
		}
	})

	return app, nil
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Logger:             app.logger,
		Tasks:              app.tasks,
		Users:              app.users,
		Events:             app.events,
		Metrics:            app.metrics,
		Gatherer:           app.registry,
		CORSAllowedOrigins: app.config.Server.CORSAllowedOrigins,
		DebugRoutes:        app.config.Server.DebugRoutes,
	})
}

func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.Any("error", err))
		return
	}
	app.logger.Info("database connection closed")
}
