// Package main runs the attendance API server. With -migrate it applies a
// database migration command instead and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/phrazzld/attendance-api/internal/config"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/phrazzld/attendance-api/internal/platform/postgres"
)

type options struct {
	migrate string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.migrate, "migrate", "", fmt.Sprintf("run a migration command %v and exit", postgres.MigrationCommands))
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.migrate != "" && !slices.Contains(postgres.MigrationCommands, opts.migrate) {
		return options{}, fmt.Errorf("invalid -migrate value %q (expected one of %v)", opts.migrate, postgres.MigrationCommands)
	}
	return opts, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("debug_routes", cfg.Server.DebugRoutes))

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if opts.migrate != "" {
		return postgres.Migrate(ctx, app.db.DB, opts.migrate, log)
	}
	return app.serve(ctx)
}
