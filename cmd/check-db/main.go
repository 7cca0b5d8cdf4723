// Command check-db verifies that the configured database is reachable and
// prints its version.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/attendance-api/internal/config"
	"github.com/phrazzld/attendance-api/internal/platform/postgres"
	"github.com/phrazzld/attendance-api/internal/redact"
)

// prober is the part of postgres.Inspector that check-db needs.
type prober interface {
	SelectOne(ctx context.Context) (int, error)
	Version(ctx context.Context) (string, error)
}

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	fmt.Fprint(out, "=== Database Connection Checker ===\n\n")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Database.MaxConns = 1

	fmt.Fprintln(out, "Connecting to database...")
	fmt.Fprintf(out, "URL: %s\n\n", redact.DatabaseURL(cfg.Database.URL))

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	fmt.Fprint(out, "✓ Connection successful!\n\n")

	if err := check(ctx, out, postgres.NewInspector(db)); err != nil {
		_ = db.Close()
		return err
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection closed successfully!")
	return nil
}

func check(ctx context.Context, out io.Writer, p prober) error {
	fmt.Fprintln(out, "Executing test query...")
	one, err := p.SelectOne(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute test query: %w", err)
	}
	fmt.Fprintf(out, "✓ Test query successful! Result: %d\n\n", one)

	fmt.Fprintln(out, "Fetching database version...")
	version, err := p.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch database version: %w", err)
	}
	fmt.Fprintln(out, "✓ Database version:")
	fmt.Fprintf(out, "%s\n\n", version)
	return nil
}
