// Command list-tables prints the columns, constraints and indexes of every
// user table in the configured database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/attendance-api/internal/config"
	"github.com/phrazzld/attendance-api/internal/platform/postgres"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	fmt.Fprint(out, "=== Database Tables List ===\n\n")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Database.MaxConns = 1

	fmt.Fprint(out, "Connecting to database...\n\n")
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	inspector := postgres.NewInspector(db)

	columns, err := inspector.Columns(ctx)
	if err != nil {
		return err
	}
	constraints, err := inspector.Constraints(ctx)
	if err != nil {
		return err
	}
	indexes, err := inspector.Indexes(ctx)
	if err != nil {
		return err
	}

	printColumns(out, columns)
	printConstraints(out, constraints)
	printIndexes(out, indexes)
	return nil
}

func printColumns(out io.Writer, columns []postgres.Column) {
	if len(columns) == 0 {
		fmt.Fprintln(out, "No user tables found in the database.")
		fmt.Fprintln(out)
		return
	}

	current := ""
	for _, c := range columns {
		if c.Table != current {
			if current != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Table: %s\n", c.Table)
			fmt.Fprintln(out, "  Columns:")
			current = c.Table
		}

		nullable := "NOT NULL"
		if c.IsNullable {
			nullable = "NULL"
		}
		def := ""
		if c.Default.Valid {
			def = " DEFAULT " + c.Default.String
		}
		fmt.Fprintf(out, "    - %s: %s %s%s\n", c.Name, c.FullType(), nullable, def)
	}
	fmt.Fprintln(out)
}

func printConstraints(out io.Writer, constraints []postgres.Constraint) {
	if len(constraints) == 0 {
		return
	}

	fmt.Fprintln(out, "Constraints:")
	current := ""
	for _, c := range constraints {
		if c.Table != current {
			if current != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "  %s:\n", c.Table)
			current = c.Table
		}

		column := ""
		if c.Column.Valid {
			column = fmt.Sprintf(" (%s)", c.Column.String)
		}
		fmt.Fprintf(out, "    - %s: %s%s\n", c.Type, c.Name, column)
	}
	fmt.Fprintln(out)
}

func printIndexes(out io.Writer, indexes []postgres.Index) {
	if len(indexes) == 0 {
		return
	}

	fmt.Fprintln(out, "Indexes:")
	current := ""
	for _, idx := range indexes {
		if idx.Table != current {
			if current != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "  %s:\n", idx.Table)
			current = idx.Table
		}
		fmt.Fprintf(out, "    - %s\n", idx.Name)
		fmt.Fprintf(out, "      %s\n", idx.Definition)
	}
	fmt.Fprintln(out)
}
