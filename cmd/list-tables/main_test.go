package main

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/phrazzld/attendance-api/internal/platform/postgres"
	"github.com/stretchr/testify/assert"
)

func TestPrintColumns(t *testing.T) {
	var out bytes.Buffer

	printColumns(&out, []postgres.Column{
		{Table: "users", Name: "id", DataType: "uuid", Default: sql.NullString{String: "gen_random_uuid()", Valid: true}},
		{Table: "users", Name: "email", DataType: "character varying", MaxLength: sql.NullInt64{Int64: 255, Valid: true}},
		{Table: "users", Name: "deleted_at", DataType: "timestamp with time zone", IsNullable: true},
		{Table: "attendance_events", Name: "event_type", DataType: "character varying", MaxLength: sql.NullInt64{Int64: 50, Valid: true}},
	})

	want := "Table: users\n" +
		"  Columns:\n" +
		"    - id: uuid NOT NULL DEFAULT gen_random_uuid()\n" +
		"    - email: character varying(255) NOT NULL\n" +
		"    - deleted_at: timestamp with time zone NULL\n" +
		"\n" +
		"Table: attendance_events\n" +
		"  Columns:\n" +
		"    - event_type: character varying(50) NOT NULL\n" +
		"\n"
	assert.Equal(t, want, out.String())
}

func TestPrintColumns_Empty(t *testing.T) {
	var out bytes.Buffer
	printColumns(&out, nil)
	assert.Contains(t, out.String(), "No user tables found in the database.")
}

func TestPrintConstraintsAndIndexes(t *testing.T) {
	var out bytes.Buffer

	printConstraints(&out, []postgres.Constraint{
		{Table: "users", Name: "users_pkey", Type: "PRIMARY KEY", Column: sql.NullString{String: "id", Valid: true}},
		{Table: "users", Name: "users_email_key", Type: "UNIQUE", Column: sql.NullString{String: "email", Valid: true}},
		{Table: "users", Name: "2200_16390_1_not_null", Type: "CHECK"},
	})
	printIndexes(&out, []postgres.Index{
		{Table: "users", Name: "users_pkey", Definition: "CREATE UNIQUE INDEX users_pkey ON public.users USING btree (id)"},
	})

	want := "Constraints:\n" +
		"  users:\n" +
		"    - PRIMARY KEY: users_pkey (id)\n" +
		"    - UNIQUE: users_email_key (email)\n" +
		"    - CHECK: 2200_16390_1_not_null\n" +
		"\n" +
		"Indexes:\n" +
		"  users:\n" +
		"    - users_pkey\n" +
		"      CREATE UNIQUE INDEX users_pkey ON public.users USING btree (id)\n" +
		"\n"
	assert.Equal(t, want, out.String())
}
