//go:build integration

package testdb

import "os"

// databaseURLEnvVars are checked in order by GetTestDatabaseURL.
var databaseURLEnvVars = []string{"ATTENDANCE_TEST_DATABASE_URL", "TEST_DATABASE_URL", "DATABASE_URL"}

// GetTestDatabaseURL returns the first non-empty test database URL.
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}
