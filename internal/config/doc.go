// Package config loads and validates service configuration from defaults,
// an optional config file, a .env file and ATTENDANCE_* environment variables.
package config
