// Package store defines the persistence contracts for durable entities
// (users and attendance events) and the sentinel errors every implementation
// returns, so callers can branch on outcomes without knowing the database.
package store
