// Package domain contains the entities of the attendance service (tasks, users
// and attendance events), the payload types that create or change them, and the
// validation rules those payloads must satisfy before they reach a store.
package domain
