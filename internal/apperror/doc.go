// Package apperror defines the closed set of failure kinds returned across
// the HTTP boundary, together with each kind's status code, wire tag and
// log level. Lower layers return sentinel errors; From folds any of them
// into exactly one kind.
package apperror
