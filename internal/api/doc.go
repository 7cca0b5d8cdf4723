// Package api handles incoming HTTP requests: routing, payload decoding and
// validation, and response formatting. Handlers call the task and user
// stores directly and fold every failure into the apperror taxonomy at a
// single point, HandleAPIError.
package api
