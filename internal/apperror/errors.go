package apperror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/phrazzld/attendance-api/internal/redact"
	"github.com/phrazzld/attendance-api/internal/store"
)

// Kind identifies one member of the error taxonomy.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindBadRequest
)

// InternalMessage is the only message an internal error ever carries.
const InternalMessage = "An internal server error occurred"

type kindInfo struct {
	status int
	tag    string
	prefix string
	level  slog.Level
}

var kinds = map[Kind]kindInfo{
	KindInternal:     {http.StatusInternalServerError, "internal_server_error", "Internal server error", slog.LevelError},
	KindValidation:   {http.StatusBadRequest, "validation_error", "Validation error", slog.LevelWarn},
	KindUnauthorized: {http.StatusUnauthorized, "unauthorized", "Unauthorized", slog.LevelWarn},
	KindNotFound:     {http.StatusNotFound, "not_found", "Not found", slog.LevelDebug},
	KindBadRequest:   {http.StatusBadRequest, "bad_request", "Bad request", slog.LevelWarn},
}

// Kinds returns every member of the taxonomy in declaration order.
func Kinds() []Kind {
	return []Kind{KindInternal, KindValidation, KindUnauthorized, KindNotFound, KindBadRequest}
}

func (k Kind) info() kindInfo {
	if info, ok := kinds[k]; ok {
		return info
	}
	return kinds[KindInternal]
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int { return k.info().status }

// Tag returns the machine-readable value of the "error" field.
func (k Kind) Tag() string { return k.info().tag }

// LogLevel is the level at which the HTTP boundary logs the kind.
func (k Kind) LogLevel() slog.Level { return k.info().level }

func (k Kind) String() string { return k.info().tag }

// Error is a taxonomy member. Message is safe to show to clients; Err holds
// the underlying cause and never leaves the process.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.info().prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int { return e.Kind.Status() }

// Tag returns the wire tag for the error's kind.
func (e *Error) Tag() string { return e.Kind.Tag() }

// Validation reports a payload that failed a validation rule.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized reports a caller that is not allowed to perform the operation.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NotFound reports that the addressed resource does not exist.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// BadRequest reports a request that could not be parsed.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Internal logs the redacted cause with the context's logger and returns an
// error whose message is always InternalMessage.
func Internal(ctx context.Context, err error) *Error {
	log := logger.FromContext(ctx)
	if err != nil {
		log.ErrorContext(ctx, "internal server error",
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	} else {
		log.ErrorContext(ctx, "internal server error")
	}
	return &Error{Kind: KindInternal, Message: InternalMessage, Err: err}
}

// From converts any error into a taxonomy member. Unknown errors, including
// uniqueness conflicts and timeouts, become internal errors.
func From(ctx context.Context, err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return &Error{Kind: KindValidation, Message: validationErr.Message, Err: err}
	case errors.Is(err, domain.ErrValidation):
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrInvalidFormat), errors.Is(err, domain.ErrInvalidID):
		return &Error{Kind: KindBadRequest, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrUnauthorized):
		return &Error{Kind: KindUnauthorized, Message: err.Error(), Err: err}
	case errors.Is(err, store.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: "Resource not found", Err: err}
	default:
		return Internal(ctx, err)
	}
}
