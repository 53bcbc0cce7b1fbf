package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the categories the API and the
// client agree on. Every kind resolves to a single user-visible message.
type Kind int

const (
	Unknown Kind = iota
	Validation
	NotFound
	AuthRequired
	Conflict
	Forbidden
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case AuthRequired:
		return "auth_required"
	case Conflict:
		return "conflict"
	case Forbidden:
		return "forbidden"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error carries a kind, a user-visible message and, for validation
// failures, the per-field messages produced by a form aggregator.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps field name -> message for Validation errors.
	Fields map[string]string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a user-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation builds a Validation error from an aggregator result.
func NewValidation(fields map[string]string) *Error {
	return &Error{
		Kind:    Validation,
		Message: "Form contains invalid fields",
		Fields:  fields,
	}
}

// KindOf extracts the kind from err, or Unknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the status code the server responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case AuthRequired:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus maps an HTTP status code received by the client into the
// taxonomy. Used by the SDK when translating transport failures.
func FromStatus(status int, message string) *Error {
	switch status {
	case http.StatusBadRequest:
		return New(Validation, message)
	case http.StatusNotFound:
		return New(NotFound, message)
	case http.StatusUnauthorized:
		return New(AuthRequired, message)
	case http.StatusConflict:
		return New(Conflict, message)
	case http.StatusForbidden:
		return New(Forbidden, message)
	default:
		return New(Unknown, message)
	}
}

// UserMessage resolves any error to exactly one string suitable for
// display. Errors outside the taxonomy collapse into a generic message.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Something went wrong, try again"
}
