package domain

import (
	"errors"
	"strings"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrUserInactive    = errors.New("user account is deactivated")

	// ErrGateway marks failures of the communication provider. The user sync
	// path swallows errors of this kind; lifecycle operations turn them into
	// one of the Err*Failed errors below.
	ErrGateway = errors.New("communication gateway error")

	ErrProvisioningFailed = errors.New("failed to create session")
	ErrTeardownFailed     = errors.New("failed to end session")
	ErrMemberSyncFailed   = errors.New("failed to add member to session chat")
	ErrTokenIssueFailed   = errors.New("failed to generate chat token")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed client input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// KindOf classifies err. Anything not recognised is internal.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}

	switch {
	case errors.Is(err, ErrProvisioningFailed),
		errors.Is(err, ErrTeardownFailed),
		errors.Is(err, ErrMemberSyncFailed),
		errors.Is(err, ErrTokenIssueFailed):
		return KindInternal
	case errors.Is(err, ErrSessionNotActive),
		errors.Is(err, ErrHostCannotJoin),
		errors.Is(err, ErrSessionAlreadyCompleted):
		return KindValidation
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthorized
	case errors.Is(err, ErrNotSessionHost), errors.Is(err, ErrUserInactive):
		return KindForbidden
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrActiveSessionExists),
		errors.Is(err, ErrSessionFull),
		errors.Is(err, ErrUserExists),
		errors.Is(err, ErrEmailInUse):
		return KindConflict
	}
	return KindInternal
}

// publicErrors lists the sentinels whose message may reach the caller.
var publicErrors = []error{
	ErrProvisioningFailed,
	ErrTeardownFailed,
	ErrMemberSyncFailed,
	ErrTokenIssueFailed,
	ErrSessionNotFound,
	ErrActiveSessionExists,
	ErrSessionNotActive,
	ErrHostCannotJoin,
	ErrSessionFull,
	ErrNotSessionHost,
	ErrSessionAlreadyCompleted,
	ErrUserNotFound,
	ErrUserExists,
	ErrEmailInUse,
	ErrUnauthenticated,
	ErrUserInactive,
}

// PublicMessage returns the caller-safe message for err and whether err is
// operational. Non-operational errors get ok == false and should be reported
// with a generic message.
func PublicMessage(err error) (msg string, ok bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return "Validation failed", true
	}
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error(), true
		}
	}
	return "", false
}
