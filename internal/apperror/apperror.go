package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// Error is an error that knows how it should surface over HTTP.
// MessageID is looked up in the locale bundle; Message is the English fallback.
type Error struct {
	Kind      Kind
	MessageID string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Type is the error name reported in response bodies.
func (e *Error) Type() string {
	switch e.Kind {
	case KindValidation:
		return "BadRequestError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindForbidden:
		return "ForbiddenError"
	case KindNotFound:
		return "NotFoundError"
	default:
		return "InternalServerError"
	}
}

func Validation(messageID, message string) *Error {
	return &Error{Kind: KindValidation, MessageID: messageID, Message: message}
}

func Unauthorized(err error) *Error {
	return &Error{Kind: KindUnauthorized, MessageID: "Unauthorized", Message: "Unauthorized", Err: err}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, MessageID: "Forbidden", Message: "You don't have enough permissions"}
}

func ForbiddenWith(messageID, message string) *Error {
	return &Error{Kind: KindForbidden, MessageID: messageID, Message: message}
}

func NotFound(messageID, message string) *Error {
	return &Error{Kind: KindNotFound, MessageID: messageID, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, MessageID: "InternalError", Message: "Internal server error", Err: err}
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
