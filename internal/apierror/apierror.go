// Package apierror provides the classified error type surfaced by the embed
// service and rendered by the error view.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the class of a request failure.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindSourceUnreachable
	KindInvalidSource
	KindInvalidTargets
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindSourceUnreachable:
		return "source_unreachable"
	case KindInvalidSource:
		return "invalid_source"
	case KindInvalidTargets:
		return "invalid_targets"
	default:
		return "internal"
	}
}

const defaultMessage = "Oops, something went wrong!"

// Error is a request failure with a numeric code and a user facing message.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsClientError reports whether the error was caused by the request rather
// than by the service.
func (e *Error) IsClientError() bool {
	return e.Code == http.StatusBadRequest
}

func newError(kind Kind, message string, cause error) *Error {
	code := http.StatusBadRequest
	if kind == KindInternal {
		code = http.StatusInternalServerError
	}
	if message == "" {
		message = defaultMessage
	}
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// InvalidInput creates an error for a missing or malformed request parameter.
func InvalidInput(message string) *Error {
	return newError(KindInvalidInput, message, nil)
}

// SourceUnreachable creates an error for a source that could not be fetched.
func SourceUnreachable(cause error) *Error {
	return newError(KindSourceUnreachable, "Could not load JSON source", cause)
}

// InvalidSourceFormat creates an error for a source body that is not
// structured data.
func InvalidSourceFormat(cause error) *Error {
	return newError(KindInvalidSource, "Invalid JSON source", cause)
}

// InvalidDescription creates an error for a source document rejected by the
// converter. The converter's reason becomes the message.
func InvalidDescription(cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return newError(KindInvalidSource, msg, cause)
}

// InvalidTargets creates an error for a selection that matched nothing.
func InvalidTargets() *Error {
	return newError(KindInvalidTargets, "Invalid Targets", nil)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return newError(KindInternal, defaultMessage, cause)
}

// As classifies err. Errors that are not an *Error become internal errors.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
