package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindUnavailable  ErrorKind = "unavailable"
	KindInternal     ErrorKind = "internal"
)

// AuthReason narrows a KindUnauthorized error. It is only used server-side to pick
// the status code; the client never learns which credential check failed.
type AuthReason string

const (
	AuthMissing            AuthReason = "missing"
	AuthMalformed          AuthReason = "malformed"
	AuthExpired            AuthReason = "expired"
	AuthInvalidCredentials AuthReason = "invalid_credentials"
)

// Error is the only error type that crosses the service boundary. Message is safe
// to show to a client, Err is for logs.
type Error struct {
	Kind    ErrorKind
	Reason  AuthReason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func ValidationError(msg string) *Error {
	return NewError(KindValidation, msg, nil)
}

func NotFoundError(msg string) *Error {
	return NewError(KindNotFound, msg, nil)
}

func ForbiddenError(msg string) *Error {
	return NewError(KindForbidden, msg, nil)
}

func AuthError(reason AuthReason, err error) *Error {
	return &Error{Kind: KindUnauthorized, Reason: reason, Message: authMessages[reason], Err: err}
}

func UnavailableError(err error) *Error {
	return NewError(KindUnavailable, "service unavailable", err)
}

func InternalError(err error) *Error {
	return NewError(KindInternal, "internal server error", err)
}

var authMessages = map[AuthReason]string{
	AuthMissing:            "missing token",
	AuthMalformed:          "invalid token",
	AuthExpired:            "invalid token",
	AuthInvalidCredentials: "invalid credentials",
}

// AsError extracts a *Error from err, wrapping anything else as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return InternalError(err)
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsAuthReason(err error, reason AuthReason) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnauthorized && e.Reason == reason
}
