package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is the failure type every service operation returns. Data is set when a
// failed outcome still carries a record for the caller, e.g. a declined payment.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Data    any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string, err error) *Error     { return newError(KindNotFound, message, err) }
func Conflict(message string, err error) *Error     { return newError(KindConflict, message, err) }
func BadRequest(message string, err error) *Error   { return newError(KindBadRequest, message, err) }
func Unauthorized(message string, err error) *Error { return newError(KindUnauthorized, message, err) }
func Forbidden(message string, err error) *Error    { return newError(KindForbidden, message, err) }
func Upstream(message string, err error) *Error     { return newError(KindUpstream, message, err) }
func Internal(message string, err error) *Error     { return newError(KindInternal, message, err) }

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
