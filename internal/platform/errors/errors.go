// Package errors is the structured error type shared by every layer
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable class of an error
// values go over the wire, append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable     // an upstream or store is down, retry may succeed
	ErrorCodeTooManyRequests // rate limited, ours or the detector's
	ErrorCodeInvalidArgument
	ErrorCodeValidation // user input rejected before any analyzer ran
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
)

var statusOf = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
}

// HTTPStatusCode maps a code to its response status, unmapped codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusOf[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is what store helpers return for a missing row
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a client safe message, an optional input field and the cause
// only msg and field ever reach the client
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the client facing projection of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	default:
		return e.msg
	}
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) ToWire() Wire    { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// Is lets errors.Is match any NotFound error against ErrNotFound
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t == ErrNotFound && e.code == ErrorCodeNotFound
}

// WireFrom projects any error, foreign errors become Unknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf is Unknown for nil and foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy tagged with the offending input field
// foreign errors come back unchanged
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
