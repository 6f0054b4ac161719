// Package outcome provides a small result-propagation discipline for
// HTTP services: service operations return a Result or Value[T] carrying
// either success or a structured Error, and the boundary translates failures
// into RFC 7807 problem-details responses.
//
// Unexpected failures that escape the outcome path (returned errors or
// panics) are handled by ExceptionHandler, which classifies them into a
// small closed set of kinds and never leaks internals outside development.
package outcome

import (
	"fmt"
	"log/slog"

	"go.uber.org/zap/zapcore"
)

// Error is a business-rule failure identified by a stable, dot-namespaced
// code such as "Deal.NotFound". Error is comparable: two errors are equal
// iff their codes and descriptions match.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

var (
	// None is the only error allowed on a successful outcome.
	None = Error{}

	NullValue    = NewError(CodeNullValue, "A null value was provided")
	NotFound     = NewError(CodeNotFound, "The requested resource was not found")
	Unauthorized = NewError(CodeUnauthorized, "You are not authorized to perform this action")
	Conflict     = NewError(CodeConflict, "A conflict occurred with the current state")
)

// NewError creates an Error with the given code and description.
func NewError(code, description string) Error {
	return Error{Code: code, Description: description}
}

// Errorf creates an Error whose description is formatted.
func Errorf(code, format string, args ...any) Error {
	return Error{Code: code, Description: fmt.Sprintf(format, args...)}
}

// FromErr converts an arbitrary Go error into an Error with the
// CodeException code. A nil error yields None.
func FromErr(err error) Error {
	if err == nil {
		return None
	}
	return Error{Code: CodeException, Description: err.Error()}
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.IsNone() {
		return "<none>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsNone reports whether e is the None sentinel.
func (e Error) IsNone() bool { return e == None }

// Is reports whether target is an Error with the same code. It lets
// errors.Is match an Error regardless of a customized description.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

// Result converts e into a failed Result.
func (e Error) Result() Result { return Failure(e) }

// LogValue implements slog.LogValuer.
func (e Error) LogValue() slog.Value {
	if e.IsNone() {
		return slog.GroupValue()
	}
	return slog.GroupValue(
		slog.String("code", e.Code),
		slog.String("description", e.Description),
	)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e Error) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("code", e.Code)
	enc.AddString("description", e.Description)
	return nil
}
