package outcome

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
)

// Kind classifies failures that escape the outcome path.
type Kind int

const (
	KindOther Kind = iota
	KindPermission
	KindInvalidState
	KindInvalidArgument
	KindNotFound
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "Permission"
	case KindInvalidState:
		return "InvalidState"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindNotFound:
		return "NotFound"
	case KindCancelled:
		return "Cancelled"
	default:
		return "Other"
	}
}

// Sentinel errors for each kind. Wrap them with %w to mark an
// infrastructure failure with a kind.
var (
	ErrPermission       = errors.New("permission denied")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
)

// Kinder is implemented by errors that know their own kind.
type Kinder interface {
	Kind() Kind
}

// Classifier recognizes errors from a specific library. It returns false
// when it has no opinion.
type Classifier func(err error) (Kind, bool)

// Classify resolves the kind of err. Errors implementing Kinder win, then
// the given classifiers in order, then the built-in sentinels.
func Classify(err error, classifiers ...Classifier) Kind {
	if err == nil {
		return KindOther
	}

	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}

	for _, c := range classifiers {
		if kind, ok := c(err); ok {
			return kind
		}
	}

	switch {
	case errors.Is(err, ErrPermission), errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, ErrInvalidOperation):
		return KindInvalidState
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows), errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindOther
	}
}

// Fault is an unexpected failure with an explicit kind. It records the
// call stack where it was raised.
type Fault struct {
	kind  Kind
	msg   string
	cause error
	pcs   []uintptr
}

// Raise creates a Fault of the given kind.
func Raise(kind Kind, msg string) *Fault {
	return newFault(kind, msg, nil)
}

// Raisef creates a Fault with a formatted message.
func Raisef(kind Kind, format string, args ...any) *Fault {
	return newFault(kind, fmt.Sprintf(format, args...), nil)
}

// WrapFault creates a Fault of the given kind around cause.
func WrapFault(kind Kind, msg string, cause error) *Fault {
	return newFault(kind, msg, cause)
}

func newFault(kind Kind, msg string, cause error) *Fault {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	return &Fault{kind: kind, msg: msg, cause: cause, pcs: pcs[:n]}
}

func (f *Fault) Error() string {
	if f.cause != nil {
		if f.msg == "" {
			return f.cause.Error()
		}
		return f.msg + ": " + f.cause.Error()
	}
	return f.msg
}

func (f *Fault) Unwrap() error { return f.cause }

// Kind implements Kinder.
func (f *Fault) Kind() Kind { return f.kind }

// StackTrace returns one "function file:line" entry per frame.
func (f *Fault) StackTrace() []string {
	return formatFrames(f.pcs)
}

func formatFrames(pcs []uintptr) []string {
	if len(pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs)
	var lines []string
	for {
		fr, more := frames.Next()
		lines = append(lines, fmt.Sprintf("%s %s:%d", fr.Function, fr.File, fr.Line))
		if !more {
			break
		}
	}
	return lines
}

// PanicError wraps a value recovered from a panic together with the stack
// of the panicking goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap exposes a panicked error so it can be classified.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// StackTrace splits the captured stack into lines.
func (p *PanicError) StackTrace() []string {
	s := strings.TrimRight(string(p.Stack), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

type stackTracer interface {
	StackTrace() []string
}

// describe builds the development-only exception description of err.
// Errors that carry no stack get the stack of describe's caller.
func describe(err error) ExceptionInfo {
	info := ExceptionInfo{Type: typeName(err), Message: err.Error()}
	var st stackTracer
	if errors.As(err, &st) {
		info.StackTrace = st.StackTrace()
		return info
	}
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	info.StackTrace = formatFrames(pcs[:n])
	return info
}

func typeName(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return "Fault(" + f.kind.String() + ")"
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
