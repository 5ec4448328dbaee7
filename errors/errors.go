package errors

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. A package declares its own root error
// with Register only when none of these describes the failure.
var (
	// ErrUnauthorized is returned when the caller lacks the permission.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned when a message is malformed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a record would be persisted in an invalid
	// state.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when an entity with the same key exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned for code paths that are only reachable through
	// a programming mistake.
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when the operation is not allowed in the current
	// state of an entity.
	ErrState = Register(10, "invalid state")

	// ErrType is returned when a value is of an unexpected type.
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance cannot cover a
	// transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount is returned for zero or otherwise unusable amounts.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput is returned for invalid arguments.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a result does not fit its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying storage misbehaves.
	ErrDatabase = Register(17, "database")

	// ErrPanic wraps a recovered panic. Its message is redacted outside of
	// debug mode.
	ErrPanic = Register(111222, "panic")
)

// usedCodes ensures no two root errors share a code. Code 1 is reserved
// for errors that were not registered.
var usedCodes = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a new root error. It panics when the code is taken, so
// call it only while the program starts, usually from a package level var.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	e := &Error{code: code, desc: description}
	usedCodes[code] = e
	return e
}

// Error is a root error. Errors created at runtime wrap one of them, so the
// client receives a stable code and callers can test the kind with Is.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code that is exposed to the client.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New wraps the root error with a description. It is the same as
// Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is this root error or wraps it.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds a description to err. A stack trace is attached at the first
// wrap only. Wrapping nil returns nil, so a function may end with
// return Wrap(err, "...").
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace of the innermost wrap with %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", e.parent)
		_, _ = io.WriteString(s, e.msg)
		return
	}
	_, _ = io.WriteString(s, e.Error())
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found along the chain of
// causes, or nil.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
