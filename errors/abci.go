package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the code of a successful ABCI response.
	SuccessABCICode = 0

	// internalABCICode is used for every error that does not carry a
	// registered code. Its message is replaced by internalABCILog unless
	// running in debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err.
//
// Registered errors expose their message, except panics whose message may
// leak runtime state. Unregistered errors are reported as "internal error"
// with code 1. In debug mode the log is the full error with stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	case ErrPanic.Is(err):
		return code, ErrPanic.Error()
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from an ABCI code and log, so a client can
// test the result with the Is method of the registered root error.
func ABCIError(code uint32, log string) error {
	if root := usedCodes[code]; root != nil {
		return Wrap(root, log)
	}
	return Wrapf(errors.New(log), "code %d", code)
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the chain of causes and returns the first code found.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil returns true if err is nil or a typed nil pointer.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
