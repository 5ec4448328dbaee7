package heirloom

import (
	"reflect"

	"github.com/iov-one/heirloom/errors"
)

// Msg is one requested state transition. Authentication data lives in
// the Tx carrying it.
type Msg interface {
	// Path routes the message to its handler. It matches
	// [0-9A-Za-z_\-/]+.
	Path() string

	// Validate checks the message on its own, without looking at state.
	Validate() error
}

// Tx is what a client submits: a message plus whatever the decorators of
// the application need, such as signatures.
type Tx interface {
	GetMsg() (Msg, error)
}

// TxDecoder parses the raw bytes of a transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath is the path of the message of tx, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into destination, a pointer to the
// concrete message type.
//
// The message is not validated. The handler picks the moment, the state
// may decide which error is reported first.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "nil message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a pointer, got %T", destination)
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dst.Elem().Set(src)
	return nil
}
