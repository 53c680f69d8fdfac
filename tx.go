package holdings

import (
	"reflect"

	"github.com/holdings-one/holdings/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for the engine to take an action (make a state
// transition). It is just the request, and must be validated by the
// handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate performs a sanity check on the message content. It does
	// not access any state.
	Validate() error

	// Path returns the routing path of the message. It is used by the
	// router to locate the proper handler. Must be alphanumeric
	// [0-9A-Za-z_/]+
	Path() string
}

// Tx represents the data sent from the user to the engine. It includes the
// actual message, along with information needed to authenticate the sender.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, loads it into the given
// destination and validates it. The destination must be a non-nil pointer of
// the same type as the transaction message.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "%T is not a pointer", destination)
	}
	src := reflect.ValueOf(msg)
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dst.Elem().Set(src.Elem())

	return destination.Validate()
}
