package classfile

import (
	"errors"
	"fmt"
)

// Lookup failures. These only come from dereferencing an index; a file whose
// indices point nowhere still decodes.
var (
	ErrIndexOutOfRange = errors.New("constant pool index out of range")
	ErrWrongKind       = errors.New("constant pool entry has the wrong kind")
)

type LookupError struct {
	Index uint16
	Want  string
	Got   ConstantTag
	Err   error
}

func (e *LookupError) Error() string {
	switch {
	case e.Err == ErrWrongKind:
		return fmt.Sprintf("constant #%d is %s, want %s", e.Index, e.Got, e.Want)
	case e.Want != "":
		return fmt.Sprintf("constant #%d (want %s): %s", e.Index, e.Want, e.Err)
	default:
		return fmt.Sprintf("constant #%d: %s", e.Index, e.Err)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
