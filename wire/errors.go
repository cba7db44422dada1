package wire

import (
	"errors"
	"fmt"
)

// Kind classifies a decode failure. A Kind is itself an error so callers can
// test for it with errors.Is.
type Kind uint8

const (
	// NotEnoughBytes means the cursor ran out before a fixed-size or
	// length-prefixed read could complete.
	NotEnoughBytes Kind = iota + 1
	// ValueTooLarge means a value exceeds the range it has to fit in.
	ValueTooLarge
	// Malformed means a tag, discriminant or byte sequence matches no legal variant.
	Malformed
)

func (k Kind) Error() string {
	switch k {
	case NotEnoughBytes:
		return "not enough bytes"
	case ValueTooLarge:
		return "value too large"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("wire error kind %d", uint8(k))
	}
}

// Error is a decode failure at a cursor offset.
type Error struct {
	Kind   Kind
	Offset int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf reports the Kind carried by err, or 0 if err did not come from this package.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

func newError(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
