package wire

import (
	"encoding/binary"
	"math"
)

// Reader is a forward-only cursor over an in-memory buffer. Bytes are consumed
// by every successful read and never revisited. A Reader must not be shared
// between concurrent decodes.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a cursor positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Fail builds an error of the given kind at the current offset.
func (r *Reader) Fail(kind Kind, format string, args ...any) error {
	return newError(kind, r.pos, format, args...)
}

// take consumes exactly n bytes or fails without advancing.
func (r *Reader) take(n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, r.Fail(ValueTooLarge, "negative length %d for %s", n, what)
	}
	if r.Remaining() < n {
		return nil, r.Fail(NotEnoughBytes, "%s needs %d bytes, %d left", what, n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Bytes reads exactly n bytes. The result is a copy owned by the caller.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.take(n, "byte run")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Uint8 reads one byte. Every fixed-width read fails with NotEnoughBytes
// when fewer bytes remain than its width, and consumes nothing then.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int8 reads one byte as a two's complement value.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

// Uint16 reads a big-endian u16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Int16 reads a big-endian signed 16-bit value.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint32 reads a big-endian u32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int32 reads a big-endian signed 32-bit value.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads a big-endian u64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8, "u64")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Int64 reads a big-endian signed 64-bit value.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float32 reads four bytes as an IEEE 754 single. NaN payloads are kept.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads eight bytes as an IEEE 754 double.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	return math.Float64frombits(v), err
}

// Bool reads one byte and accepts only 0 and 1. Any other value is Malformed
// and the byte stays consumed.
func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, newError(Malformed, r.pos-1, "boolean byte 0x%02x", v)
	}
}
