package wire

import (
	"encoding/binary"
	"math"
)

// Writer appends big-endian values to a growing buffer. Every Put returns the
// number of bytes written. The first failure is kept and reported by Err; later
// writes still append so byte counts stay consistent.
type Writer struct {
	buf []byte
	err error
}

func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded buffer. It aliases the writer's storage.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Err returns the first failure recorded by a Put, or nil.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(kind Kind, format string, args ...any) {
	if w.err == nil {
		w.err = newError(kind, len(w.buf), format, args...)
	}
}

// PutBytes appends b unchanged.
func (w *Writer) PutBytes(b []byte) int {
	w.buf = append(w.buf, b...)
	return len(b)
}

// PutUint8 appends one byte.
func (w *Writer) PutUint8(v uint8) int {
	w.buf = append(w.buf, v)
	return 1
}

// PutInt8 appends v in two's complement.
func (w *Writer) PutInt8(v int8) int {
	return w.PutUint8(uint8(v))
}

// PutUint16 appends v big-endian.
func (w *Writer) PutUint16(v uint16) int {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
	return 2
}

// PutInt16 appends v big-endian.
func (w *Writer) PutInt16(v int16) int {
	return w.PutUint16(uint16(v))
}

// PutUint32 appends v big-endian.
func (w *Writer) PutUint32(v uint32) int {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
	return 4
}

// PutInt32 appends v big-endian.
func (w *Writer) PutInt32(v int32) int {
	return w.PutUint32(uint32(v))
}

// PutUint64 appends v big-endian.
func (w *Writer) PutUint64(v uint64) int {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
	return 8
}

// PutInt64 appends v big-endian.
func (w *Writer) PutInt64(v int64) int {
	return w.PutUint64(uint64(v))
}

// PutFloat32 appends the IEEE 754 bits of v.
func (w *Writer) PutFloat32(v float32) int {
	return w.PutUint32(math.Float32bits(v))
}

// PutFloat64 appends the IEEE 754 bits of v.
func (w *Writer) PutFloat64(v float64) int {
	return w.PutUint64(math.Float64bits(v))
}

// PutBool appends 1 for true and 0 for false.
func (w *Writer) PutBool(v bool) int {
	if v {
		return w.PutUint8(1)
	}
	return w.PutUint8(0)
}
