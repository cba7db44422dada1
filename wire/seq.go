package wire

import (
	"fmt"
	"math"
)

// Width is the size of a sequence's count prefix.
type Width uint8

const (
	U8  Width = 1
	U16 Width = 2
	U32 Width = 4
	U64 Width = 8
)

func (w Width) max() uint64 {
	switch w {
	case U8:
		return math.MaxUint8
	case U16:
		return math.MaxUint16
	case U32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

func (w Width) String() string {
	return fmt.Sprintf("u%d", uint8(w)*8)
}

// Layout describes a count-prefixed sequence on the wire: a Prefix-wide count
// followed by count-BaseOffset items.
type Layout struct {
	Prefix     Width
	BaseOffset uint64
}

var (
	// PoolTable is the constant pool layout: the count is one past the last
	// usable index.
	PoolTable = Layout{Prefix: U16, BaseOffset: 1}
	// Table16 is an exact u16 cardinality (interfaces, fields, methods, attributes).
	Table16 = Layout{Prefix: U16}
	// Table32 is an exact u32 cardinality.
	Table32 = Layout{Prefix: U32}
	// Blob32 is a u32 length followed by that many bytes (attribute bodies).
	Blob32 = Layout{Prefix: U32}
)

func (r *Reader) prefix(w Width) (uint64, error) {
	switch w {
	case U8:
		v, err := r.Uint8()
		return uint64(v), err
	case U16:
		v, err := r.Uint16()
		return uint64(v), err
	case U32:
		v, err := r.Uint32()
		return uint64(v), err
	case U64:
		return r.Uint64()
	default:
		return 0, r.Fail(Malformed, "unsupported prefix width %d", uint8(w))
	}
}

func (w *Writer) prefix(width Width, v uint64) int {
	switch width {
	case U8:
		return w.PutUint8(uint8(v))
	case U16:
		return w.PutUint16(uint16(v))
	case U32:
		return w.PutUint32(uint32(v))
	case U64:
		return w.PutUint64(v)
	default:
		w.fail(Malformed, "unsupported prefix width %d", uint8(width))
		return 0
	}
}

// ReadCount decodes a sequence prefix and returns the number of items that
// follow it. A declared count below the base offset is Malformed; one the
// remaining input cannot hold is NotEnoughBytes.
func ReadCount(r *Reader, l Layout) (int, error) {
	start := r.Offset()
	declared, err := r.prefix(l.Prefix)
	if err != nil {
		return 0, err
	}
	if declared < l.BaseOffset {
		return 0, newError(Malformed, start, "%s count %d below base offset %d", l.Prefix, declared, l.BaseOffset)
	}
	// Every item takes at least one byte, so a count past the end of the
	// input can never be satisfied.
	n := declared - l.BaseOffset
	if n > uint64(r.Remaining()) {
		return 0, newError(NotEnoughBytes, start, "%s count %d exceeds %d remaining bytes", l.Prefix, declared, r.Remaining())
	}
	return int(n), nil
}

// ReadSeq decodes a count-prefixed sequence, calling item once per element.
// The first item failure is returned and no partial sequence is kept.
func ReadSeq[T any](r *Reader, l Layout, item func(*Reader) (T, error)) ([]T, error) {
	n, err := ReadCount(r, l)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := item(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// ReadSeqOf is ReadSeq for Decoder element types.
func ReadSeqOf[T any, PT Decodable[T]](r *Reader, l Layout) ([]T, error) {
	return ReadSeq(r, l, Read[T, PT])
}

// ReadBlob decodes a count-prefixed run of bytes.
func ReadBlob(r *Reader, l Layout) ([]byte, error) {
	n, err := ReadCount(r, l)
	if err != nil {
		return nil, err
	}
	return r.Bytes(n)
}

// writeCount writes len+BaseOffset in the layout's prefix width. A count that
// does not fit sets ValueTooLarge on w.
func writeCount(w *Writer, l Layout, n int) int {
	count := uint64(n) + l.BaseOffset
	if count > l.Prefix.max() || count < l.BaseOffset {
		w.fail(ValueTooLarge, "%d items do not fit a %s count", n, l.Prefix)
	}
	return w.prefix(l.Prefix, count)
}

// WriteSeq mirrors ReadSeq.
func WriteSeq[T any](w *Writer, l Layout, items []T, item func(*Writer, T) int) int {
	n := writeCount(w, l, len(items))
	for _, v := range items {
		n += item(w, v)
	}
	return n
}

// WriteSeqOf is WriteSeq for element types whose pointer implements Encoder.
func WriteSeqOf[T any, PT interface {
	*T
	Encoder
}](w *Writer, l Layout, items []T) int {
	n := writeCount(w, l, len(items))
	for i := range items {
		n += PT(&items[i]).Encode(w)
	}
	return n
}

// WriteBlob mirrors ReadBlob.
func WriteBlob(w *Writer, l Layout, b []byte) int {
	return writeCount(w, l, len(b)) + w.PutBytes(b)
}
