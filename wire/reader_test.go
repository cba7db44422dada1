package wire

import (
	"errors"
	"math"
	"testing"
)

func TestPrimitiveShortInput(t *testing.T) {
	tests := []struct {
		name  string
		width int
		read  func(r *Reader) error
	}{
		{"u8", 1, func(r *Reader) error { _, err := r.Uint8(); return err }},
		{"i8", 1, func(r *Reader) error { _, err := r.Int8(); return err }},
		{"u16", 2, func(r *Reader) error { _, err := r.Uint16(); return err }},
		{"i16", 2, func(r *Reader) error { _, err := r.Int16(); return err }},
		{"u32", 4, func(r *Reader) error { _, err := r.Uint32(); return err }},
		{"i32", 4, func(r *Reader) error { _, err := r.Int32(); return err }},
		{"u64", 8, func(r *Reader) error { _, err := r.Uint64(); return err }},
		{"i64", 8, func(r *Reader) error { _, err := r.Int64(); return err }},
		{"f32", 4, func(r *Reader) error { _, err := r.Float32(); return err }},
		{"f64", 8, func(r *Reader) error { _, err := r.Float64(); return err }},
		{"bool", 1, func(r *Reader) error { _, err := r.Bool(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < tt.width; n++ {
				r := NewReader(make([]byte, n))
				err := tt.read(r)
				if !errors.Is(err, NotEnoughBytes) {
					t.Fatalf("%d bytes: err = %v, want NotEnoughBytes", n, err)
				}
				if r.Offset() != 0 {
					t.Errorf("%d bytes: offset = %d after failed read, want 0", n, r.Offset())
				}
			}
			r := NewReader(make([]byte, tt.width))
			if err := tt.read(r); err != nil {
				t.Fatalf("%d bytes: unexpected error %v", tt.width, err)
			}
			if r.Remaining() != 0 {
				t.Errorf("remaining = %d, want 0", r.Remaining())
			}
		})
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	w := NewWriter()
	n := w.PutUint8(0xAB)
	n += w.PutInt8(-5)
	n += w.PutUint16(0xCAFE)
	n += w.PutInt16(-1234)
	n += w.PutUint32(0xCAFEBABE)
	n += w.PutInt32(math.MinInt32)
	n += w.PutUint64(math.MaxUint64)
	n += w.PutInt64(-42)
	n += w.PutFloat32(3.5)
	n += w.PutFloat64(-0.125)
	n += w.PutBool(true)
	n += w.PutBool(false)

	if n != w.Len() {
		t.Fatalf("reported %d bytes, buffer has %d", n, w.Len())
	}
	if n != 1+1+2+2+4+4+8+8+4+8+1+1 {
		t.Fatalf("wrote %d bytes", n)
	}

	r := NewReader(w.Bytes())
	check := func(name string, got, want any, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	u8, err := r.Uint8()
	check("u8", u8, uint8(0xAB), err)
	i8, err := r.Int8()
	check("i8", i8, int8(-5), err)
	u16, err := r.Uint16()
	check("u16", u16, uint16(0xCAFE), err)
	i16, err := r.Int16()
	check("i16", i16, int16(-1234), err)
	u32, err := r.Uint32()
	check("u32", u32, uint32(0xCAFEBABE), err)
	i32, err := r.Int32()
	check("i32", i32, int32(math.MinInt32), err)
	u64, err := r.Uint64()
	check("u64", u64, uint64(math.MaxUint64), err)
	i64, err := r.Int64()
	check("i64", i64, int64(-42), err)
	f32, err := r.Float32()
	check("f32", f32, float32(3.5), err)
	f64, err := r.Float64()
	check("f64", f64, float64(-0.125), err)
	b1, err := r.Bool()
	check("bool", b1, true, err)
	b2, err := r.Bool()
	check("bool", b2, false, err)

	if r.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.Remaining())
	}
}

func TestBigEndian(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := r.Uint32()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x01020304 {
		t.Errorf("Uint32() = %#x, want 0x01020304", v)
	}
}

func TestBool(t *testing.T) {
	for b := 0; b < 256; b++ {
		r := NewReader([]byte{byte(b)})
		v, err := r.Bool()
		switch b {
		case 0:
			if err != nil || v {
				t.Errorf("Bool(0) = %v, %v; want false, nil", v, err)
			}
		case 1:
			if err != nil || !v {
				t.Errorf("Bool(1) = %v, %v; want true, nil", v, err)
			}
		default:
			if !errors.Is(err, Malformed) {
				t.Errorf("Bool(%d) err = %v, want Malformed", b, err)
			}
		}
	}
}

func TestBytes(t *testing.T) {
	src := []byte{1, 2, 3}
	r := NewReader(src)
	b, err := r.Bytes(2)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 9
	if b[0] != 1 || b[1] != 2 {
		t.Errorf("Bytes(2) = %v, want a copy of [1 2]", b)
	}
	if _, err := r.Bytes(2); !errors.Is(err, NotEnoughBytes) {
		t.Errorf("Bytes past end err = %v, want NotEnoughBytes", err)
	}
}

func TestKindOf(t *testing.T) {
	r := NewReader(nil)
	_, err := r.Uint16()
	if got := KindOf(err); got != NotEnoughBytes {
		t.Errorf("KindOf = %v, want NotEnoughBytes", got)
	}
	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if werr.Offset != 0 {
		t.Errorf("Offset = %d, want 0", werr.Offset)
	}
	if got := KindOf(errors.New("other")); got != 0 {
		t.Errorf("KindOf(foreign) = %v, want 0", got)
	}
}
