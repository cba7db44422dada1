// Package wire is the byte-level decoding framework for the class file codec:
// a forward-only Reader, an append-only Writer, big-endian primitive codecs and
// count-prefixed sequences.
//
// Every failure is an error carrying a Kind:
//
//	v, err := wire.Read[classfile.FieldInfo](r)
//	if errors.Is(err, wire.NotEnoughBytes) {
//		// input was truncated
//	}
//
// A type takes part in the framework by implementing Decoder on its pointer and
// Encoder on its value or pointer. Decode must consume exactly the bytes the type
// owns so that composite decoders can sequence sub-decodes.
package wire

// Decoder is implemented by types that can read themselves from a cursor.
type Decoder interface {
	Decode(r *Reader) error
}

// Encoder is implemented by types that can append themselves to a Writer.
// Encode returns the number of bytes written.
type Encoder interface {
	Encode(w *Writer) int
}

// Decodable constrains PT to be a pointer to T that implements Decoder.
type Decodable[T any] interface {
	*T
	Decoder
}

// Read decodes one T from r. On failure the zero T is returned.
func Read[T any, PT Decodable[T]](r *Reader) (T, error) {
	var v T
	if err := PT(&v).Decode(r); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Write encodes v into w and returns the number of bytes written.
func Write(w *Writer, v Encoder) int {
	return v.Encode(w)
}
