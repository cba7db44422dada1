package classfile

import (
	"github.com/dhamidi/espresso/wire"
)

// AttributeInfo is a named attribute whose body is kept as raw bytes.
type AttributeInfo struct {
	NameIndex StringIndex
	Info      []byte
}

func (a *AttributeInfo) Decode(r *wire.Reader) error {
	name, err := wire.Read[StringIndex](r)
	if err != nil {
		return err
	}
	info, err := wire.ReadBlob(r, wire.Blob32)
	if err != nil {
		return err
	}
	a.NameIndex = name
	a.Info = info
	return nil
}

func (a *AttributeInfo) Encode(w *wire.Writer) int {
	return a.NameIndex.Encode(w) + wire.WriteBlob(w, wire.Blob32, a.Info)
}

func (a *AttributeInfo) Name(cp ConstantPool) (string, error) {
	return cp.Utf8(a.NameIndex)
}

func decodeAttributes(r *wire.Reader) ([]AttributeInfo, error) {
	return wire.ReadSeqOf[AttributeInfo](r, wire.Table16)
}

func encodeAttributes(w *wire.Writer, attrs []AttributeInfo) int {
	return wire.WriteSeqOf(w, wire.Table16, attrs)
}

// findAttribute returns the first attribute called name, or nil if there is
// none. An attribute whose name does not resolve is an error.
func findAttribute(cp ConstantPool, attrs []AttributeInfo, name string) (*AttributeInfo, error) {
	for i := range attrs {
		n, err := attrs[i].Name(cp)
		if err != nil {
			return nil, err
		}
		if n == name {
			return &attrs[i], nil
		}
	}
	return nil, nil
}
