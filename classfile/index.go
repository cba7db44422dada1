package classfile

import (
	"fmt"

	"github.com/dhamidi/espresso/wire"
)

// refKind names the constant an index has to point at. The implementations
// are empty marker types; they only exist to keep index kinds apart.
type refKind interface {
	kindName() string
}

type (
	stringRef                  struct{}
	fieldRef                   struct{}
	classRef                   struct{}
	nameAndTypeRef             struct{}
	methodRef                  struct{}
	methodOrInterfaceMethodRef struct{}
	interfaceMethodRef         struct{}
)

func (stringRef) kindName() string                  { return "Utf8" }
func (fieldRef) kindName() string                   { return "Fieldref" }
func (classRef) kindName() string                   { return "Class" }
func (nameAndTypeRef) kindName() string             { return "NameAndType" }
func (methodRef) kindName() string                  { return "Methodref" }
func (methodOrInterfaceMethodRef) kindName() string { return "Methodref or InterfaceMethodref" }
func (interfaceMethodRef) kindName() string         { return "InterfaceMethodref" }

// Index is a 1-based constant pool index that is expected to resolve to the
// entry kind K. It is read verbatim and only checked when looked up.
type Index[K refKind] uint16

type (
	StringIndex                  = Index[stringRef]
	FieldIndex                   = Index[fieldRef]
	ClassIndex                   = Index[classRef]
	NameAndTypeIndex             = Index[nameAndTypeRef]
	MethodIndex                  = Index[methodRef]
	MethodOrInterfaceMethodIndex = Index[methodOrInterfaceMethodRef]
	InterfaceMethodIndex         = Index[interfaceMethodRef]
)

// AnyIndex is satisfied by every Index kind.
type AnyIndex interface {
	wire.Encoder
	Kind() string
	Uint16() uint16
}

// Kind names the constant kind the index must resolve to.
func (i Index[K]) Kind() string {
	var k K
	return k.kindName()
}

func (i Index[K]) Uint16() uint16 {
	return uint16(i)
}

func (i Index[K]) String() string {
	return fmt.Sprintf("#%d", uint16(i))
}

func (i *Index[K]) Decode(r *wire.Reader) error {
	v, err := r.Uint16()
	if err != nil {
		return err
	}
	*i = Index[K](v)
	return nil
}

func (i Index[K]) Encode(w *wire.Writer) int {
	return w.PutUint16(uint16(i))
}
