package classfile

import (
	"fmt"

	"github.com/dhamidi/espresso/wire"
)

// Constant is one constant pool entry. Links to other entries are kept as
// indices and followed through ConstantPool lookups.
type Constant interface {
	wire.Encoder
	Tag() ConstantTag
}

// MemberRef is implemented by the three member reference constants.
type MemberRef interface {
	Constant
	Ref() (ClassIndex, NameAndTypeIndex)
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

func (c *ConstantUtf8Info) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantUtf8)) + wire.WriteBlob(w, wire.Table16, encodeModifiedUtf8(c.Value))
}

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

func (c *ConstantIntegerInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantInteger)) + w.PutInt32(c.Value)
}

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

func (c *ConstantFloatInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantFloat)) + w.PutFloat32(c.Value)
}

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

func (c *ConstantLongInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantLong)) + w.PutInt64(c.Value)
}

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

func (c *ConstantDoubleInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantDouble)) + w.PutFloat64(c.Value)
}

type ConstantClassInfo struct {
	Name StringIndex
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

func (c *ConstantClassInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantClass)) + c.Name.Encode(w)
}

type ConstantStringInfo struct {
	String StringIndex
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

func (c *ConstantStringInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantString)) + c.String.Encode(w)
}

type ConstantFieldrefInfo struct {
	Class       ClassIndex
	NameAndType NameAndTypeIndex
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

func (c *ConstantFieldrefInfo) Ref() (ClassIndex, NameAndTypeIndex) { return c.Class, c.NameAndType }

func (c *ConstantFieldrefInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantFieldref)) + c.Class.Encode(w) + c.NameAndType.Encode(w)
}

type ConstantMethodrefInfo struct {
	Class       ClassIndex
	NameAndType NameAndTypeIndex
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

func (c *ConstantMethodrefInfo) Ref() (ClassIndex, NameAndTypeIndex) { return c.Class, c.NameAndType }

func (c *ConstantMethodrefInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantMethodref)) + c.Class.Encode(w) + c.NameAndType.Encode(w)
}

type ConstantInterfaceMethodrefInfo struct {
	Class       ClassIndex
	NameAndType NameAndTypeIndex
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

func (c *ConstantInterfaceMethodrefInfo) Ref() (ClassIndex, NameAndTypeIndex) {
	return c.Class, c.NameAndType
}

func (c *ConstantInterfaceMethodrefInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantInterfaceMethodref)) + c.Class.Encode(w) + c.NameAndType.Encode(w)
}

type ConstantNameAndTypeInfo struct {
	Name       StringIndex
	Descriptor StringIndex
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

func (c *ConstantNameAndTypeInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantNameAndType)) + c.Name.Encode(w) + c.Descriptor.Encode(w)
}

// ConstantMethodHandleInfo holds a reference whose index kind follows from
// Kind: FieldIndex for the four field accessors, MethodIndex for
// invokeVirtual and newInvokeSpecial, MethodOrInterfaceMethodIndex for
// invokeStatic and invokeSpecial, InterfaceMethodIndex for invokeInterface.
type ConstantMethodHandleInfo struct {
	Kind      MethodHandleKind
	Reference AnyIndex
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

func (c *ConstantMethodHandleInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantMethodHandle)) + w.PutUint8(uint8(c.Kind)) + c.Reference.Encode(w)
}

type ConstantMethodTypeInfo struct {
	Descriptor StringIndex
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

func (c *ConstantMethodTypeInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantMethodType)) + c.Descriptor.Encode(w)
}

// ConstantInvokeDynamicInfo points into the BootstrapMethods attribute by
// position. That position is not checked.
type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttr uint16
	NameAndType         NameAndTypeIndex
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

func (c *ConstantInvokeDynamicInfo) Encode(w *wire.Writer) int {
	return w.PutUint8(uint8(ConstantInvokeDynamic)) + w.PutUint16(c.BootstrapMethodAttr) + c.NameAndType.Encode(w)
}

// ReadConstant decodes one tagged constant.
func ReadConstant(r *wire.Reader) (Constant, error) {
	start := r.Offset()
	raw, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	tag := ConstantTag(raw)

	switch tag {
	case ConstantUtf8:
		body, err := wire.ReadBlob(r, wire.Table16)
		if err != nil {
			return nil, err
		}
		s, err := decodeModifiedUtf8(body)
		if err != nil {
			return nil, &wire.Error{Kind: wire.Malformed, Offset: start, Detail: err.Error()}
		}
		return &ConstantUtf8Info{Value: s}, nil

	case ConstantInteger:
		v, err := r.Int32()
		if err != nil {
			return nil, err
		}
		return &ConstantIntegerInfo{Value: v}, nil

	case ConstantFloat:
		v, err := r.Float32()
		if err != nil {
			return nil, err
		}
		return &ConstantFloatInfo{Value: v}, nil

	case ConstantLong:
		v, err := r.Int64()
		if err != nil {
			return nil, err
		}
		return &ConstantLongInfo{Value: v}, nil

	case ConstantDouble:
		v, err := r.Float64()
		if err != nil {
			return nil, err
		}
		return &ConstantDoubleInfo{Value: v}, nil

	case ConstantClass:
		name, err := wire.Read[StringIndex](r)
		if err != nil {
			return nil, err
		}
		return &ConstantClassInfo{Name: name}, nil

	case ConstantString:
		s, err := wire.Read[StringIndex](r)
		if err != nil {
			return nil, err
		}
		return &ConstantStringInfo{String: s}, nil

	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref:
		class, err := wire.Read[ClassIndex](r)
		if err != nil {
			return nil, err
		}
		nat, err := wire.Read[NameAndTypeIndex](r)
		if err != nil {
			return nil, err
		}
		switch tag {
		case ConstantFieldref:
			return &ConstantFieldrefInfo{Class: class, NameAndType: nat}, nil
		case ConstantMethodref:
			return &ConstantMethodrefInfo{Class: class, NameAndType: nat}, nil
		default:
			return &ConstantInterfaceMethodrefInfo{Class: class, NameAndType: nat}, nil
		}

	case ConstantNameAndType:
		name, err := wire.Read[StringIndex](r)
		if err != nil {
			return nil, err
		}
		desc, err := wire.Read[StringIndex](r)
		if err != nil {
			return nil, err
		}
		return &ConstantNameAndTypeInfo{Name: name, Descriptor: desc}, nil

	case ConstantMethodHandle:
		return readMethodHandle(r)

	case ConstantMethodType:
		desc, err := wire.Read[StringIndex](r)
		if err != nil {
			return nil, err
		}
		return &ConstantMethodTypeInfo{Descriptor: desc}, nil

	case ConstantInvokeDynamic:
		bsm, err := r.Uint16()
		if err != nil {
			return nil, err
		}
		nat, err := wire.Read[NameAndTypeIndex](r)
		if err != nil {
			return nil, err
		}
		return &ConstantInvokeDynamicInfo{BootstrapMethodAttr: bsm, NameAndType: nat}, nil

	default:
		return nil, &wire.Error{Kind: wire.Malformed, Offset: start, Detail: fmt.Sprintf("unknown constant pool tag %d", raw)}
	}
}

func readMethodHandle(r *wire.Reader) (Constant, error) {
	start := r.Offset()
	raw, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	kind := MethodHandleKind(raw)

	var ref AnyIndex
	switch kind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		var i FieldIndex
		err = i.Decode(r)
		ref = i
	case RefInvokeVirtual, RefNewInvokeSpecial:
		var i MethodIndex
		err = i.Decode(r)
		ref = i
	case RefInvokeStatic, RefInvokeSpecial:
		var i MethodOrInterfaceMethodIndex
		err = i.Decode(r)
		ref = i
	case RefInvokeInterface:
		var i InterfaceMethodIndex
		err = i.Decode(r)
		ref = i
	default:
		return nil, &wire.Error{Kind: wire.Malformed, Offset: start, Detail: fmt.Sprintf("unknown method handle kind %d", raw)}
	}
	if err != nil {
		return nil, err
	}
	return &ConstantMethodHandleInfo{Kind: kind, Reference: ref}, nil
}

// ConstantPool holds the decoded entries in file order: position p is pool
// index p+1. Exactly count-1 entries are read; long and double take one
// position like every other constant.
type ConstantPool []Constant

func (cp *ConstantPool) Decode(r *wire.Reader) error {
	index := 0
	entries, err := wire.ReadSeq(r, wire.PoolTable, func(r *wire.Reader) (Constant, error) {
		index++
		c, err := ReadConstant(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", index, err)
		}
		return c, nil
	})
	if err != nil {
		return err
	}
	*cp = entries
	return nil
}

func (cp ConstantPool) Encode(w *wire.Writer) int {
	return wire.WriteSeq(w, wire.PoolTable, cp, func(w *wire.Writer, c Constant) int {
		return c.Encode(w)
	})
}

func (cp ConstantPool) Len() int {
	return len(cp)
}

// At returns the constant at 0-based position pos, or nil for a position
// outside the pool.
func (cp ConstantPool) At(pos int) Constant {
	if pos < 0 || pos >= len(cp) {
		return nil
	}
	return cp[pos]
}

// Entry returns the constant at 1-based index.
func (cp ConstantPool) Entry(index uint16) (Constant, error) {
	return cp.entry(index, "")
}

func (cp ConstantPool) entry(index uint16, want string) (Constant, error) {
	if index == 0 || int(index) > len(cp) {
		return nil, &LookupError{Index: index, Want: want, Err: ErrIndexOutOfRange}
	}
	return cp[index-1], nil
}

func lookup[T Constant, K refKind](cp ConstantPool, i Index[K]) (T, error) {
	var zero T
	c, err := cp.entry(uint16(i), i.Kind())
	if err != nil {
		return zero, err
	}
	v, ok := c.(T)
	if !ok {
		return zero, &LookupError{Index: uint16(i), Want: i.Kind(), Got: c.Tag(), Err: ErrWrongKind}
	}
	return v, nil
}

func (cp ConstantPool) Utf8(i StringIndex) (string, error) {
	c, err := lookup[*ConstantUtf8Info](cp, i)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func (cp ConstantPool) Class(i ClassIndex) (*ConstantClassInfo, error) {
	return lookup[*ConstantClassInfo](cp, i)
}

func (cp ConstantPool) Fieldref(i FieldIndex) (*ConstantFieldrefInfo, error) {
	return lookup[*ConstantFieldrefInfo](cp, i)
}

func (cp ConstantPool) NameAndType(i NameAndTypeIndex) (*ConstantNameAndTypeInfo, error) {
	return lookup[*ConstantNameAndTypeInfo](cp, i)
}

func (cp ConstantPool) Methodref(i MethodIndex) (*ConstantMethodrefInfo, error) {
	return lookup[*ConstantMethodrefInfo](cp, i)
}

func (cp ConstantPool) InterfaceMethodref(i InterfaceMethodIndex) (*ConstantInterfaceMethodrefInfo, error) {
	return lookup[*ConstantInterfaceMethodrefInfo](cp, i)
}

// MethodOrInterfaceMethodref accepts either a Methodref or an
// InterfaceMethodref entry.
func (cp ConstantPool) MethodOrInterfaceMethodref(i MethodOrInterfaceMethodIndex) (MemberRef, error) {
	c, err := cp.entry(uint16(i), i.Kind())
	if err != nil {
		return nil, err
	}
	switch c := c.(type) {
	case *ConstantMethodrefInfo:
		return c, nil
	case *ConstantInterfaceMethodrefInfo:
		return c, nil
	}
	return nil, &LookupError{Index: uint16(i), Want: i.Kind(), Got: c.Tag(), Err: ErrWrongKind}
}

// ClassName returns the internal name of the class at i.
func (cp ConstantPool) ClassName(i ClassIndex) (string, error) {
	class, err := cp.Class(i)
	if err != nil {
		return "", err
	}
	return cp.Utf8(class.Name)
}

// NameAndTypeStrings returns the name and descriptor strings of the entry at i.
func (cp ConstantPool) NameAndTypeStrings(i NameAndTypeIndex) (name, descriptor string, err error) {
	nat, err := cp.NameAndType(i)
	if err != nil {
		return "", "", err
	}
	if name, err = cp.Utf8(nat.Name); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(nat.Descriptor); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}
