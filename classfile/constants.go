package classfile

import (
	"fmt"
	"strings"

	"github.com/dhamidi/espresso/wire"
)

const (
	Magic = 0xCAFEBABE
)

type AccessFlags uint16

const (
	AccPublic    AccessFlags = 0x0001
	AccPrivate   AccessFlags = 0x0002
	AccProtected AccessFlags = 0x0004
	AccStatic    AccessFlags = 0x0008
	AccFinal     AccessFlags = 0x0010
	AccVolatile  AccessFlags = 0x0040
	AccTransient AccessFlags = 0x0080
	AccSynthetic AccessFlags = 0x1000
	AccEnum      AccessFlags = 0x4000
)

var accessFlagNames = []struct {
	flag AccessFlags
	name string
}{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccVolatile, "volatile"},
	{AccTransient, "transient"},
	{AccSynthetic, "synthetic"},
	{AccEnum, "enum"},
}

const knownAccessFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
	AccVolatile | AccTransient | AccSynthetic | AccEnum

// ParseAccessFlags keeps the bits of raw that name a known flag and drops the rest.
func ParseAccessFlags(raw uint16) AccessFlags {
	return AccessFlags(raw) & knownAccessFlags
}

func (f *AccessFlags) Decode(r *wire.Reader) error {
	raw, err := r.Uint16()
	if err != nil {
		return err
	}
	*f = ParseAccessFlags(raw)
	return nil
}

func (f AccessFlags) Encode(w *wire.Writer) int {
	return w.PutUint16(uint16(f))
}

func (f AccessFlags) IsPublic() bool    { return f&AccPublic != 0 }
func (f AccessFlags) IsPrivate() bool   { return f&AccPrivate != 0 }
func (f AccessFlags) IsProtected() bool { return f&AccProtected != 0 }
func (f AccessFlags) IsStatic() bool    { return f&AccStatic != 0 }
func (f AccessFlags) IsFinal() bool     { return f&AccFinal != 0 }
func (f AccessFlags) IsVolatile() bool  { return f&AccVolatile != 0 }
func (f AccessFlags) IsTransient() bool { return f&AccTransient != 0 }
func (f AccessFlags) IsSynthetic() bool { return f&AccSynthetic != 0 }
func (f AccessFlags) IsEnum() bool      { return f&AccEnum != 0 }

// Names lists the set flags in bit order.
func (f AccessFlags) Names() []string {
	var names []string
	for _, n := range accessFlagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

func (f AccessFlags) String() string {
	return strings.Join(f.Names(), " ")
}

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantInvokeDynamic      ConstantTag = 18
)

func (t ConstantTag) String() string {
	switch t {
	case ConstantUtf8:
		return "Utf8"
	case ConstantInteger:
		return "Integer"
	case ConstantFloat:
		return "Float"
	case ConstantLong:
		return "Long"
	case ConstantDouble:
		return "Double"
	case ConstantClass:
		return "Class"
	case ConstantString:
		return "String"
	case ConstantFieldref:
		return "Fieldref"
	case ConstantMethodref:
		return "Methodref"
	case ConstantInterfaceMethodref:
		return "InterfaceMethodref"
	case ConstantNameAndType:
		return "NameAndType"
	case ConstantMethodHandle:
		return "MethodHandle"
	case ConstantMethodType:
		return "MethodType"
	case ConstantInvokeDynamic:
		return "InvokeDynamic"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

func (k MethodHandleKind) String() string {
	switch k {
	case RefGetField:
		return "getField"
	case RefGetStatic:
		return "getStatic"
	case RefPutField:
		return "putField"
	case RefPutStatic:
		return "putStatic"
	case RefInvokeVirtual:
		return "invokeVirtual"
	case RefInvokeStatic:
		return "invokeStatic"
	case RefInvokeSpecial:
		return "invokeSpecial"
	case RefNewInvokeSpecial:
		return "newInvokeSpecial"
	case RefInvokeInterface:
		return "invokeInterface"
	default:
		return fmt.Sprintf("RefKind(%d)", uint8(k))
	}
}
