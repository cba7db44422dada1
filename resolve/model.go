package resolve

import (
	"fmt"

	"github.com/dhamidi/espresso/classfile"
)

// Class is a class file with every constant pool index replaced by the value
// it points at. Class names stay in internal form (java/lang/Object).
type Class struct {
	Name         string
	SuperClass   string
	Interfaces   []string
	MajorVersion classfile.MajorVersion
	MinorVersion uint16
	AccessFlags  classfile.AccessFlags
	// Constants mirrors the pool: position p resolves index p+1.
	Constants  []Constant
	Fields     []Member
	Methods    []Member
	Attributes []Attribute
}

func (c *Class) SourceName() string {
	return classfile.InternalToSourceName(c.Name)
}

type Member struct {
	Name        string
	Descriptor  string
	AccessFlags classfile.AccessFlags
	Attributes  []Attribute
}

type Attribute struct {
	Name string
	Info []byte
}

// Constant is a resolved pool entry.
type Constant interface {
	Tag() classfile.ConstantTag
	String() string
}

type Utf8 string

func (Utf8) Tag() classfile.ConstantTag { return classfile.ConstantUtf8 }
func (s Utf8) String() string           { return string(s) }

type Integer int32

func (Integer) Tag() classfile.ConstantTag { return classfile.ConstantInteger }
func (i Integer) String() string           { return fmt.Sprint(int32(i)) }

type Float float32

func (Float) Tag() classfile.ConstantTag { return classfile.ConstantFloat }
func (f Float) String() string           { return fmt.Sprint(float32(f)) }

type Long int64

func (Long) Tag() classfile.ConstantTag { return classfile.ConstantLong }
func (l Long) String() string           { return fmt.Sprint(int64(l)) }

type Double float64

func (Double) Tag() classfile.ConstantTag { return classfile.ConstantDouble }
func (d Double) String() string           { return fmt.Sprint(float64(d)) }

type ClassRef struct {
	Name string
}

func (ClassRef) Tag() classfile.ConstantTag { return classfile.ConstantClass }
func (c ClassRef) String() string           { return c.Name }

type StringValue struct {
	Value string
}

func (StringValue) Tag() classfile.ConstantTag { return classfile.ConstantString }
func (s StringValue) String() string           { return fmt.Sprintf("%q", s.Value) }

type NameAndType struct {
	Name       string
	Descriptor string
}

func (NameAndType) Tag() classfile.ConstantTag { return classfile.ConstantNameAndType }
func (n NameAndType) String() string           { return n.Name + ":" + n.Descriptor }

// MemberRef is a resolved Fieldref, Methodref or InterfaceMethodref; Kind
// tells which.
type MemberRef struct {
	Kind        classfile.ConstantTag
	Class       ClassRef
	NameAndType NameAndType
}

func (m MemberRef) Tag() classfile.ConstantTag { return m.Kind }

func (m MemberRef) String() string {
	return m.Class.Name + "." + m.NameAndType.String()
}

type MethodHandle struct {
	Kind      classfile.MethodHandleKind
	Reference MemberRef
}

func (MethodHandle) Tag() classfile.ConstantTag { return classfile.ConstantMethodHandle }

func (m MethodHandle) String() string {
	return m.Kind.String() + " " + m.Reference.String()
}

type MethodType struct {
	Descriptor string
}

func (MethodType) Tag() classfile.ConstantTag { return classfile.ConstantMethodType }
func (m MethodType) String() string           { return m.Descriptor }

// InvokeDynamic keeps the bootstrap method position as is; the
// BootstrapMethods attribute body is not decoded.
type InvokeDynamic struct {
	BootstrapMethodAttr uint16
	NameAndType         NameAndType
}

func (InvokeDynamic) Tag() classfile.ConstantTag { return classfile.ConstantInvokeDynamic }

func (d InvokeDynamic) String() string {
	return fmt.Sprintf("#%d:%s", d.BootstrapMethodAttr, d.NameAndType)
}
