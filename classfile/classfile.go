package classfile

import (
	"fmt"

	"github.com/dhamidi/espresso/wire"
)

// ClassFile is a decoded class file. It is never modified after decoding and
// may be read from several goroutines.
type ClassFile struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion MajorVersion
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    ClassIndex
	SuperClass   ClassIndex
	Interfaces   []ClassIndex
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

// Decode reads the fields in file order. cf is only assigned once every
// part has decoded.
func (cf *ClassFile) Decode(r *wire.Reader) error {
	var c ClassFile
	var err error

	if c.Magic, err = r.Uint32(); err != nil {
		return fmt.Errorf("failed to read magic: %w", err)
	}
	if c.MinorVersion, err = r.Uint16(); err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if err = c.MajorVersion.Decode(r); err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if err = c.ConstantPool.Decode(r); err != nil {
		return fmt.Errorf("failed to read constant pool: %w", err)
	}
	if err = c.AccessFlags.Decode(r); err != nil {
		return fmt.Errorf("failed to read access flags: %w", err)
	}
	if err = c.ThisClass.Decode(r); err != nil {
		return fmt.Errorf("failed to read this class: %w", err)
	}
	if err = c.SuperClass.Decode(r); err != nil {
		return fmt.Errorf("failed to read super class: %w", err)
	}
	if c.Interfaces, err = wire.ReadSeqOf[ClassIndex](r, wire.Table16); err != nil {
		return fmt.Errorf("failed to read interfaces: %w", err)
	}
	if c.Fields, err = wire.ReadSeqOf[FieldInfo](r, wire.Table16); err != nil {
		return fmt.Errorf("failed to read fields: %w", err)
	}
	if c.Methods, err = wire.ReadSeqOf[MethodInfo](r, wire.Table16); err != nil {
		return fmt.Errorf("failed to read methods: %w", err)
	}
	if c.Attributes, err = decodeAttributes(r); err != nil {
		return fmt.Errorf("failed to read attributes: %w", err)
	}

	*cf = c
	return nil
}

func (cf *ClassFile) Encode(w *wire.Writer) int {
	n := w.PutUint32(cf.Magic)
	n += w.PutUint16(cf.MinorVersion)
	n += cf.MajorVersion.Encode(w)
	n += cf.ConstantPool.Encode(w)
	n += cf.AccessFlags.Encode(w)
	n += cf.ThisClass.Encode(w)
	n += cf.SuperClass.Encode(w)
	n += wire.WriteSeqOf(w, wire.Table16, cf.Interfaces)
	n += wire.WriteSeqOf(w, wire.Table16, cf.Fields)
	n += wire.WriteSeqOf(w, wire.Table16, cf.Methods)
	n += encodeAttributes(w, cf.Attributes)
	return n
}

// HasMagic reports whether the file starts with 0xCAFEBABE.
func (cf *ClassFile) HasMagic() bool {
	return cf.Magic == Magic
}

func (cf *ClassFile) ClassName() (string, error) {
	return cf.ConstantPool.ClassName(cf.ThisClass)
}

// SuperClassName returns "" for a class without a superclass (index 0).
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return cf.ConstantPool.ClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() ([]string, error) {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		name, err := cf.ConstantPool.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		names[i] = name
	}
	return names, nil
}

// Field returns the field called name, or nil.
func (cf *ClassFile) Field(name string) (*FieldInfo, error) {
	for i := range cf.Fields {
		n, err := cf.Fields[i].Name(cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		if n == name {
			return &cf.Fields[i], nil
		}
	}
	return nil, nil
}

// Method returns the first method called name whose descriptor matches.
// An empty descriptor matches any overload.
func (cf *ClassFile) Method(name, descriptor string) (*MethodInfo, error) {
	methods, err := cf.MethodsNamed(name)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if descriptor == "" {
			return m, nil
		}
		d, err := m.Descriptor(cf.ConstantPool)
		if err != nil {
			return nil, err
		}
		if d == descriptor {
			return m, nil
		}
	}
	return nil, nil
}

func (cf *ClassFile) MethodsNamed(name string) ([]*MethodInfo, error) {
	var methods []*MethodInfo
	for i := range cf.Methods {
		n, err := cf.Methods[i].Name(cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		if n == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods, nil
}

func (cf *ClassFile) Attribute(name string) (*AttributeInfo, error) {
	return findAttribute(cf.ConstantPool, cf.Attributes, name)
}
