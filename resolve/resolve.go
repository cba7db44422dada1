package resolve

import (
	"fmt"

	"github.com/dhamidi/espresso/classfile"
)

// FromClassFile follows every index in cf. The first index that does not
// resolve to the kind it names stops the walk; the returned error wraps a
// *classfile.LookupError.
func FromClassFile(cf *classfile.ClassFile) (*Class, error) {
	cp := cf.ConstantPool

	name, err := cf.ClassName()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve this class: %w", err)
	}
	super, err := cf.SuperClassName()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve super class: %w", err)
	}
	interfaces, err := cf.InterfaceNames()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %w", err)
	}
	constants, err := Constants(cp)
	if err != nil {
		return nil, err
	}

	class := &Class{
		Name:         name,
		SuperClass:   super,
		Interfaces:   interfaces,
		MajorVersion: cf.MajorVersion,
		MinorVersion: cf.MinorVersion,
		AccessFlags:  cf.AccessFlags,
		Constants:    constants,
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		m, err := member(cp, f.AccessFlags, f.NameIndex, f.DescriptorIndex, f.Attributes)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve field %d: %w", i, err)
		}
		class.Fields = append(class.Fields, m)
	}
	for i := range cf.Methods {
		mi := &cf.Methods[i]
		m, err := member(cp, mi.AccessFlags, mi.NameIndex, mi.DescriptorIndex, mi.Attributes)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve method %d: %w", i, err)
		}
		class.Methods = append(class.Methods, m)
	}
	if class.Attributes, err = attributes(cp, cf.Attributes); err != nil {
		return nil, fmt.Errorf("failed to resolve class attributes: %w", err)
	}
	return class, nil
}

// Constants resolves every entry of cp in order; position p holds index p+1.
func Constants(cp classfile.ConstantPool) ([]Constant, error) {
	out := make([]Constant, cp.Len())
	for pos := range out {
		c, err := ConstantAt(cp, uint16(pos+1))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve constant #%d: %w", pos+1, err)
		}
		out[pos] = c
	}
	return out, nil
}

// ConstantAt resolves the entry at the 1-based index.
func ConstantAt(cp classfile.ConstantPool, index uint16) (Constant, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return nil, err
	}

	switch c := entry.(type) {
	case *classfile.ConstantUtf8Info:
		return Utf8(c.Value), nil
	case *classfile.ConstantIntegerInfo:
		return Integer(c.Value), nil
	case *classfile.ConstantFloatInfo:
		return Float(c.Value), nil
	case *classfile.ConstantLongInfo:
		return Long(c.Value), nil
	case *classfile.ConstantDoubleInfo:
		return Double(c.Value), nil
	case *classfile.ConstantClassInfo:
		name, err := cp.Utf8(c.Name)
		if err != nil {
			return nil, err
		}
		return ClassRef{Name: name}, nil
	case *classfile.ConstantStringInfo:
		s, err := cp.Utf8(c.String)
		if err != nil {
			return nil, err
		}
		return StringValue{Value: s}, nil
	case *classfile.ConstantNameAndTypeInfo:
		return nameAndType(cp, index)
	case classfile.MemberRef:
		return memberRef(cp, c)
	case *classfile.ConstantMethodHandleInfo:
		return methodHandle(cp, c)
	case *classfile.ConstantMethodTypeInfo:
		desc, err := cp.Utf8(c.Descriptor)
		if err != nil {
			return nil, err
		}
		return MethodType{Descriptor: desc}, nil
	case *classfile.ConstantInvokeDynamicInfo:
		nat, err := nameAndType(cp, uint16(c.NameAndType))
		if err != nil {
			return nil, err
		}
		return InvokeDynamic{BootstrapMethodAttr: c.BootstrapMethodAttr, NameAndType: nat}, nil
	default:
		return nil, fmt.Errorf("constant #%d: unsupported %s entry", index, entry.Tag())
	}
}

func nameAndType(cp classfile.ConstantPool, index uint16) (NameAndType, error) {
	name, desc, err := cp.NameAndTypeStrings(classfile.NameAndTypeIndex(index))
	if err != nil {
		return NameAndType{}, err
	}
	return NameAndType{Name: name, Descriptor: desc}, nil
}

func memberRef(cp classfile.ConstantPool, ref classfile.MemberRef) (MemberRef, error) {
	classIndex, natIndex := ref.Ref()
	class, err := cp.ClassName(classIndex)
	if err != nil {
		return MemberRef{}, err
	}
	nat, err := nameAndType(cp, natIndex.Uint16())
	if err != nil {
		return MemberRef{}, err
	}
	return MemberRef{Kind: ref.Tag(), Class: ClassRef{Name: class}, NameAndType: nat}, nil
}

func methodHandle(cp classfile.ConstantPool, mh *classfile.ConstantMethodHandleInfo) (MethodHandle, error) {
	var (
		ref classfile.MemberRef
		err error
	)
	switch i := mh.Reference.(type) {
	case classfile.FieldIndex:
		ref, err = cp.Fieldref(i)
	case classfile.MethodIndex:
		ref, err = cp.Methodref(i)
	case classfile.MethodOrInterfaceMethodIndex:
		ref, err = cp.MethodOrInterfaceMethodref(i)
	case classfile.InterfaceMethodIndex:
		ref, err = cp.InterfaceMethodref(i)
	default:
		return MethodHandle{}, fmt.Errorf("method handle reference %v has unsupported kind %s", mh.Reference, mh.Reference.Kind())
	}
	if err != nil {
		return MethodHandle{}, err
	}
	m, err := memberRef(cp, ref)
	if err != nil {
		return MethodHandle{}, err
	}
	return MethodHandle{Kind: mh.Kind, Reference: m}, nil
}

func member(cp classfile.ConstantPool, flags classfile.AccessFlags, nameIndex, descIndex classfile.StringIndex, attrs []classfile.AttributeInfo) (Member, error) {
	name, err := cp.Utf8(nameIndex)
	if err != nil {
		return Member{}, err
	}
	desc, err := cp.Utf8(descIndex)
	if err != nil {
		return Member{}, err
	}
	resolved, err := attributes(cp, attrs)
	if err != nil {
		return Member{}, fmt.Errorf("%s: %w", name, err)
	}
	return Member{Name: name, Descriptor: desc, AccessFlags: flags, Attributes: resolved}, nil
}

func attributes(cp classfile.ConstantPool, attrs []classfile.AttributeInfo) ([]Attribute, error) {
	out := make([]Attribute, 0, len(attrs))
	for i := range attrs {
		name, err := attrs[i].Name(cp)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		out = append(out, Attribute{Name: name, Info: attrs[i].Info})
	}
	return out, nil
}
