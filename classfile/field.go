package classfile

import "github.com/dhamidi/espresso/wire"

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       StringIndex
	DescriptorIndex StringIndex
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Decode(r *wire.Reader) error {
	return decodeMember(r, &f.AccessFlags, &f.NameIndex, &f.DescriptorIndex, &f.Attributes)
}

func (f *FieldInfo) Encode(w *wire.Writer) int {
	return encodeMember(w, f.AccessFlags, f.NameIndex, f.DescriptorIndex, f.Attributes)
}

func (f *FieldInfo) Name(cp ConstantPool) (string, error) {
	return cp.Utf8(f.NameIndex)
}

func (f *FieldInfo) Descriptor(cp ConstantPool) (string, error) {
	return cp.Utf8(f.DescriptorIndex)
}

func (f *FieldInfo) Attribute(cp ConstantPool, name string) (*AttributeInfo, error) {
	return findAttribute(cp, f.Attributes, name)
}

func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) (*FieldType, error) {
	desc, err := f.Descriptor(cp)
	if err != nil {
		return nil, err
	}
	return ParseFieldDescriptor(desc)
}

func (f *FieldInfo) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *FieldInfo) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *FieldInfo) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *FieldInfo) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *FieldInfo) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *FieldInfo) IsVolatile() bool  { return f.AccessFlags.IsVolatile() }
func (f *FieldInfo) IsTransient() bool { return f.AccessFlags.IsTransient() }
func (f *FieldInfo) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *FieldInfo) IsEnum() bool      { return f.AccessFlags.IsEnum() }

// decodeMember reads the layout shared by field_info and method_info.
func decodeMember(r *wire.Reader, flags *AccessFlags, name, desc *StringIndex, attrs *[]AttributeInfo) error {
	if err := flags.Decode(r); err != nil {
		return err
	}
	if err := name.Decode(r); err != nil {
		return err
	}
	if err := desc.Decode(r); err != nil {
		return err
	}
	a, err := decodeAttributes(r)
	if err != nil {
		return err
	}
	*attrs = a
	return nil
}

func encodeMember(w *wire.Writer, flags AccessFlags, name, desc StringIndex, attrs []AttributeInfo) int {
	return flags.Encode(w) + name.Encode(w) + desc.Encode(w) + encodeAttributes(w, attrs)
}
