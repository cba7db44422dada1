package classfile

import "github.com/dhamidi/espresso/wire"

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       StringIndex
	DescriptorIndex StringIndex
	Attributes      []AttributeInfo
}

func (m *MethodInfo) Decode(r *wire.Reader) error {
	return decodeMember(r, &m.AccessFlags, &m.NameIndex, &m.DescriptorIndex, &m.Attributes)
}

func (m *MethodInfo) Encode(w *wire.Writer) int {
	return encodeMember(w, m.AccessFlags, m.NameIndex, m.DescriptorIndex, m.Attributes)
}

func (m *MethodInfo) Name(cp ConstantPool) (string, error) {
	return cp.Utf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) (string, error) {
	return cp.Utf8(m.DescriptorIndex)
}

func (m *MethodInfo) Attribute(cp ConstantPool, name string) (*AttributeInfo, error) {
	return findAttribute(cp, m.Attributes, name)
}

func (m *MethodInfo) IsPublic() bool    { return m.AccessFlags.IsPublic() }
func (m *MethodInfo) IsPrivate() bool   { return m.AccessFlags.IsPrivate() }
func (m *MethodInfo) IsProtected() bool { return m.AccessFlags.IsProtected() }
func (m *MethodInfo) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *MethodInfo) IsFinal() bool     { return m.AccessFlags.IsFinal() }
func (m *MethodInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	name, err := m.Name(cp)
	return err == nil && name == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	name, err := m.Name(cp)
	return err == nil && name == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) (*MethodDescriptor, error) {
	desc, err := m.Descriptor(cp)
	if err != nil {
		return nil, err
	}
	return ParseMethodDescriptor(desc)
}
