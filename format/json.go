package format

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/dhamidi/espresso/classfile"
)

// JSONEncoder writes the decoded tree as it is on the wire: indices stay
// numbers and every constant carries its tag.
type JSONEncoder struct {
	w  io.Writer
	cf *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := e.buildClassData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Magic        string          `json:"magic"`
	Version      jsonVersion     `json:"version"`
	ConstantPool []jsonConstant  `json:"constantPool"`
	AccessFlags  []string        `json:"accessFlags"`
	ThisClass    uint16          `json:"thisClass"`
	SuperClass   uint16          `json:"superClass"`
	Interfaces   []uint16        `json:"interfaces"`
	Fields       []jsonMember    `json:"fields"`
	Methods      []jsonMember    `json:"methods"`
	Attributes   []jsonAttribute `json:"attributes"`
}

type jsonVersion struct {
	Major   uint16 `json:"major"`
	Minor   uint16 `json:"minor"`
	Release string `json:"release,omitempty"`
}

// jsonConstant holds literal payloads in Value and index payloads in Refs.
type jsonConstant struct {
	Index uint16            `json:"index"`
	Tag   string            `json:"tag"`
	Kind  string            `json:"kind,omitempty"`
	Value any               `json:"value,omitempty"`
	Refs  map[string]uint16 `json:"refs,omitempty"`
}

type jsonMember struct {
	AccessFlags []string        `json:"accessFlags"`
	Name        uint16          `json:"name"`
	Descriptor  uint16          `json:"descriptor"`
	Attributes  []jsonAttribute `json:"attributes"`
}

type jsonAttribute struct {
	Name   uint16 `json:"name"`
	Length int    `json:"length"`
	Info   string `json:"info"`
}

func (e *JSONEncoder) buildClassData() (jsonClass, error) {
	cf := e.cf
	pool, err := buildConstants(cf.ConstantPool)
	if err != nil {
		return jsonClass{}, err
	}
	data := jsonClass{
		Magic: fmt.Sprintf("0x%08X", cf.Magic),
		Version: jsonVersion{
			Major:   uint16(cf.MajorVersion),
			Minor:   cf.MinorVersion,
			Release: cf.MajorVersion.Release(),
		},
		ConstantPool: pool,
		AccessFlags:  flagNames(cf.AccessFlags),
		ThisClass:    cf.ThisClass.Uint16(),
		SuperClass:   cf.SuperClass.Uint16(),
		Interfaces:   make([]uint16, len(cf.Interfaces)),
		Fields:       make([]jsonMember, len(cf.Fields)),
		Methods:      make([]jsonMember, len(cf.Methods)),
		Attributes:   buildAttributes(cf.Attributes),
	}
	for i, iface := range cf.Interfaces {
		data.Interfaces[i] = iface.Uint16()
	}
	for i, f := range cf.Fields {
		data.Fields[i] = buildMember(f.AccessFlags, f.NameIndex, f.DescriptorIndex, f.Attributes)
	}
	for i, m := range cf.Methods {
		data.Methods[i] = buildMember(m.AccessFlags, m.NameIndex, m.DescriptorIndex, m.Attributes)
	}
	return data, nil
}

func flagNames(f classfile.AccessFlags) []string {
	names := f.Names()
	if names == nil {
		return []string{}
	}
	return names
}

func buildMember(flags classfile.AccessFlags, name, desc classfile.StringIndex, attrs []classfile.AttributeInfo) jsonMember {
	return jsonMember{
		AccessFlags: flagNames(flags),
		Name:        name.Uint16(),
		Descriptor:  desc.Uint16(),
		Attributes:  buildAttributes(attrs),
	}
}

func buildAttributes(attrs []classfile.AttributeInfo) []jsonAttribute {
	result := make([]jsonAttribute, len(attrs))
	for i, a := range attrs {
		result[i] = jsonAttribute{
			Name:   a.NameIndex.Uint16(),
			Length: len(a.Info),
			Info:   hex.EncodeToString(a.Info),
		}
	}
	return result
}

func buildConstants(cp classfile.ConstantPool) ([]jsonConstant, error) {
	result := make([]jsonConstant, 0, cp.Len())
	for pos, c := range cp {
		jc := jsonConstant{Index: uint16(pos + 1), Tag: c.Tag().String()}
		switch c := c.(type) {
		case *classfile.ConstantUtf8Info:
			jc.Value = c.Value
		case *classfile.ConstantIntegerInfo:
			jc.Value = c.Value
		case *classfile.ConstantFloatInfo:
			jc.Value = jsonFloat(float64(c.Value))
		case *classfile.ConstantLongInfo:
			jc.Value = c.Value
		case *classfile.ConstantDoubleInfo:
			jc.Value = jsonFloat(c.Value)
		case *classfile.ConstantClassInfo:
			jc.Refs = map[string]uint16{"name": c.Name.Uint16()}
		case *classfile.ConstantStringInfo:
			jc.Refs = map[string]uint16{"string": c.String.Uint16()}
		case classfile.MemberRef:
			class, nat := c.Ref()
			jc.Refs = map[string]uint16{"class": class.Uint16(), "nameAndType": nat.Uint16()}
		case *classfile.ConstantNameAndTypeInfo:
			jc.Refs = map[string]uint16{"name": c.Name.Uint16(), "descriptor": c.Descriptor.Uint16()}
		case *classfile.ConstantMethodHandleInfo:
			jc.Kind = c.Kind.String()
			jc.Refs = map[string]uint16{"reference": c.Reference.Uint16()}
		case *classfile.ConstantMethodTypeInfo:
			jc.Refs = map[string]uint16{"descriptor": c.Descriptor.Uint16()}
		case *classfile.ConstantInvokeDynamicInfo:
			jc.Refs = map[string]uint16{"bootstrapMethodAttr": c.BootstrapMethodAttr, "nameAndType": c.NameAndType.Uint16()}
		default:
			return nil, fmt.Errorf("constant #%d: unsupported %s entry", pos+1, c.Tag())
		}
		result = append(result, jc)
	}
	return result, nil
}

// jsonFloat spells out the values JSON numbers cannot hold.
func jsonFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}
