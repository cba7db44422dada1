package classfile

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDescriptor = errors.New("invalid descriptor")

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

func (ft *FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

// MethodDescriptor has a nil ReturnType for void.
type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, n := parseFieldType(desc, 0)
	if ft == nil || n != len(desc) {
		return nil, fmt.Errorf("%w: field descriptor %q", ErrInvalidDescriptor, desc)
	}
	return ft, nil
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	bad := func() (*MethodDescriptor, error) {
		return nil, fmt.Errorf("%w: method descriptor %q", ErrInvalidDescriptor, desc)
	}
	if len(desc) == 0 || desc[0] != '(' {
		return bad()
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, consumed := parseFieldType(desc, i)
		if ft == nil {
			return bad()
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}
	if i >= len(desc) {
		return bad()
	}
	i++

	switch {
	case i == len(desc)-1 && desc[i] == 'V':
		return md, nil
	case i < len(desc):
		ft, consumed := parseFieldType(desc, i)
		if ft == nil || i+consumed != len(desc) {
			return bad()
		}
		md.ReturnType = ft
		return md, nil
	default:
		return bad()
	}
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

func parseFieldType(desc string, start int) (*FieldType, int) {
	ft := &FieldType{}
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil, 0
	}

	if name, ok := baseTypes[desc[i]]; ok {
		ft.BaseType = name
		return ft, i - start + 1
	}
	if desc[i] != 'L' {
		return nil, 0
	}
	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon <= 1 {
		return nil, 0
	}
	ft.ClassName = desc[i+1 : i+semicolon]
	return ft, i - start + semicolon + 1
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
