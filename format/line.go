package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/espresso/classfile"
	"github.com/dhamidi/espresso/resolve"
)

// LineEncoder writes one tab separated line per class, constant, member and
// attribute, with every index resolved.
type LineEncoder struct {
	w  io.Writer
	cf *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	c, err := resolve.FromClassFile(e.cf)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "class\t%s\t%s\t%s\t%d.%d\n",
		c.Name,
		orDash(c.SuperClass),
		flagsStr(c.AccessFlags),
		uint16(c.MajorVersion),
		c.MinorVersion,
	)

	for _, iface := range c.Interfaces {
		fmt.Fprintf(&sb, "interface\t%s\n", iface)
	}

	for i, k := range c.Constants {
		fmt.Fprintf(&sb, "constant\t#%d\t%s\t%s\n", i+1, k.Tag(), constantStr(k))
	}

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", f.Name, fieldTypeStr(f.Descriptor), flagsStr(f.AccessFlags))
		writeAttributes(&sb, f.Name, f.Attributes)
	}

	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\n", m.Name, methodTypeStr(m.Descriptor), flagsStr(m.AccessFlags))
		writeAttributes(&sb, m.Name, m.Attributes)
	}

	writeAttributes(&sb, c.Name, c.Attributes)

	return []byte(sb.String()), nil
}

func writeAttributes(sb *strings.Builder, owner string, attrs []resolve.Attribute) {
	for _, a := range attrs {
		fmt.Fprintf(sb, "attribute\t%s\t%s\t%d\n", owner, a.Name, len(a.Info))
	}
}

// constantStr quotes text constants so that tabs and newlines stay on one line.
func constantStr(k resolve.Constant) string {
	if s, ok := k.(resolve.Utf8); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return k.String()
}

func fieldTypeStr(desc string) string {
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil {
		return desc
	}
	return ft.String()
}

func methodTypeStr(desc string) string {
	md, err := classfile.ParseMethodDescriptor(desc)
	if err != nil {
		return desc
	}
	return md.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
