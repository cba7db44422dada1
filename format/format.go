package format

import (
	"encoding"
	"strings"

	"github.com/dhamidi/espresso/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

// flagsStr joins flag names with commas, or "-" when none are set.
func flagsStr(f classfile.AccessFlags) string {
	names := f.Names()
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
