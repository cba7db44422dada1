package classfile

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/espresso/wire"
	"github.com/tliron/commonlog"
)

func logger() commonlog.Logger {
	return commonlog.GetLogger("espresso.classfile")
}

func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	cf, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

// Parse reads rd to the end and decodes the result.
func Parse(rd io.Reader) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Decode(data)
}

// Decode decodes a complete class file. Bytes after the last attribute are
// ignored; use DecodeFrom to see how many were consumed.
func Decode(data []byte) (*ClassFile, error) {
	r := wire.NewReader(data)
	cf, err := DecodeFrom(r)
	if err != nil {
		return nil, err
	}
	if rest := r.Remaining(); rest > 0 {
		logger().Debugf("ignoring %d trailing bytes after class file", rest)
	}
	return cf, nil
}

func DecodeFrom(r *wire.Reader) (*ClassFile, error) {
	start := r.Offset()
	cf, err := wire.Read[ClassFile](r)
	if err != nil {
		logger().Debugf("class file decode failed: %s", err)
		return nil, err
	}
	if !cf.HasMagic() {
		logger().Warningf("unexpected magic number 0x%08X", cf.Magic)
	}
	logger().Debugf("decoded class file (%s, %d bytes): %d constants, %d fields, %d methods, %d attributes",
		cf.MajorVersion, r.Offset()-start, len(cf.ConstantPool), len(cf.Fields), len(cf.Methods), len(cf.Attributes))
	return &cf, nil
}

// Marshal encodes cf. It fails only when a table is too long for its count.
func Marshal(cf *ClassFile) ([]byte, error) {
	w := wire.NewWriter()
	cf.Encode(w)
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
