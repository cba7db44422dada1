package classfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/espresso/wire"
	"github.com/google/go-cmp/cmp"
)

// minimalClass is magic, version 0/52, a pool holding only "A", and empty
// tables everywhere else.
var minimalClass = []byte{
	0xCA, 0xFE, 0xBA, 0xBE,
	0x00, 0x00,
	0x00, 0x34,
	0x00, 0x02,
	0x01, 0x00, 0x01, 'A',
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
}

const minimalPoolEnd = 14

func TestDecodeMinimal(t *testing.T) {
	cf, err := Decode(minimalClass)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	t.Run("header", func(t *testing.T) {
		if cf.Magic != Magic || !cf.HasMagic() {
			t.Errorf("Magic = %#x, want %#x", cf.Magic, Magic)
		}
		if cf.MinorVersion != 0 {
			t.Errorf("MinorVersion = %d, want 0", cf.MinorVersion)
		}
		if cf.MajorVersion != JavaSE8 {
			t.Errorf("MajorVersion = %v, want %v", cf.MajorVersion, JavaSE8)
		}
		if !cf.MajorVersion.Known() {
			t.Error("version 52 should be a known release")
		}
	})

	t.Run("constant pool", func(t *testing.T) {
		if cf.ConstantPool.Len() != 1 {
			t.Fatalf("pool length = %d, want 1", cf.ConstantPool.Len())
		}
		utf8, ok := cf.ConstantPool.At(0).(*ConstantUtf8Info)
		if !ok {
			t.Fatalf("position 0 = %T, want *ConstantUtf8Info", cf.ConstantPool.At(0))
		}
		if utf8.Value != "A" {
			t.Errorf("position 0 = %q, want %q", utf8.Value, "A")
		}
		s, err := cf.ConstantPool.Utf8(1)
		if err != nil || s != "A" {
			t.Errorf("Utf8(#1) = %q, %v; want \"A\", nil", s, err)
		}
	})

	t.Run("tables", func(t *testing.T) {
		if len(cf.Interfaces) != 0 || len(cf.Fields) != 0 || len(cf.Methods) != 0 || len(cf.Attributes) != 0 {
			t.Errorf("expected empty tables, got %d interfaces, %d fields, %d methods, %d attributes",
				len(cf.Interfaces), len(cf.Fields), len(cf.Methods), len(cf.Attributes))
		}
	})
}

func TestDecodeLongTakesOnePosition(t *testing.T) {
	data := []byte{
		0xCA, 0xFE, 0xBA, 0xBE,
		0x00, 0x00,
		0x00, 0x34,
		0x00, 0x03,
		0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07,
		0x01, 0x00, 0x01, 'A',
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
	}
	cf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := ConstantPool{
		&ConstantLongInfo{Value: 7},
		&ConstantUtf8Info{Value: "A"},
	}
	if diff := cmp.Diff(want, cf.ConstantPool); diff != "" {
		t.Errorf("pool (-want +got):\n%s", diff)
	}
	if cf.AccessFlags != 0 || cf.ThisClass != 0 || cf.SuperClass != 0 {
		t.Errorf("header after pool = %v, #%d, #%d; want zeros", cf.AccessFlags, cf.ThisClass, cf.SuperClass)
	}
	if again := mustMarshal(t, cf); !bytes.Equal(again, data) {
		t.Errorf("Marshal = % x, want % x", again, data)
	}
}

func TestDecodeTruncatedPool(t *testing.T) {
	cf, err := Decode(minimalClass[:minimalPoolEnd-1])
	if !errors.Is(err, wire.NotEnoughBytes) {
		t.Fatalf("err = %v, want NotEnoughBytes", err)
	}
	if cf != nil {
		t.Errorf("partial class file returned: %+v", cf)
	}
}

func TestAttributeInfoLengthPastInput(t *testing.T) {
	var a AttributeInfo
	err := a.Decode(wire.NewReader([]byte{0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x02}))
	if !errors.Is(err, wire.NotEnoughBytes) {
		t.Fatalf("err = %v, want NotEnoughBytes", err)
	}
	if a.NameIndex != 0 || a.Info != nil {
		t.Errorf("attribute assigned on failure: %+v", a)
	}
}

func TestDecodeEveryTruncation(t *testing.T) {
	data := mustMarshal(t, sampleClass())
	for n := 0; n < len(data); n++ {
		cf, err := Decode(data[:n])
		if !errors.Is(err, wire.NotEnoughBytes) {
			t.Fatalf("truncated to %d bytes: err = %v, want NotEnoughBytes", n, err)
		}
		if cf != nil {
			t.Fatalf("truncated to %d bytes: got a class file", n)
		}
	}
}

func TestDecodeUnknownMajorVersion(t *testing.T) {
	data := bytes.Clone(minimalClass)
	data[6], data[7] = 0x27, 0x0F // 9999

	cf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cf.MajorVersion != MajorVersion(9999) {
		t.Errorf("MajorVersion = %d, want 9999", cf.MajorVersion)
	}
	if cf.MajorVersion.Known() {
		t.Error("9999 should not be a known release")
	}
	if got := cf.MajorVersion.String(); got != "Other(9999)" {
		t.Errorf("String() = %q, want %q", got, "Other(9999)")
	}
}

func TestDecodeAccessFlagsDropUnknownBits(t *testing.T) {
	data := bytes.Clone(minimalClass)
	data[minimalPoolEnd], data[minimalPoolEnd+1] = 0xFF, 0xFF

	cf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
		AccVolatile | AccTransient | AccSynthetic | AccEnum
	if cf.AccessFlags != want {
		t.Errorf("AccessFlags = %#04x, want %#04x", uint16(cf.AccessFlags), uint16(want))
	}
}

func TestDecodeDanglingReferences(t *testing.T) {
	cf := sampleClass()
	cf.ThisClass = 200
	cf.Fields[0].NameIndex = 1 // points at the class entry, not Utf8

	decoded, err := Decode(mustMarshal(t, cf))
	if err != nil {
		t.Fatalf("dangling indices must not fail decoding: %v", err)
	}

	_, err = decoded.ClassName()
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ClassName err = %v, want ErrIndexOutOfRange", err)
	}
	if wire.KindOf(err) != 0 {
		t.Errorf("lookup error carries wire kind %v", wire.KindOf(err))
	}

	_, err = decoded.Fields[0].Name(decoded.ConstantPool)
	if !errors.Is(err, ErrWrongKind) {
		t.Errorf("field Name err = %v, want ErrWrongKind", err)
	}
}

func TestDecodeErrorContext(t *testing.T) {
	data := bytes.Clone(minimalClass)
	data[10] = 2 // tag 2 is unused

	_, err := Decode(data)
	if !errors.Is(err, wire.Malformed) {
		t.Fatalf("err = %v, want Malformed", err)
	}
	if got := err.Error(); got != "failed to read constant pool: entry 1: malformed at offset 10: unknown constant pool tag 2" {
		t.Errorf("err = %q", got)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data := append(bytes.Clone(minimalClass), 0xDE, 0xAD)
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	r := wire.NewReader(data)
	if _, err := DecodeFrom(r); err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if r.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", r.Remaining())
	}
}

func TestDecodeDoesNotCheckMagic(t *testing.T) {
	data := bytes.Clone(minimalClass)
	data[0] = 0
	cf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cf.HasMagic() {
		t.Error("HasMagic() = true for a zeroed first byte")
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleClass()
	data := mustMarshal(t, want)

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded class differs (-want +got):\n%s", diff)
	}

	again := mustMarshal(t, got)
	if !bytes.Equal(data, again) {
		t.Error("re-encoding the decoded class changed its bytes")
	}
}

func TestParseClassFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sample.class")
	if err := os.WriteFile(path, mustMarshal(t, sampleClass()), 0o644); err != nil {
		t.Fatal(err)
	}

	cf, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	t.Run("class name", func(t *testing.T) {
		name, err := cf.ClassName()
		if err != nil || name != "com/example/Sample" {
			t.Errorf("ClassName() = %q, %v; want %q", name, err, "com/example/Sample")
		}
	})

	t.Run("super class", func(t *testing.T) {
		name, err := cf.SuperClassName()
		if err != nil || name != "java/lang/Object" {
			t.Errorf("SuperClassName() = %q, %v; want %q", name, err, "java/lang/Object")
		}
	})

	t.Run("interfaces", func(t *testing.T) {
		names, err := cf.InterfaceNames()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"java/lang/Runnable"}, names); diff != "" {
			t.Errorf("InterfaceNames() (-want +got):\n%s", diff)
		}
	})

	t.Run("fields", func(t *testing.T) {
		f, err := cf.Field("count")
		if err != nil || f == nil {
			t.Fatalf("Field(count) = %v, %v", f, err)
		}
		if !f.IsPrivate() || !f.IsStatic() {
			t.Errorf("count flags = %v, want private static", f.AccessFlags)
		}
		ft, err := f.ParsedDescriptor(cf.ConstantPool)
		if err != nil || ft.BaseType != "int" {
			t.Errorf("ParsedDescriptor = %+v, %v; want int", ft, err)
		}
		missing, err := cf.Field("missing")
		if err != nil || missing != nil {
			t.Errorf("Field(missing) = %v, %v; want nil, nil", missing, err)
		}
	})

	t.Run("methods", func(t *testing.T) {
		m, err := cf.Method("run", "()V")
		if err != nil || m == nil {
			t.Fatalf("Method(run) = %v, %v", m, err)
		}
		if !m.IsPublic() {
			t.Error("run should be public")
		}
		if m.IsConstructor(cf.ConstantPool) {
			t.Error("run is not a constructor")
		}
		code, err := m.Attribute(cf.ConstantPool, "Code")
		if err != nil || code == nil {
			t.Fatalf("Attribute(Code) = %v, %v", code, err)
		}
		if !bytes.Equal(code.Info, []byte{0x00, 0x01, 0x00, 0x01, 0xB1}) {
			t.Errorf("Code body = % x", code.Info)
		}
		if m, _ := cf.Method("run", "(I)V"); m != nil {
			t.Error("Method with a different descriptor should not match")
		}
		if ms, _ := cf.MethodsNamed("run"); len(ms) != 1 {
			t.Errorf("MethodsNamed(run) = %d methods, want 1", len(ms))
		}
	})

	t.Run("class attributes", func(t *testing.T) {
		sf, err := cf.Attribute("SourceFile")
		if err != nil || sf == nil {
			t.Fatalf("Attribute(SourceFile) = %v, %v", sf, err)
		}
		if !bytes.Equal(sf.Info, []byte{0x00, 0x0C}) {
			t.Errorf("SourceFile body = % x", sf.Info)
		}
	})
}

func TestParseReader(t *testing.T) {
	cf, err := Parse(bytes.NewReader(minimalClass))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.ConstantPool.Len() != 1 {
		t.Errorf("pool length = %d, want 1", cf.ConstantPool.Len())
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.class"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestMarshalTooManyInterfaces(t *testing.T) {
	cf := sampleClass()
	cf.Interfaces = make([]ClassIndex, 0x10000)
	_, err := Marshal(cf)
	if !errors.Is(err, wire.ValueTooLarge) {
		t.Errorf("err = %v, want ValueTooLarge", err)
	}
}

// sampleClass builds
//
//	public class com.example.Sample implements Runnable {
//	    private static int count;
//	    public void run() {}
//	}
//
// with a long constant among the single-position entries.
func sampleClass() *ClassFile {
	pool := ConstantPool{
		&ConstantClassInfo{Name: 2},                       // #1
		&ConstantUtf8Info{Value: "com/example/Sample"},    // #2
		&ConstantClassInfo{Name: 4},                       // #3
		&ConstantUtf8Info{Value: "java/lang/Object"},      // #4
		&ConstantClassInfo{Name: 6},                       // #5
		&ConstantUtf8Info{Value: "java/lang/Runnable"},    // #6
		&ConstantUtf8Info{Value: "count"},                 // #7
		&ConstantUtf8Info{Value: "I"},                     // #8
		&ConstantUtf8Info{Value: "run"},                   // #9
		&ConstantUtf8Info{Value: "()V"},                   // #10
		&ConstantUtf8Info{Value: "Code"},                  // #11
		&ConstantUtf8Info{Value: "Sample.java"},           // #12
		&ConstantUtf8Info{Value: "SourceFile"},            // #13
		&ConstantLongInfo{Value: 1 << 40},                 // #14
		&ConstantNameAndTypeInfo{Name: 9, Descriptor: 10}, // #15
		&ConstantMethodrefInfo{Class: 5, NameAndType: 15}, // #16
	}
	return &ClassFile{
		Magic:        Magic,
		MinorVersion: 0,
		MajorVersion: JavaSE17,
		ConstantPool: pool,
		AccessFlags:  AccPublic,
		ThisClass:    1,
		SuperClass:   3,
		Interfaces:   []ClassIndex{5},
		Fields: []FieldInfo{
			{AccessFlags: AccPrivate | AccStatic, NameIndex: 7, DescriptorIndex: 8, Attributes: []AttributeInfo{}},
		},
		Methods: []MethodInfo{
			{
				AccessFlags:     AccPublic,
				NameIndex:       9,
				DescriptorIndex: 10,
				Attributes: []AttributeInfo{
					{NameIndex: 11, Info: []byte{0x00, 0x01, 0x00, 0x01, 0xB1}},
				},
			},
		},
		Attributes: []AttributeInfo{
			{NameIndex: 13, Info: []byte{0x00, 0x0C}},
		},
	}
}

func mustMarshal(t *testing.T, cf *ClassFile) []byte {
	t.Helper()
	data, err := Marshal(cf)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}
