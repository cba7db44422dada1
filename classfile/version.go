package classfile

import (
	"fmt"

	"github.com/dhamidi/espresso/wire"
)

// MajorVersion is the raw major_version field. Values outside the named
// releases are kept as they are; Known reports whether a name exists.
type MajorVersion uint16

const (
	JDK1_1    MajorVersion = 45
	JDK1_2    MajorVersion = 46
	JDK1_3    MajorVersion = 47
	JDK1_4    MajorVersion = 48
	JavaSE5_0 MajorVersion = 49
	JavaSE6_0 MajorVersion = 50
	JavaSE7   MajorVersion = 51
	JavaSE8   MajorVersion = 52
	JavaSE9   MajorVersion = 53
	JavaSE10  MajorVersion = 54
	JavaSE11  MajorVersion = 55
	JavaSE12  MajorVersion = 56
	JavaSE13  MajorVersion = 57
	JavaSE14  MajorVersion = 58
	JavaSE15  MajorVersion = 59
	JavaSE16  MajorVersion = 60
	JavaSE17  MajorVersion = 61
	JavaSE18  MajorVersion = 62
	JavaSE19  MajorVersion = 63
	JavaSE20  MajorVersion = 64
	JavaSE21  MajorVersion = 65
	JavaSE22  MajorVersion = 66
	JavaSE23  MajorVersion = 67
	JavaSE24  MajorVersion = 68
	JavaSE25  MajorVersion = 69
)

var releaseNames = map[MajorVersion]string{
	JDK1_1:    "JDK 1.1",
	JDK1_2:    "JDK 1.2",
	JDK1_3:    "JDK 1.3",
	JDK1_4:    "JDK 1.4",
	JavaSE5_0: "Java SE 5.0",
	JavaSE6_0: "Java SE 6.0",
	JavaSE7:   "Java SE 7",
	JavaSE8:   "Java SE 8",
	JavaSE9:   "Java SE 9",
	JavaSE10:  "Java SE 10",
	JavaSE11:  "Java SE 11",
	JavaSE12:  "Java SE 12",
	JavaSE13:  "Java SE 13",
	JavaSE14:  "Java SE 14",
	JavaSE15:  "Java SE 15",
	JavaSE16:  "Java SE 16",
	JavaSE17:  "Java SE 17",
	JavaSE18:  "Java SE 18",
	JavaSE19:  "Java SE 19",
	JavaSE20:  "Java SE 20",
	JavaSE21:  "Java SE 21",
	JavaSE22:  "Java SE 22",
	JavaSE23:  "Java SE 23",
	JavaSE24:  "Java SE 24",
	JavaSE25:  "Java SE 25",
}

func (v MajorVersion) Known() bool {
	_, ok := releaseNames[v]
	return ok
}

// Release returns the release name, or "" for an unrecognized version.
func (v MajorVersion) Release() string {
	return releaseNames[v]
}

func (v MajorVersion) String() string {
	if name, ok := releaseNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Other(%d)", uint16(v))
}

func (v *MajorVersion) Decode(r *wire.Reader) error {
	raw, err := r.Uint16()
	if err != nil {
		return err
	}
	*v = MajorVersion(raw)
	return nil
}

func (v MajorVersion) Encode(w *wire.Writer) int {
	return w.PutUint16(uint16(v))
}
