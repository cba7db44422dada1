package classfile

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var errInvalidModifiedUtf8 = errors.New("invalid modified UTF-8")

// decodeModifiedUtf8 decodes the class file flavour of UTF-8: U+0000 is the two
// byte form C0 80, and supplementary characters are stored as a surrogate pair
// of three byte sequences. No byte may be 0x00 or lie in 0xF0..0xFF. A lone
// surrogate decodes to U+FFFD.
func decodeModifiedUtf8(b []byte) (string, error) {
	out := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c == 0 || c >= 0xF0:
			return "", fmt.Errorf("%w: byte 0x%02x at %d", errInvalidModifiedUtf8, c, i)
		case c < 0x80:
			out = append(out, c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || !continuation(b[i+1]) {
				return "", fmt.Errorf("%w: truncated two byte sequence at %d", errInvalidModifiedUtf8, i)
			}
			out = utf8.AppendRune(out, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			r, ok := threeByte(b, i)
			if !ok {
				return "", fmt.Errorf("%w: truncated three byte sequence at %d", errInvalidModifiedUtf8, i)
			}
			i += 3
			if r >= 0xD800 && r <= 0xDBFF && i < len(b) && b[i] == 0xED {
				if low, ok := threeByte(b, i); ok && low >= 0xDC00 && low <= 0xDFFF {
					r = 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
					i += 3
				}
			}
			out = utf8.AppendRune(out, r)
		default:
			return "", fmt.Errorf("%w: unexpected continuation byte 0x%02x at %d", errInvalidModifiedUtf8, c, i)
		}
	}
	return string(out), nil
}

func continuation(c byte) bool {
	return c&0xC0 == 0x80
}

func threeByte(b []byte, i int) (rune, bool) {
	if i+2 >= len(b) || !continuation(b[i+1]) || !continuation(b[i+2]) {
		return 0, false
	}
	return rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), true
}

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			out = appendThreeByte(out, r)
		default:
			r -= 0x10000
			out = appendThreeByte(out, 0xD800+(r>>10))
			out = appendThreeByte(out, 0xDC00+(r&0x3FF))
		}
	}
	return out
}

func appendThreeByte(out []byte, r rune) []byte {
	return append(out, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
}
