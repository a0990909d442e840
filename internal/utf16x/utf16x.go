// Package utf16x converts between UTF-8 and UTF-16, with surrogate pair
// handling, for this driver's narrow/wide ABI split.
//
// It is grounded on alexbrainman/odbc's api.UTF16ToString / StringToUTF16
// and its standalone utf16toutf8 helper, generalized to operate on plain
// byte buffers (the shape cmd/furball hands it after dereferencing a
// SQLWCHAR* C pointer) rather than on live C memory.
package utf16x

import (
	"unicode/utf16"
	"unicode/utf8"
)

const (
	replacementChar = '�'

	surr1 = 0xd800
	surr2 = 0xdc00
	surr3 = 0xe000
)

// Encode returns the UTF-16 code units of s, without a terminating NUL.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// EncodeNTS returns the UTF-16 code units of s with a terminating NUL
// appended, matching alexbrainman/odbc's StringToUTF16.
func EncodeNTS(s string) []uint16 {
	return utf16.Encode([]rune(s + "\x00"))
}

// Decode returns the UTF-8 string decoded from UTF-16 code units, honoring
// unpaired/invalid surrogates by substituting the Unicode replacement
// character rather than erroring, matching alexbrainman/odbc's utf16toutf8.
func Decode(s []uint16) string {
	buf := make([]byte, 0, len(s)*2)
	b := make([]byte, 4)
	for i := 0; i < len(s); i++ {
		var rr rune
		switch r := s[i]; {
		case surr1 <= r && r < surr2 && i+1 < len(s) &&
			surr2 <= s[i+1] && s[i+1] < surr3:
			rr = utf16.DecodeRune(rune(r), rune(s[i+1]))
			i++
		case surr1 <= r && r < surr3:
			rr = replacementChar
		default:
			rr = rune(r)
		}
		n := utf8.EncodeRune(b, rr)
		buf = append(buf, b[:n]...)
	}
	return string(buf)
}

// DecodeNTS decodes UTF-16 code units up to (but not including) the first
// NUL code unit, matching alexbrainman/odbc's UTF16ToString.
func DecodeNTS(s []uint16) string {
	for i, v := range s {
		if v == 0 {
			s = s[:i]
			break
		}
	}
	return Decode(s)
}

// BytesToUTF16 reinterprets a little-endian byte buffer (as handed across
// the C ABI from a SQLWCHAR*) as UTF-16 code units.
func BytesToUTF16(b []byte) []uint16 {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return u
}

// UTF16ToBytes reinterprets UTF-16 code units as a little-endian byte
// buffer, the inverse of BytesToUTF16.
func UTF16ToBytes(u []uint16) []byte {
	b := make([]byte, len(u)*2)
	for i, v := range u {
		b[2*i] = byte(v)
		b[2*i+1] = byte(v >> 8)
	}
	return b
}

// RuneLen returns the number of UTF-16 code units s would require, without
// a terminating NUL.
func RuneLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}
