// Package convert implements the typed GetData conversions and the
// parameter literal formatting this driver performs. Every value that
// flows in from the TDS client and out through SQLGetData (or in as a
// bound parameter and out as a substituted literal) passes through here
// exactly once.
//
// It is grounded on alexbrainman/odbc's column.go BaseColumn.Value,
// whose switch over a destination C type is the same dispatch this
// package's WriteChar/ToInt64/ToFloat64/ToTimestamp/ToGUID family performs
// — inverted, again, from "unpack a C buffer the ODBC driver already
// filled" to "format rowstore's canonical string form into what the
// application's C buffer should hold." GUID byte reordering follows the
// same Data1/Data2/Data3/Data4 mixed-endian layout alexbrainman/odbc's
// SQL_C_GUID case builds by hand, but parses and validates the text
// through github.com/google/uuid rather than re-deriving the parsing by
// hand.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/copycatdb/furball/internal/utf16x"
)

// Timestamp mirrors the ODBC SQL_TIMESTAMP_STRUCT layout.
type Timestamp struct {
	Year                       int16
	Month, Day                 int16
	Hour, Minute, Second       int16
	Fraction                   int32 // nanoseconds
}

// Date mirrors SQL_DATE_STRUCT.
type Date struct {
	Year       int16
	Month, Day int16
}

// Time mirrors SQL_TIME_STRUCT.
type Time struct {
	Hour, Minute, Second int16
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.9999999",
	"2006-01-02T15:04:05.9999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ToTimestamp parses rowstore's canonical datetime text into a
// SQL_TIMESTAMP_STRUCT.
func ToTimestamp(text string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return Timestamp{
				Year: int16(t.Year()), Month: int16(t.Month()), Day: int16(t.Day()),
				Hour: int16(t.Hour()), Minute: int16(t.Minute()), Second: int16(t.Second()),
				Fraction: int32(t.Nanosecond()),
			}, nil
		}
	}
	return Timestamp{}, errors.Errorf("convert: %q is not a recognized timestamp", text)
}

// ToDate parses rowstore's canonical date text ("2006-01-02") into a
// SQL_DATE_STRUCT.
func ToDate(text string) (Date, error) {
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		return Date{}, errors.Wrapf(err, "convert: parsing date %q", text)
	}
	return Date{Year: int16(t.Year()), Month: int16(t.Month()), Day: int16(t.Day())}, nil
}

var timeLayouts = []string{"15:04:05.9999999", "15:04:05"}

// ToTime parses rowstore's canonical time text into a SQL_TIME_STRUCT,
// truncating any fractional seconds (SQL_TIME_STRUCT has none; callers
// wanting fractional seconds bind SQL_SS_TIME2 instead, see ToTime2).
func ToTime(text string) (Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return Time{Hour: int16(t.Hour()), Minute: int16(t.Minute()), Second: int16(t.Second())}, nil
		}
	}
	return Time{}, errors.Errorf("convert: %q is not a recognized time", text)
}

// Time2 mirrors SQL Server's SQL_SS_TIME2_STRUCT, which keeps fractional
// seconds SQL_TIME_STRUCT drops.
type Time2 struct {
	Hour, Minute, Second int16
	Fraction             int32
}

// ToTime2 parses rowstore's canonical time text into a SQL_SS_TIME2_STRUCT.
func ToTime2(text string) (Time2, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return Time2{Hour: int16(t.Hour()), Minute: int16(t.Minute()), Second: int16(t.Second()), Fraction: int32(t.Nanosecond())}, nil
		}
	}
	return Time2{}, errors.Errorf("convert: %q is not a recognized time", text)
}

// ToInt64 parses an integer-typed column's canonical text.
func ToInt64(text string) (int64, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "convert: parsing integer %q", text)
	}
	return v, nil
}

// ToFloat64 parses a floating/numeric/decimal column's canonical text.
func ToFloat64(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "convert: parsing float %q", text)
	}
	return v, nil
}

// ToBool parses a bit column's canonical text ("0" or "1").
func ToBool(text string) (bool, error) {
	switch text {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, errors.Errorf("convert: %q is not a recognized bit value", text)
	}
}

// GUIDBytes is the 16-byte, mixed-endian-on-the-wire layout ODBC's
// SQLGUID / SQL_C_GUID expects: Data1 is little-endian, Data2 and Data3
// are little-endian, Data4 is eight bytes taken verbatim.
type GUIDBytes [16]byte

// ToGUID parses a GUID column's canonical text ("xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx")
// and reorders it into the byte layout the C ABI expects.
func ToGUID(text string) (GUIDBytes, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		return GUIDBytes{}, errors.Wrapf(err, "convert: parsing GUID %q", text)
	}
	raw := id // [16]byte in RFC 4122 big-endian order
	var out GUIDBytes
	// Data1: reverse 4 bytes.
	out[0], out[1], out[2], out[3] = raw[3], raw[2], raw[1], raw[0]
	// Data2: reverse 2 bytes.
	out[4], out[5] = raw[5], raw[4]
	// Data3: reverse 2 bytes.
	out[6], out[7] = raw[7], raw[6]
	// Data4: verbatim.
	copy(out[8:], raw[8:16])
	return out, nil
}

// FormatGUID renders GUIDBytes back to canonical text, used when a GUID
// is bound as an input parameter and must become a literal.
func FormatGUID(g GUIDBytes) string {
	var raw [16]byte
	raw[3], raw[2], raw[1], raw[0] = g[0], g[1], g[2], g[3]
	raw[5], raw[4] = g[4], g[5]
	raw[7], raw[6] = g[6], g[7]
	copy(raw[8:16], g[8:])
	id, _ := uuid.FromBytes(raw[:])
	return id.String()
}

// WriteChar copies text into dst, encoding it as UTF-16LE when wide is
// true, and reports the indicator value and whether the value was
// truncated. When dst is
// too short for the full value plus NUL terminator, as many bytes (narrow)
// or UTF-16 code units (wide) as fit are copied and the value is marked
// truncated; a multi-byte character or surrogate pair may be cut; dst is
// always NUL-terminated if its length allows for at least one byte (or
// two, for wide) of terminator.
func WriteChar(dst []byte, text string, wide bool) (indicator int64, truncated bool) {
	if !wide {
		full := []byte(text)
		indicator = int64(len(full))
		n := copy(dst, full)
		if n < len(full) {
			truncated = true
			// Reserve the last byte of dst for the NUL terminator.
			if len(dst) > 0 {
				n = copy(dst, full[:min(len(dst)-1, len(full))])
				dst[n] = 0
			}
			return indicator, truncated
		}
		if n < len(dst) {
			dst[n] = 0
		}
		return indicator, false
	}

	u := utf16x.Encode(text)
	fullBytes := len(u) * 2
	indicator = int64(fullBytes)
	if fullBytes+2 > len(dst) {
		truncated = true
		maxChars := max(0, (len(dst)-2)/2)
		u = u[:min(maxChars, len(u))]
	}
	for i, c := range u {
		dst[i*2] = byte(c)
		dst[i*2+1] = byte(c >> 8)
	}
	end := len(u) * 2
	if end+2 <= len(dst) {
		dst[end] = 0
		dst[end+1] = 0
	}
	return indicator, truncated
}

// WriteBinary copies raw into dst and reports truncation the same way
// WriteChar does, without any NUL-termination concern (binary data has
// no terminator).
func WriteBinary(dst []byte, raw []byte) (indicator int64, truncated bool) {
	indicator = int64(len(raw))
	n := copy(dst, raw)
	return indicator, n < len(raw)
}

// LiteralKind selects how FormatLiteral renders a parameter's text into
// a T-SQL literal.
type LiteralKind int

const (
	LiteralNumeric LiteralKind = iota // int, float, bit — written verbatim
	LiteralString                     // quoted, with doubled embedded quotes
	LiteralBinary                     // rendered as 0x<hex>
	LiteralDateTime                   // quoted, never N-prefixed
	LiteralGUID                       // quoted, never N-prefixed
)

// FormatLiteral renders a bound input parameter's value as the T-SQL
// literal internal/sqltext.Substitute writes in place of its "?"
//. isWide controls whether a LiteralString value gets an
// N'' prefix so the server treats it as nvarchar rather than varchar.
func FormatLiteral(kind LiteralKind, text string, isNull bool, isWide bool) string {
	if isNull {
		return "NULL"
	}
	switch kind {
	case LiteralNumeric:
		return text
	case LiteralBinary:
		return "0x" + strings.ToUpper(text)
	case LiteralDateTime, LiteralGUID:
		return quoteLiteral(text, false)
	default:
		return quoteLiteral(text, isWide)
	}
}

func quoteLiteral(text string, isWide bool) string {
	escaped := strings.ReplaceAll(text, "'", "''")
	if isWide {
		return fmt.Sprintf("N'%s'", escaped)
	}
	return fmt.Sprintf("'%s'", escaped)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
