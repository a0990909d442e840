package convert

import "testing"

func TestToTimestampParsesFractionalSeconds(t *testing.T) {
	ts, err := ToTimestamp("2024-03-05 13:04:05.1234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Year != 2024 || ts.Month != 3 || ts.Day != 5 || ts.Hour != 13 || ts.Fraction == 0 {
		t.Fatalf("unexpected timestamp: %+v", ts)
	}
}

func TestToDateAndToTime(t *testing.T) {
	d, err := ToDate("2024-03-05")
	if err != nil || d.Year != 2024 || d.Month != 3 || d.Day != 5 {
		t.Fatalf("ToDate: %+v, %v", d, err)
	}
	tm, err := ToTime("13:04:05")
	if err != nil || tm.Hour != 13 || tm.Minute != 4 || tm.Second != 5 {
		t.Fatalf("ToTime: %+v, %v", tm, err)
	}
}

func TestToBool(t *testing.T) {
	if v, err := ToBool("1"); err != nil || !v {
		t.Fatalf("expected true, got %v, %v", v, err)
	}
	if v, err := ToBool("0"); err != nil || v {
		t.Fatalf("expected false, got %v, %v", v, err)
	}
	if _, err := ToBool("2"); err == nil {
		t.Fatal("expected an error for an invalid bit value")
	}
}

func TestGUIDRoundTrip(t *testing.T) {
	const text = "01234567-89ab-cdef-0123-456789abcdef"
	b, err := ToGUID(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := FormatGUID(b)
	if got != text {
		t.Fatalf("round trip mismatch: got %q, want %q", got, text)
	}
}

func TestWriteCharNarrowFitsExactly(t *testing.T) {
	dst := make([]byte, 6)
	ind, truncated := WriteChar(dst, "hello", false)
	if truncated || ind != 5 || string(dst[:5]) != "hello" || dst[5] != 0 {
		t.Fatalf("unexpected result: ind=%d truncated=%v dst=%v", ind, truncated, dst)
	}
}

func TestWriteCharNarrowTruncates(t *testing.T) {
	dst := make([]byte, 4)
	ind, truncated := WriteChar(dst, "hello", false)
	if !truncated || ind != 5 {
		t.Fatalf("expected truncation with full-length indicator 5, got ind=%d truncated=%v", ind, truncated)
	}
	if dst[3] != 0 {
		t.Fatalf("expected NUL terminator in last byte, got %v", dst)
	}
}

func TestWriteCharWideRoundTrips(t *testing.T) {
	dst := make([]byte, 32)
	ind, truncated := WriteChar(dst, "hi", true)
	if truncated || ind != 4 {
		t.Fatalf("unexpected result: ind=%d truncated=%v", ind, truncated)
	}
	if dst[0] != 'h' || dst[1] != 0 || dst[2] != 'i' || dst[3] != 0 {
		t.Fatalf("unexpected UTF-16LE encoding: %v", dst[:4])
	}
}

func TestWriteBinaryTruncates(t *testing.T) {
	dst := make([]byte, 2)
	ind, truncated := WriteBinary(dst, []byte{1, 2, 3, 4})
	if !truncated || ind != 4 {
		t.Fatalf("expected truncation with indicator 4, got ind=%d truncated=%v", ind, truncated)
	}
}

func TestFormatLiteralQuotesAndEscapes(t *testing.T) {
	if got := FormatLiteral(LiteralString, "it's", false, false); got != "'it''s'" {
		t.Fatalf("got %q", got)
	}
	if got := FormatLiteral(LiteralString, "wide", false, true); got != "N'wide'" {
		t.Fatalf("got %q", got)
	}
	if got := FormatLiteral(LiteralNumeric, "42", false, false); got != "42" {
		t.Fatalf("got %q", got)
	}
	if got := FormatLiteral(LiteralNumeric, "42", true, false); got != "NULL" {
		t.Fatalf("got %q", got)
	}
	if got := FormatLiteral(LiteralBinary, "deadbeef", false, false); got != "0xDEADBEEF" {
		t.Fatalf("got %q", got)
	}
}
