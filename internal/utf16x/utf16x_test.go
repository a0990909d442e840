package utf16x

import "testing"

func TestRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "你好", "a\U0001F600b"}
	for _, s := range cases {
		enc := Encode(s)
		got := Decode(enc)
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestDecodeNTSStopsAtNull(t *testing.T) {
	u := append(Encode("hi"), 0, 'x')
	if got := DecodeNTS(u); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestUnpairedSurrogateReplaced(t *testing.T) {
	u := []uint16{0xD800, 'x'}
	got := Decode(u)
	if len([]rune(got)) != 2 {
		t.Errorf("expected 2 runes, got %d (%q)", len([]rune(got)), got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	s := "你好world"
	u := Encode(s)
	b := UTF16ToBytes(u)
	back := BytesToUTF16(b)
	if Decode(back) != s {
		t.Errorf("byte round trip failed: got %q", Decode(back))
	}
}

func TestRuneLen(t *testing.T) {
	if RuneLen("abc") != 3 {
		t.Errorf("ascii len wrong")
	}
	if RuneLen("\U0001F600") != 2 {
		t.Errorf("surrogate pair should count as 2 code units")
	}
}
