package sqltext

import "testing"

func TestNumParamsIgnoresQuestionMarksInLiterals(t *testing.T) {
	cases := []struct {
		sql  string
		want int
	}{
		{"SELECT * FROM t WHERE a = ?", 1},
		{"SELECT '?' FROM t WHERE a = ?", 1},
		{"SELECT N'literal ?' FROM t WHERE a = ? AND b = ?", 2},
		{"SELECT [col?name] FROM t WHERE a = ?", 1},
		{"SELECT a FROM t -- comment with ?\nWHERE b = ?", 1},
		{"SELECT a FROM t /* comment ? */ WHERE b = ?", 1},
		{"INSERT INTO t VALUES (?, ?, ?)", 3},
		{"SELECT 1", 0},
	}
	for _, c := range cases {
		if got := NumParams(c.sql); got != c.want {
			t.Errorf("NumParams(%q) = %d, want %d", c.sql, got, c.want)
		}
	}
}

func TestSubstituteReplacesLeftToRight(t *testing.T) {
	got, err := Substitute("SELECT * FROM t WHERE a = ? AND b = ?", []string{"1", "'x'"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM t WHERE a = 1 AND b = 'x'"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubstitutePreservesLiteralQuestionMarks(t *testing.T) {
	got, err := Substitute("SELECT '?' AS literal, a FROM t WHERE a = ?", []string{"42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT '?' AS literal, a FROM t WHERE a = 42"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubstituteRejectsCountMismatch(t *testing.T) {
	if _, err := Substitute("SELECT ? , ?", []string{"1"}); err == nil {
		t.Fatal("expected a ParamCountError")
	}
}

func TestSubstituteHandlesEscapedQuoteInLiteral(t *testing.T) {
	got, err := Substitute("SELECT 'it''s ?' FROM t WHERE a = ?", []string{"7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT 'it''s ?' FROM t WHERE a = 7"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
