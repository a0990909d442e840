// Package sqltext implements the minimal SQL tokenizer this driver
// needs: Furball does not send parameters to the server as true
// RPC parameters, it substitutes each "?" placeholder with a literal and
// sends the whole batch as text, so it must be able to tell a real
// placeholder apart from a "?" that happens to sit inside a string
// literal, a bracketed identifier, or a comment.
//
// There is no single file in alexbrainman/odbc this is grounded on — the ODBC
// driver's own api package never parses SQL text, it hands the string
// straight to the driver manager. This package is grounded instead on
// the general approach the example pack's SQL-adjacent repos take to
// lexing: a single forward scan with explicit per-construct state,
// mirroring how SimonWaldherr-tinySQL's own tokenizer walks its input
// one rune at a time rather than using a regexp pass.
package sqltext

import "strings"

// NumParams reports how many "?" placeholders appear in sql outside of
// any string literal, bracketed identifier, or comment.
func NumParams(sql string) int {
	n := 0
	scan(sql, func(r rune) {
		if r == '?' {
			n++
		}
	})
	return n
}

// Substitute replaces, left to right, every "?" placeholder outside a
// literal/identifier/comment with the corresponding entry of literals.
// len(literals) must equal NumParams(sql); a mismatch returns an error
// rather than silently truncating the parameter list.
func Substitute(sql string, literals []string) (string, error) {
	if want := NumParams(sql); want != len(literals) {
		return "", &ParamCountError{Want: want, Got: len(literals)}
	}
	return substituteCopy(sql, literals)
}

// ParamCountError reports a parameter-count mismatch between a prepared
// statement's placeholders and the values bound against it.
type ParamCountError struct {
	Want, Got int
}

func (e *ParamCountError) Error() string {
	return "sqltext: statement has a different placeholder count than bound values"
}

// substituteCopy performs the actual left-to-right copy-and-replace; kept
// separate from Substitute's validation step for clarity.
func substituteCopy(sql string, literals []string) (string, error) {
	var b strings.Builder
	b.Grow(len(sql))
	lit := 0
	runes := []rune(sql)
	n := len(runes)
	i := 0
	for i < n {
		r := runes[i]
		switch {
		case r == '\'':
			j := skipQuoted(runes, i, '\'')
			b.WriteString(string(runes[i:j]))
			i = j
		case r == 'N' && i+1 < n && runes[i+1] == '\'':
			j := skipQuoted(runes, i+1, '\'')
			b.WriteString(string(runes[i:j]))
			i = j
		case r == '[':
			j := skipBracketed(runes, i)
			b.WriteString(string(runes[i:j]))
			i = j
		case r == '-' && i+1 < n && runes[i+1] == '-':
			j := skipLineComment(runes, i)
			b.WriteString(string(runes[i:j]))
			i = j
		case r == '/' && i+1 < n && runes[i+1] == '*':
			j := skipBlockComment(runes, i)
			b.WriteString(string(runes[i:j]))
			i = j
		case r == '?':
			if lit >= len(literals) {
				return "", &ParamCountError{Want: NumParams(sql), Got: len(literals)}
			}
			b.WriteString(literals[lit])
			lit++
			i++
		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}

// scan walks sql once, invoking fn for every rune that is NOT inside a
// string literal, bracketed identifier, or comment.
func scan(sql string, fn func(r rune)) {
	runes := []rune(sql)
	n := len(runes)
	i := 0
	for i < n {
		r := runes[i]
		switch {
		case r == '\'':
			i = skipQuoted(runes, i, '\'')
		case r == 'N' && i+1 < n && runes[i+1] == '\'':
			i = skipQuoted(runes, i+1, '\'')
		case r == '[':
			i = skipBracketed(runes, i)
		case r == '-' && i+1 < n && runes[i+1] == '-':
			i = skipLineComment(runes, i)
		case r == '/' && i+1 < n && runes[i+1] == '*':
			i = skipBlockComment(runes, i)
		default:
			fn(r)
			i++
		}
	}
}

// skipQuoted returns the index just past the closing quote of a
// '...'-delimited literal that starts at runes[start] (start itself is
// the opening quote). A doubled quote ('') is an escaped quote, not a
// terminator, matching T-SQL string literal syntax.
func skipQuoted(runes []rune, start int, quote rune) int {
	n := len(runes)
	i := start + 1
	for i < n {
		if runes[i] == quote {
			if i+1 < n && runes[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return n
}

// skipBracketed returns the index just past the closing ']' of a
// [...]-delimited identifier starting at runes[start].
func skipBracketed(runes []rune, start int) int {
	n := len(runes)
	i := start + 1
	for i < n {
		if runes[i] == ']' {
			return i + 1
		}
		i++
	}
	return n
}

func skipLineComment(runes []rune, start int) int {
	n := len(runes)
	i := start
	for i < n && runes[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(runes []rune, start int) int {
	n := len(runes)
	i := start + 2
	for i+1 < n {
		if runes[i] == '*' && runes[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return n
}
