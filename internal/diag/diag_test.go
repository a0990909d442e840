package diag

import (
	"errors"
	"testing"

	"github.com/copycatdb/furball/api"
)

func TestPushAndRetrieveByIndex(t *testing.T) {
	var l List
	l.Push(api.StateSyntaxError, 102, "syntax error near 'FROM'")
	l.Push(api.StateStringTruncated, 0, "string data right-truncated")

	r1, ok := l.At(1)
	if !ok || r1.State != api.StateSyntaxError {
		t.Fatalf("record 1: %+v ok=%v", r1, ok)
	}
	r2, ok := l.At(2)
	if !ok || r2.State != api.StateStringTruncated {
		t.Fatalf("record 2: %+v ok=%v", r2, ok)
	}
	if _, ok := l.At(3); ok {
		t.Fatal("index past the end should report NO_DATA (ok=false)")
	}
	if _, ok := l.At(0); ok {
		t.Fatal("index 0 is invalid (1-based)")
	}
}

func TestClearResetsList(t *testing.T) {
	var l List
	l.Push(api.StateGeneralError, 1, "boom")
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("expected empty list after Clear, got %d", l.Len())
	}
}

func TestPushErrClearsFirst(t *testing.T) {
	var l List
	l.Push(api.StateGeneralError, 1, "stale")
	l.PushErr(api.StateConnectionFailure, errors.New("dial tcp: timeout"))
	if l.Len() != 1 {
		t.Fatalf("expected PushErr to clear prior records, len=%d", l.Len())
	}
	r, _ := l.At(1)
	if r.State != api.StateConnectionFailure {
		t.Fatalf("wrong state: %v", r.State)
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	var l List
	l.Push(api.StateStringTruncated, 0, "warn")
	if l.HasErrors() {
		t.Fatal("a 01xxx warning should not count as an error")
	}
	l.Push(api.StateSyntaxError, 0, "bad")
	if !l.HasErrors() {
		t.Fatal("expected HasErrors to detect the 42000 record")
	}
}
