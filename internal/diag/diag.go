// Package diag implements the per-handle diagnostic record list: an
// ordered list of (SQLSTATE, native error, message) retrievable by
// 1-based index, cleared on the next operation against the owning
// handle.
//
// It is grounded on alexbrainman/odbc's error.go (DiagRecord/Error), with
// the direction inverted: alexbrainman/odbc's NewError pulls records out of an
// ODBC driver via SQLGetDiagRec, while Furball's diag.List is the thing
// SQLGetDiagRec reads from, populated by this driver's own components.
package diag

import "github.com/copycatdb/furball/api"

// Record is one diagnostic entry.
type Record struct {
	State       api.SQLState
	NativeError int32
	Message     string
}

// List is an ordered, clearable collection of diagnostic records, owned by
// one Environment, Connection, or Statement handle. The zero value is an
// empty list.
type List struct {
	records []Record
}

// Clear drops all records. Called at the start of every operation that can
// itself produce diagnostics, the usual ODBC rule.
func (l *List) Clear() {
	l.records = l.records[:0]
}

// Push appends a record (used for both hard failures and warnings).
func (l *List) Push(state api.SQLState, native int32, message string) {
	l.records = append(l.records, Record{State: state, NativeError: native, Message: message})
}

// PushErr is a convenience wrapper for the common "one diagnostic record on
// failure" propagation policy: it clears the list first, then
// pushes a single record built from an SQLSTATE and an error.
func (l *List) PushErr(state api.SQLState, err error) {
	l.Clear()
	l.Push(state, 0, err.Error())
}

// Len reports how many records are queued.
func (l *List) Len() int {
	return len(l.records)
}

// At returns the 1-based indexed record. ok is false past the last record,
// which the ABI layer maps to SQL_NO_DATA.
func (l *List) At(i int) (Record, bool) {
	if i < 1 || i > len(l.records) {
		return Record{}, false
	}
	return l.records[i-1], true
}

// HasErrors reports whether any pushed record represents a hard failure
// rather than a success-with-info warning (anything outside the 01xxx
// class and "00000").
func (l *List) HasErrors() bool {
	for _, r := range l.records {
		if r.State != api.StateSuccess && r.State[:2] != "01" {
			return true
		}
	}
	return false
}
