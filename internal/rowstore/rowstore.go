// Package rowstore holds the column descriptors and materialized row data
// that back SQLNumResultCols, SQLDescribeCol, SQLColAttribute, and
// SQLGetData. A Statement executes a batch, hands
// every row the external TDS client streams at it to a rowstore.Table
// (via internal/rowwriter), and from then on answers fetch/retrieval
// calls purely out of that in-memory table — the network connection is
// not touched again until the next execution.
//
// It is grounded on alexbrainman/odbc's column.go: BaseColumn holds a
// name, a SQL type and a C type the same way Column does there, but the
// direction is inverted again as in internal/diag — alexbrainman/odbc's
// BindableColumn/VariableWidthColumn pull a value for one row out of a
// live ODBC statement handle, while rowstore.Table already holds every
// row the statement will ever have, because Furball is the one
// producing the data instead of consuming it from a driver underneath.
package rowstore

import "github.com/copycatdb/furball/api"

// Column describes one result-set column, the fields SQLDescribeCol and
// SQLColAttribute report.
type Column struct {
	Name       string
	SQLType    api.SQLType
	CType      api.CType
	ColumnSize int
	Precision  int16
	Scale      int16
	Nullable   api.Nullable
}

// Value is one cell. Null distinguishes SQL NULL from an empty string or
// zero-length binary value: NULL is never confused with an empty value.
// Text holds the value rendered to its canonical string
// form, the shape every GetData conversion in internal/convert starts
// from.
type Value struct {
	Null bool
	Text string
}

// Table is one result set: its column descriptors plus every row
// materialized so far. Only the first result set a batch produces is
// ever kept; a Statement that executes a second batch
// replaces Table wholesale rather than appending to it.
type Table struct {
	Columns []Column
	Rows    [][]Value
}

// NumCols reports SQLNumResultCols' answer: 0 for a statement that
// produced no result set (e.g. an INSERT), or a completed SELECT's
// column count.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnAt returns the 1-based indexed column descriptor.
func (t *Table) ColumnAt(idx int) (Column, bool) {
	if t == nil || idx < 1 || idx > len(t.Columns) {
		return Column{}, false
	}
	return t.Columns[idx-1], true
}

// RowAt returns the 0-based indexed materialized row.
func (t *Table) RowAt(i int) ([]Value, bool) {
	if t == nil || i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i], true
}

// NumRows reports how many rows were materialized.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
