// Package rowwriter adapts the streaming callback surface
// internal/tdsclient.Handler defines onto a single internal/rowstore.Table:
// only the first result set a batch produces is
// retained; rows are converted to their canonical string form as they
// arrive, not re-read from the wire on a later GetData call.
//
// It is grounded on alexbrainman/odbc's column.go NewColumn type-dispatch (used
// here to pick a SQLType/CType/column size per reported kind via
// internal/typemap) and on the conversion-to-string shape alexbrainman/odbc's
// BindableColumn.Value methods settle on for each C type, adapted from
// "read one value out of an ODBC buffer" to "format one value the TDS
// client already decoded."
package rowwriter

import (
	"strconv"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/rowstore"
	"github.com/copycatdb/furball/internal/tdsclient"
	"github.com/copycatdb/furball/internal/typemap"
)

// Writer implements tdsclient.Handler, materializing exactly one result
// set into Table. Subsequent OnResultSet calls within the same batch
// (additional SELECTs later in the same textually-substituted command)
// are ignored once the first has been captured, and their rows are
// dropped without being appended — the rest of the batch still runs to
// completion on the server, only its output beyond the first set is
// discarded here.
type Writer struct {
	Table        rowstore.Table
	RowsAffected int64

	haveResultSet bool
	ignoring      bool
}

// OnResultSet implements tdsclient.Handler.
func (w *Writer) OnResultSet(cols []tdsclient.ColumnMeta) {
	if w.haveResultSet {
		w.ignoring = true
		return
	}
	w.haveResultSet = true
	w.ignoring = false
	w.Table.Columns = make([]rowstore.Column, len(cols))
	for i, c := range cols {
		kind := typemap.TDSKind(c.Kind)
		sqlType := typemap.SQLTypeFor(kind)
		size := c.Size
		if size == 0 {
			size = typemap.DefaultColumnSize(sqlType)
		}
		nullable := api.NO_NULLS
		if c.Nullable {
			nullable = api.NULLABLE
		}
		w.Table.Columns[i] = rowstore.Column{
			Name:       c.Name,
			SQLType:    sqlType,
			CType:      typemap.DefaultCType(sqlType),
			ColumnSize: size,
			Nullable:   nullable,
		}
	}
}

// OnRow implements tdsclient.Handler.
func (w *Writer) OnRow(row tdsclient.Row) {
	if w.ignoring {
		return
	}
	values := make([]rowstore.Value, len(row.Values))
	for i, cell := range row.Values {
		values[i] = cellToValue(cell)
	}
	w.Table.Rows = append(w.Table.Rows, values)
}

// OnDone implements tdsclient.Handler.
func (w *Writer) OnDone(rowsAffected int64) {
	w.RowsAffected = rowsAffected
}

func cellToValue(c tdsclient.Cell) rowstore.Value {
	if c.Null {
		return rowstore.Value{Null: true}
	}
	switch c.Kind {
	case tdsclient.KindBool:
		if c.Bool {
			return rowstore.Value{Text: "1"}
		}
		return rowstore.Value{Text: "0"}
	case tdsclient.KindU8, tdsclient.KindI16, tdsclient.KindI32, tdsclient.KindI64:
		return rowstore.Value{Text: strconv.FormatInt(c.Int, 10)}
	case tdsclient.KindF32, tdsclient.KindF64:
		return rowstore.Value{Text: strconv.FormatFloat(c.Float, 'g', -1, 64)}
	case tdsclient.KindStr:
		return rowstore.Value{Text: c.Str}
	case tdsclient.KindWStr:
		return rowstore.Value{Text: c.WStr}
	case tdsclient.KindBytes:
		return rowstore.Value{Text: string(c.Bytes)}
	default:
		// Date/Time/DateTime/DateTimeOffset/Decimal/GUID arrive pre-formatted
		// by the TDS client into their canonical textual form.
		return rowstore.Value{Text: c.Text}
	}
}
