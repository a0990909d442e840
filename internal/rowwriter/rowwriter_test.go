package rowwriter

import (
	"testing"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/tdsclient"
)

func TestOnlyFirstResultSetIsRetained(t *testing.T) {
	w := &Writer{}
	w.OnResultSet([]tdsclient.ColumnMeta{{Name: "id", Kind: tdsclient.KindI32}})
	w.OnRow(tdsclient.Row{Values: []tdsclient.Cell{{Kind: tdsclient.KindI32, Int: 1}}})

	w.OnResultSet([]tdsclient.ColumnMeta{{Name: "ignored", Kind: tdsclient.KindStr}})
	w.OnRow(tdsclient.Row{Values: []tdsclient.Cell{{Kind: tdsclient.KindStr, Str: "dropped"}}})

	if w.Table.NumCols() != 1 || w.Table.Columns[0].Name != "id" {
		t.Fatalf("expected first result set's column to survive, got %+v", w.Table.Columns)
	}
	if w.Table.NumRows() != 1 {
		t.Fatalf("expected only the first result set's row, got %d rows", w.Table.NumRows())
	}
}

func TestNullCellProducesNullValueNotEmptyString(t *testing.T) {
	w := &Writer{}
	w.OnResultSet([]tdsclient.ColumnMeta{{Name: "name", Kind: tdsclient.KindStr}})
	w.OnRow(tdsclient.Row{Values: []tdsclient.Cell{{Null: true}}})

	row, ok := w.Table.RowAt(0)
	if !ok || !row[0].Null || row[0].Text != "" {
		t.Fatalf("expected a NULL value, got %+v", row)
	}
}

func TestNullableColumnFlagMapsToSQLNullable(t *testing.T) {
	w := &Writer{}
	w.OnResultSet([]tdsclient.ColumnMeta{{Name: "n", Kind: tdsclient.KindI32, Nullable: true}})
	if w.Table.Columns[0].Nullable != api.NULLABLE {
		t.Fatalf("expected NULLABLE, got %v", w.Table.Columns[0].Nullable)
	}
}

func TestOnDoneRecordsRowsAffected(t *testing.T) {
	w := &Writer{}
	w.OnDone(42)
	if w.RowsAffected != 42 {
		t.Fatalf("expected 42, got %d", w.RowsAffected)
	}
}
