package rowstore

import (
	"testing"

	"github.com/copycatdb/furball/api"
)

func TestNilTableReportsEmpty(t *testing.T) {
	var tbl *Table
	if tbl.NumCols() != 0 || tbl.NumRows() != 0 {
		t.Fatal("nil table should report zero columns and rows")
	}
	if _, ok := tbl.ColumnAt(1); ok {
		t.Fatal("nil table should have no columns")
	}
}

func TestColumnAndRowIndexing(t *testing.T) {
	tbl := &Table{
		Columns: []Column{
			{Name: "id", SQLType: api.INTEGER},
			{Name: "name", SQLType: api.VARCHAR},
		},
		Rows: [][]Value{
			{{Text: "1"}, {Text: "alice"}},
			{{Null: true}, {Text: "bob"}},
		},
	}

	if tbl.NumCols() != 2 || tbl.NumRows() != 2 {
		t.Fatalf("unexpected shape: %d cols, %d rows", tbl.NumCols(), tbl.NumRows())
	}
	c, ok := tbl.ColumnAt(2)
	if !ok || c.Name != "name" {
		t.Fatalf("ColumnAt(2) = %+v, ok=%v", c, ok)
	}
	if _, ok := tbl.ColumnAt(0); ok {
		t.Fatal("index 0 is invalid (1-based)")
	}
	row, ok := tbl.RowAt(1)
	if !ok || !row[0].Null {
		t.Fatalf("expected row 1 col 0 to be NULL, got %+v", row)
	}
}
