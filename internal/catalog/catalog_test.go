package catalog

import (
	"strings"
	"testing"
)

func TestPatternEmptyMatchesEverything(t *testing.T) {
	q := Tables("", "", "")
	if !strings.Contains(q, "1=1") {
		t.Fatalf("expected an empty pattern to compile to 1=1, got %s", q)
	}
}

func TestPatternEscapesQuotes(t *testing.T) {
	q := Columns("dbo", "o'reilly", "")
	if !strings.Contains(q, "o''reilly") {
		t.Fatalf("expected embedded quote to be escaped, got %s", q)
	}
}

func TestTablesFiltersByTypeList(t *testing.T) {
	q := Tables("dbo", "", "TABLE,VIEW")
	if !strings.Contains(q, "'TABLE'") || !strings.Contains(q, "'VIEW'") {
		t.Fatalf("expected both types quoted, got %s", q)
	}
}

func TestProceduresAlwaysEmpty(t *testing.T) {
	q := Procedures()
	if !strings.Contains(q, "WHERE 1 = 0") {
		t.Fatalf("expected SQLProcedures to compile to a permanently empty result, got %s", q)
	}
}

func TestColumnsMapsDataTypeThroughTypeInfoTable(t *testing.T) {
	q := Columns("dbo", "widgets", "")
	if !strings.Contains(q, "CASE LOWER(c.DATA_TYPE)") {
		t.Fatalf("expected DATA_TYPE to be computed from c.DATA_TYPE, got %s", q)
	}
	if !strings.Contains(q, "WHEN 'varchar' THEN 12") {
		t.Fatalf("expected varchar to map to ODBC code 12, got %s", q)
	}
	if strings.Contains(q, "0 AS DATA_TYPE") {
		t.Fatalf("DATA_TYPE must not be a hardcoded 0, got %s", q)
	}
}

func TestSpecialColumnsMapsDataTypeThroughTypeInfoTable(t *testing.T) {
	q := SpecialColumns("dbo", "widgets")
	if !strings.Contains(q, "CASE LOWER(ty.name)") {
		t.Fatalf("expected DATA_TYPE to be computed from ty.name, got %s", q)
	}
}

func TestTypeInfoTableCoversCommonTypes(t *testing.T) {
	names := map[string]bool{}
	for _, row := range TypeInfoTable {
		names[row.TypeName] = true
	}
	for _, want := range []string{"int", "varchar", "nvarchar", "datetime2", "uniqueidentifier"} {
		if !names[want] {
			t.Errorf("expected TypeInfoTable to include %q", want)
		}
	}
}
