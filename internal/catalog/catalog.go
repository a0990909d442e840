// Package catalog generates the T-SQL text behind SQLTables, SQLColumns,
// SQLPrimaryKeys, SQLStatistics, SQLForeignKeys, SQLSpecialColumns, and
// SQLProcedures, each built against SQL Server's INFORMATION_SCHEMA or
// sys.* system views and shaped into the fixed ODBC-standard column
// layout every catalog function must return regardless of server.
// SQLGetTypeInfo is not a query: TypeInfoTable is its static answer.
//
// There is no direct precedent for this in alexbrainman/odbc — alexbrainman/odbc's catalog
// functions (Tables, Columns, and so on in conn_go18.go-adjacent files)
// delegate straight to the driver manager's own SQLTables/SQLColumns.
// This package is grounded on the textual-substitution discipline
// internal/sqltext and internal/convert already establish: catalog
// queries are built the same way internal/stmt assembles any other
// batch, with quote-escaped LIKE patterns treating an empty pattern
// argument as "match everything" rather than "match nothing".
package catalog

import (
	"fmt"
	"strings"
)

// pattern renders an optional catalog search pattern into a SQL LIKE
// clause fragment, or "1=1" when the pattern is empty: an omitted or
// empty search pattern argument matches every value.
func pattern(column, value string) string {
	if value == "" {
		return "1=1"
	}
	return fmt.Sprintf("%s LIKE '%s'", column, escapeLiteral(value))
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// sqlDataTypeCase renders a CASE expression that maps column's server type
// name (INFORMATION_SCHEMA.COLUMNS.DATA_TYPE, sys.types.name — both
// lowercase names like "varchar", "int") to the ODBC SQL type code
// SQLColumns/SQLSpecialColumns report in DATA_TYPE. It reuses
// TypeInfoTable, the same static name-to-code table SQLGetTypeInfo
// answers from, so the two stay consistent by construction.
func sqlDataTypeCase(column string) string {
	var b strings.Builder
	b.WriteString("CASE LOWER(")
	b.WriteString(column)
	b.WriteString(")")
	for _, t := range TypeInfoTable {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", t.TypeName, t.DataType)
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}

// Tables returns the query behind SQLTables: catalog is ignored (this
// driver only ever exposes the connection's current database), schema
// and table are LIKE patterns, tableTypes is a comma-separated list of
// literal type names ("TABLE", "VIEW") or empty for "all types".
func Tables(schema, table, tableTypes string) string {
	typeFilter := "1=1"
	if tableTypes != "" {
		var quoted []string
		for _, t := range strings.Split(tableTypes, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			quoted = append(quoted, fmt.Sprintf("'%s'", escapeLiteral(t)))
		}
		if len(quoted) > 0 {
			typeFilter = "t.TABLE_TYPE IN (" + strings.Join(quoted, ", ") + ")"
		}
	}
	return fmt.Sprintf(`SELECT
  NULL AS TABLE_CAT,
  t.TABLE_SCHEMA AS TABLE_SCHEM,
  t.TABLE_NAME AS TABLE_NAME,
  t.TABLE_TYPE AS TABLE_TYPE,
  CAST(NULL AS varchar(254)) AS REMARKS
FROM INFORMATION_SCHEMA.TABLES t
WHERE %s AND %s AND %s
ORDER BY t.TABLE_TYPE, t.TABLE_SCHEMA, t.TABLE_NAME`,
		pattern("t.TABLE_SCHEMA", schema), pattern("t.TABLE_NAME", table), typeFilter)
}

// Columns returns the query behind SQLColumns.
func Columns(schema, table, column string) string {
	return fmt.Sprintf(`SELECT
  NULL AS TABLE_CAT,
  c.TABLE_SCHEMA AS TABLE_SCHEM,
  c.TABLE_NAME AS TABLE_NAME,
  c.COLUMN_NAME AS COLUMN_NAME,
  %s AS DATA_TYPE,
  c.DATA_TYPE AS TYPE_NAME,
  c.CHARACTER_MAXIMUM_LENGTH AS COLUMN_SIZE,
  c.CHARACTER_MAXIMUM_LENGTH AS BUFFER_LENGTH,
  c.NUMERIC_SCALE AS DECIMAL_DIGITS,
  10 AS NUM_PREC_RADIX,
  CASE WHEN c.IS_NULLABLE = 'YES' THEN 1 ELSE 0 END AS NULLABLE,
  CAST(NULL AS varchar(254)) AS REMARKS,
  c.COLUMN_DEFAULT AS COLUMN_DEF,
  0 AS SQL_DATA_TYPE,
  0 AS SQL_DATETIME_SUB,
  c.CHARACTER_OCTET_LENGTH AS CHAR_OCTET_LENGTH,
  c.ORDINAL_POSITION AS ORDINAL_POSITION,
  CASE WHEN c.IS_NULLABLE = 'YES' THEN 'YES' ELSE 'NO' END AS IS_NULLABLE
FROM INFORMATION_SCHEMA.COLUMNS c
WHERE %s AND %s AND %s
ORDER BY c.TABLE_SCHEMA, c.TABLE_NAME, c.ORDINAL_POSITION`,
		sqlDataTypeCase("c.DATA_TYPE"),
		pattern("c.TABLE_SCHEMA", schema), pattern("c.TABLE_NAME", table), pattern("c.COLUMN_NAME", column))
}

// PrimaryKeys returns the query behind SQLPrimaryKeys (schema/table are
// exact matches, not LIKE patterns, per the ODBC spec for this function).
func PrimaryKeys(schema, table string) string {
	return fmt.Sprintf(`SELECT
  NULL AS TABLE_CAT,
  s.name AS TABLE_SCHEM,
  t.name AS TABLE_NAME,
  c.name AS COLUMN_NAME,
  ic.key_ordinal AS KEY_SEQ,
  kc.name AS PK_NAME
FROM sys.key_constraints kc
JOIN sys.tables t ON kc.parent_object_id = t.object_id
JOIN sys.schemas s ON t.schema_id = s.schema_id
JOIN sys.index_columns ic ON ic.object_id = t.object_id AND ic.index_id = kc.unique_index_id
JOIN sys.columns c ON c.object_id = t.object_id AND c.column_id = ic.column_id
WHERE kc.type = 'PK' AND s.name = '%s' AND t.name = '%s'
ORDER BY ic.key_ordinal`, escapeLiteral(schema), escapeLiteral(table))
}

// Statistics returns the query behind SQLStatistics (index/cardinality
// info; unique-only filters to PK/unique indexes).
func Statistics(schema, table string, uniqueOnly bool) string {
	uniqueFilter := ""
	if uniqueOnly {
		uniqueFilter = "AND i.is_unique = 1"
	}
	return fmt.Sprintf(`SELECT
  NULL AS TABLE_CAT,
  s.name AS TABLE_SCHEM,
  t.name AS TABLE_NAME,
  CASE WHEN i.is_unique = 1 THEN 0 ELSE 1 END AS NON_UNIQUE,
  NULL AS INDEX_QUALIFIER,
  i.name AS INDEX_NAME,
  3 AS TYPE,
  ic.key_ordinal AS ORDINAL_POSITION,
  c.name AS COLUMN_NAME,
  CASE WHEN ic.is_descending_key = 1 THEN 'D' ELSE 'A' END AS ASC_OR_DESC,
  NULL AS CARDINALITY,
  NULL AS PAGES,
  NULL AS FILTER_CONDITION
FROM sys.indexes i
JOIN sys.tables t ON i.object_id = t.object_id
JOIN sys.schemas s ON t.schema_id = s.schema_id
JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
JOIN sys.columns c ON c.object_id = t.object_id AND c.column_id = ic.column_id
WHERE i.type > 0 AND s.name = '%s' AND t.name = '%s' %s
ORDER BY i.name, ic.key_ordinal`, escapeLiteral(schema), escapeLiteral(table), uniqueFilter)
}

// ForeignKeys returns the query behind SQLForeignKeys, reporting the
// referenced-table side's update/delete actions via
// sys.foreign_keys.update_referential_action /
// delete_referential_action: FK actions are read from the server,
// never hardcoded.
func ForeignKeys(pkSchema, pkTable, fkSchema, fkTable string) string {
	return fmt.Sprintf(`SELECT
  NULL AS PKTABLE_CAT,
  ps.name AS PKTABLE_SCHEM,
  pt.name AS PKTABLE_NAME,
  pc.name AS PKCOLUMN_NAME,
  NULL AS FKTABLE_CAT,
  fs.name AS FKTABLE_SCHEM,
  ft.name AS FKTABLE_NAME,
  fc.name AS FKCOLUMN_NAME,
  fkc.constraint_column_id AS KEY_SEQ,
  fk.update_referential_action AS UPDATE_RULE,
  fk.delete_referential_action AS DELETE_RULE,
  fk.name AS FK_NAME,
  pk.name AS PK_NAME,
  7 AS DEFERRABILITY
FROM sys.foreign_keys fk
JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
JOIN sys.tables ft ON fk.parent_object_id = ft.object_id
JOIN sys.schemas fs ON ft.schema_id = fs.schema_id
JOIN sys.columns fc ON fc.object_id = ft.object_id AND fc.column_id = fkc.parent_column_id
JOIN sys.tables pt ON fk.referenced_object_id = pt.object_id
JOIN sys.schemas ps ON pt.schema_id = ps.schema_id
JOIN sys.columns pc ON pc.object_id = pt.object_id AND pc.column_id = fkc.referenced_column_id
JOIN sys.key_constraints pk ON pk.parent_object_id = pt.object_id AND pk.type = 'PK'
WHERE %s AND %s AND %s AND %s
ORDER BY fk.name, fkc.constraint_column_id`,
		eqOrTrue("ps.name", pkSchema), eqOrTrue("pt.name", pkTable),
		eqOrTrue("fs.name", fkSchema), eqOrTrue("ft.name", fkTable))
}

func eqOrTrue(column, value string) string {
	if value == "" {
		return "1=1"
	}
	return fmt.Sprintf("%s = '%s'", column, escapeLiteral(value))
}

// SpecialColumns returns the query behind SQLSpecialColumns with
// identifierType SQL_BEST_ROWID semantics: the primary key columns. A
// table without a primary key yields no rows; unique indexes are not
// consulted.
func SpecialColumns(schema, table string) string {
	return fmt.Sprintf(`SELECT
  2 AS SCOPE,
  c.name AS COLUMN_NAME,
  %s AS DATA_TYPE,
  ty.name AS TYPE_NAME,
  c.max_length AS COLUMN_SIZE,
  c.max_length AS BUFFER_LENGTH,
  c.scale AS DECIMAL_DIGITS,
  1 AS PSEUDO_COLUMN
FROM sys.indexes i
JOIN sys.tables t ON i.object_id = t.object_id
JOIN sys.schemas s ON t.schema_id = s.schema_id
JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
JOIN sys.columns c ON c.object_id = t.object_id AND c.column_id = ic.column_id
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
WHERE i.is_primary_key = 1 AND s.name = '%s' AND t.name = '%s'
ORDER BY ic.key_ordinal`, sqlDataTypeCase("ty.name"), escapeLiteral(schema), escapeLiteral(table))
}

// TypeInfoRow is one row of the static table SQLGetTypeInfo returns,
// never queried from the server — SQL Server's own type system is known
// statically. It carries 14 of the 19 ODBC-standard columns; the other
// five are reported as NULL.
type TypeInfoRow struct {
	TypeName          string
	DataType          int16
	ColumnSize        int
	LiteralPrefix     string
	LiteralSuffix     string
	CreateParams      string
	Nullable          int16
	CaseSensitive     int16
	Searchable        int16
	UnsignedAttribute int16
	FixedPrecScale    int16
	AutoUniqueValue   int16
	LocalTypeName     string
	SQLDataType       int16
}

// TypeInfoTable is the static answer to SQLGetTypeInfo(SQL_ALL_TYPES).
var TypeInfoTable = []TypeInfoRow{
	{TypeName: "bit", DataType: -7, ColumnSize: 1, Nullable: 1, Searchable: 2, SQLDataType: -7},
	{TypeName: "tinyint", DataType: -6, ColumnSize: 3, Nullable: 1, Searchable: 2, SQLDataType: -6},
	{TypeName: "smallint", DataType: 5, ColumnSize: 5, Nullable: 1, Searchable: 2, SQLDataType: 5},
	{TypeName: "int", DataType: 4, ColumnSize: 11, Nullable: 1, Searchable: 2, SQLDataType: 4},
	{TypeName: "bigint", DataType: -5, ColumnSize: 20, Nullable: 1, Searchable: 2, SQLDataType: -5},
	{TypeName: "real", DataType: 7, ColumnSize: 7, Nullable: 1, Searchable: 2, SQLDataType: 7},
	{TypeName: "float", DataType: 8, ColumnSize: 15, Nullable: 1, Searchable: 2, SQLDataType: 8},
	{TypeName: "decimal", DataType: 3, ColumnSize: 38, Nullable: 1, Searchable: 2, SQLDataType: 3, CreateParams: "precision,scale", FixedPrecScale: 1},
	{TypeName: "numeric", DataType: 2, ColumnSize: 38, Nullable: 1, Searchable: 2, SQLDataType: 2, CreateParams: "precision,scale", FixedPrecScale: 1},
	{TypeName: "char", DataType: 1, ColumnSize: 8000, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "length", Nullable: 1, CaseSensitive: 1, Searchable: 3, SQLDataType: 1},
	{TypeName: "varchar", DataType: 12, ColumnSize: 8000, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "length", Nullable: 1, CaseSensitive: 1, Searchable: 3, SQLDataType: 12},
	{TypeName: "text", DataType: -1, ColumnSize: 2147483647, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: 1, CaseSensitive: 1, Searchable: 3, SQLDataType: -1},
	{TypeName: "nchar", DataType: -8, ColumnSize: 4000, LiteralPrefix: "N'", LiteralSuffix: "'", CreateParams: "length", Nullable: 1, CaseSensitive: 1, Searchable: 3, SQLDataType: -8},
	{TypeName: "nvarchar", DataType: -9, ColumnSize: 4000, LiteralPrefix: "N'", LiteralSuffix: "'", CreateParams: "length", Nullable: 1, CaseSensitive: 1, Searchable: 3, SQLDataType: -9},
	{TypeName: "ntext", DataType: -10, ColumnSize: 1073741823, LiteralPrefix: "N'", LiteralSuffix: "'", Nullable: 1, CaseSensitive: 1, Searchable: 3, SQLDataType: -10},
	{TypeName: "binary", DataType: -2, ColumnSize: 8000, LiteralPrefix: "0x", CreateParams: "length", Nullable: 1, Searchable: 2, SQLDataType: -2},
	{TypeName: "varbinary", DataType: -3, ColumnSize: 8000, LiteralPrefix: "0x", CreateParams: "length", Nullable: 1, Searchable: 2, SQLDataType: -3},
	{TypeName: "image", DataType: -4, ColumnSize: 2147483647, LiteralPrefix: "0x", Nullable: 1, Searchable: 2, SQLDataType: -4},
	{TypeName: "date", DataType: 91, ColumnSize: 10, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: 1, Searchable: 2, SQLDataType: 91},
	{TypeName: "time", DataType: -154, ColumnSize: 16, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "scale", Nullable: 1, Searchable: 2, SQLDataType: -154},
	{TypeName: "datetime2", DataType: 93, ColumnSize: 27, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "scale", Nullable: 1, Searchable: 2, SQLDataType: 93},
	{TypeName: "datetimeoffset", DataType: -155, ColumnSize: 34, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "scale", Nullable: 1, Searchable: 2, SQLDataType: -155},
	{TypeName: "uniqueidentifier", DataType: -11, ColumnSize: 36, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: 1, Searchable: 2, SQLDataType: -11},
	{TypeName: "xml", DataType: -152, ColumnSize: 2147483647, LiteralPrefix: "N'", LiteralSuffix: "'", Nullable: 1, Searchable: 2, SQLDataType: -152},
}

// Procedures returns the query behind SQLProcedures. Stored-procedure
// execution is out of scope, but SQLProcedures must still exist and
// return a well-formed, permanently empty result set rather than an
// error.
func Procedures() string {
	return `SELECT
  CAST(NULL AS varchar(1)) AS PROCEDURE_CAT,
  CAST(NULL AS varchar(1)) AS PROCEDURE_SCHEM,
  CAST(NULL AS varchar(1)) AS PROCEDURE_NAME,
  CAST(NULL AS int) AS NUM_INPUT_PARAMS,
  CAST(NULL AS int) AS NUM_OUTPUT_PARAMS,
  CAST(NULL AS int) AS NUM_RESULT_SETS,
  CAST(NULL AS varchar(1)) AS REMARKS,
  CAST(NULL AS smallint) AS PROCEDURE_TYPE
WHERE 1 = 0`
}
