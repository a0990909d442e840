// Catalog function implementations (SQLTables, SQLColumns, ...) compile
// a query with internal/catalog and run it through the same
// ExecDirect/Fetch/GetData path any other statement uses — they back a
// Statement with a server query rather than answering it through a
// separate retrieval mechanism, and internal/catalog's package doc
// notes alexbrainman/odbc has no equivalent of its own:
// it forwards catalog calls straight through to the driver manager
// rather than answering them itself. SQLGetTypeInfo is the one
// exception: its answer is a fixed table known without ever touching
// the server, so it loads a result set directly via Stmt.LoadTable
// instead of compiling a query.
package main

/*
#include "odbc.h"
*/
import "C"

import (
	"context"
	"strconv"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/catalog"
	"github.com/copycatdb/furball/internal/rowstore"
)

//export SQLTables
func SQLTables(h C.SQLHSTMT, catalogName *C.SQLCHAR, l1 C.SQLSMALLINT, schemaName *C.SQLCHAR, l2 C.SQLSMALLINT, tableName *C.SQLCHAR, l3 C.SQLSMALLINT, tableType *C.SQLCHAR, l4 C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.Tables(cGoString(schemaName, l2), cGoString(tableName, l3), cGoString(tableType, l4)))
}

//export SQLColumns
func SQLColumns(h C.SQLHSTMT, catalogName *C.SQLCHAR, l1 C.SQLSMALLINT, schemaName *C.SQLCHAR, l2 C.SQLSMALLINT, tableName *C.SQLCHAR, l3 C.SQLSMALLINT, columnName *C.SQLCHAR, l4 C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.Columns(cGoString(schemaName, l2), cGoString(tableName, l3), cGoString(columnName, l4)))
}

//export SQLPrimaryKeys
func SQLPrimaryKeys(h C.SQLHSTMT, catalogName *C.SQLCHAR, l1 C.SQLSMALLINT, schemaName *C.SQLCHAR, l2 C.SQLSMALLINT, tableName *C.SQLCHAR, l3 C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.PrimaryKeys(cGoString(schemaName, l2), cGoString(tableName, l3)))
}

//export SQLStatistics
func SQLStatistics(h C.SQLHSTMT, catalogName *C.SQLCHAR, l1 C.SQLSMALLINT, schemaName *C.SQLCHAR, l2 C.SQLSMALLINT, tableName *C.SQLCHAR, l3 C.SQLSMALLINT, unique C.SQLSMALLINT, reserved C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.Statistics(cGoString(schemaName, l2), cGoString(tableName, l3), unique == 0))
}

//export SQLForeignKeys
func SQLForeignKeys(h C.SQLHSTMT, pkCatalogName *C.SQLCHAR, pl1 C.SQLSMALLINT, pkSchemaName *C.SQLCHAR, pl2 C.SQLSMALLINT, pkTableName *C.SQLCHAR, pl3 C.SQLSMALLINT, fkCatalogName *C.SQLCHAR, fl1 C.SQLSMALLINT, fkSchemaName *C.SQLCHAR, fl2 C.SQLSMALLINT, fkTableName *C.SQLCHAR, fl3 C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.ForeignKeys(
		cGoString(pkSchemaName, pl2), cGoString(pkTableName, pl3),
		cGoString(fkSchemaName, fl2), cGoString(fkTableName, fl3),
	))
}

//export SQLSpecialColumns
func SQLSpecialColumns(h C.SQLHSTMT, identifierType C.SQLSMALLINT, catalogName *C.SQLCHAR, l1 C.SQLSMALLINT, schemaName *C.SQLCHAR, l2 C.SQLSMALLINT, tableName *C.SQLCHAR, l3 C.SQLSMALLINT, scope C.SQLSMALLINT, nullable C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.SpecialColumns(cGoString(schemaName, l2), cGoString(tableName, l3)))
}

//export SQLProcedures
func SQLProcedures(h C.SQLHSTMT, catalogName *C.SQLCHAR, l1 C.SQLSMALLINT, schemaName *C.SQLCHAR, l2 C.SQLSMALLINT, procName *C.SQLCHAR, l3 C.SQLSMALLINT) C.SQLRETURN {
	return runCatalogQuery(h, catalog.Procedures())
}

// typeInfoColumns are the 19 columns of the ODBC-standard SQLGetTypeInfo
// layout, in order. The five catalog.TypeInfoRow does not carry
// (MINIMUM_SCALE, MAXIMUM_SCALE, SQL_DATETIME_SUB, NUM_PREC_RADIX,
// INTERVAL_PRECISION) are always NULL.
var typeInfoColumns = []string{
	"TYPE_NAME", "DATA_TYPE", "COLUMN_SIZE", "LITERAL_PREFIX", "LITERAL_SUFFIX",
	"CREATE_PARAMS", "NULLABLE", "CASE_SENSITIVE", "SEARCHABLE", "UNSIGNED_ATTRIBUTE",
	"FIXED_PREC_SCALE", "AUTO_UNIQUE_VALUE", "LOCAL_TYPE_NAME", "MINIMUM_SCALE",
	"MAXIMUM_SCALE", "SQL_DATA_TYPE", "SQL_DATETIME_SUB", "NUM_PREC_RADIX",
	"INTERVAL_PRECISION",
}

//export SQLGetTypeInfo
func SQLGetTypeInfo(h C.SQLHSTMT, dataType C.SQLSMALLINT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	s.LoadTable(typeInfoTable(int16(dataType)))
	return C.SQL_SUCCESS
}

// typeInfoTable answers SQLGetTypeInfo entirely client-side:
// catalog.TypeInfoTable is a static description of SQL Server's type
// system, never queried from the server itself.
func typeInfoTable(dataType int16) rowstore.Table {
	cols := make([]rowstore.Column, len(typeInfoColumns))
	for i, name := range typeInfoColumns {
		cols[i] = rowstore.Column{Name: name, SQLType: api.VARCHAR, ColumnSize: 128, Nullable: api.NULLABLE}
	}

	var rows [][]rowstore.Value
	for _, row := range catalog.TypeInfoTable {
		if dataType != 0 && row.DataType != dataType {
			continue
		}
		rows = append(rows, []rowstore.Value{
			textValue(row.TypeName),
			intValue(int64(row.DataType)),
			intValue(int64(row.ColumnSize)),
			textValue(row.LiteralPrefix),
			textValue(row.LiteralSuffix),
			textValue(row.CreateParams),
			intValue(int64(row.Nullable)),
			intValue(int64(row.CaseSensitive)),
			intValue(int64(row.Searchable)),
			intValue(int64(row.UnsignedAttribute)),
			intValue(int64(row.FixedPrecScale)),
			intValue(int64(row.AutoUniqueValue)),
			textValue(row.LocalTypeName),
			{Null: true},
			{Null: true},
			intValue(int64(row.SQLDataType)),
			{Null: true},
			{Null: true},
			{Null: true},
		})
	}
	return rowstore.Table{Columns: cols, Rows: rows}
}

func textValue(s string) rowstore.Value {
	if s == "" {
		return rowstore.Value{Null: true}
	}
	return rowstore.Value{Text: s}
}

func intValue(n int64) rowstore.Value {
	return rowstore.Value{Text: strconv.FormatInt(n, 10)}
}

func runCatalogQuery(h C.SQLHSTMT, query string) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if err := s.ExecDirect(context.Background(), query); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}
