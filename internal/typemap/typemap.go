// Package typemap holds the static translation tables this driver needs:
// the TDS client's reported column type maps to an exported SQL type
// code, each SQL type has a default C type and a default column size,
// and internal/rowwriter looks up both when it records a result set's
// column descriptors.
//
// It is grounded on alexbrainman/odbc's column.go, specifically the
// sqltype switch inside NewColumn that picks a C type and buffer shape per
// SQL type — generalized here from "pick a C buffer to bind"
// (alexbrainman/odbc's consumer-side concern) to "pick the default
// retrieval C type and the SQL type a server-reported wire type becomes"
// (this driver's provider-side concern).
package typemap

import "github.com/copycatdb/furball/api"

// TDSKind enumerates the value shapes the external TDS client's streaming
// callback surface reports: one constant per callback
// variant, independent of that client's own internal type system.
type TDSKind int

const (
	KindNull TDSKind = iota
	KindBool
	KindU8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindStr
	KindWStr
	KindBytes
	KindDate
	KindTime
	KindDateTime
	KindDateTimeOffset
	KindDecimal
	KindGUID
)

// SQLTypeFor maps a TDS column kind to the SQL type code exported through
// SQLDescribeCol / catalog DATA_TYPE columns: the "TDS column type → SQL
// type code" table.
func SQLTypeFor(kind TDSKind) api.SQLType {
	switch kind {
	case KindBool:
		return api.BIT
	case KindU8:
		return api.TINYINT
	case KindI16:
		return api.SMALLINT
	case KindI32:
		return api.INTEGER
	case KindI64:
		return api.BIGINT
	case KindF32:
		return api.REAL
	case KindF64:
		return api.DOUBLE
	case KindStr:
		return api.VARCHAR
	case KindWStr:
		return api.WVARCHAR
	case KindBytes:
		return api.VARBINARY
	case KindDate:
		return api.TYPE_DATE
	case KindTime:
		return api.SS_TIME2
	case KindDateTime:
		return api.TYPE_TIMESTAMP
	case KindDateTimeOffset:
		return api.SS_TIMESTAMPOFFSET
	case KindDecimal:
		return api.NUMERIC
	case KindGUID:
		return api.GUID
	default:
		return api.UNKNOWN_TYPE
	}
}

// DefaultCType returns the C type the Statement binds or converts to when
// the application asks for SQL_C_DEFAULT: the "SQL type → default C
// type" table.
func DefaultCType(sqlType api.SQLType) api.CType {
	switch sqlType {
	case api.BIT:
		return api.C_BIT
	case api.TINYINT, api.SMALLINT, api.INTEGER:
		return api.C_LONG
	case api.BIGINT:
		return api.C_SBIGINT
	case api.NUMERIC, api.DECIMAL, api.FLOAT, api.REAL, api.DOUBLE:
		return api.C_DOUBLE
	case api.TYPE_TIMESTAMP:
		return api.C_TYPE_TIMESTAMP
	case api.TYPE_DATE:
		return api.C_TYPE_DATE
	case api.TYPE_TIME, api.SS_TIME2:
		return api.C_TYPE_TIME
	case api.GUID:
		return api.C_GUID
	case api.CHAR, api.VARCHAR, api.LONGVARCHAR:
		return api.C_CHAR
	case api.WCHAR, api.WVARCHAR, api.WLONGVARCHAR, api.SS_XML:
		return api.C_WCHAR
	case api.BINARY, api.VARBINARY, api.LONGVARBINARY:
		return api.C_BINARY
	default:
		return api.C_CHAR
	}
}

// DefaultColumnSize returns the column size (SQL_DESC_LENGTH /
// SQLDescribeCol's columnSize output) used when the server did not report
// one explicitly: the "SQL type → default column size" table.
func DefaultColumnSize(sqlType api.SQLType) int {
	switch sqlType {
	case api.BIT:
		return 1
	case api.TINYINT:
		return 3
	case api.SMALLINT:
		return 5
	case api.INTEGER:
		return 11
	case api.BIGINT:
		return 20
	case api.REAL:
		return 7
	case api.FLOAT, api.DOUBLE:
		return 15
	case api.NUMERIC, api.DECIMAL:
		return 38
	case api.TYPE_DATE:
		return 10
	case api.TYPE_TIME, api.SS_TIME2:
		return 8
	case api.TYPE_TIMESTAMP:
		return 23
	case api.SS_TIMESTAMPOFFSET:
		return 34
	case api.GUID:
		return 36
	default:
		return 0
	}
}

// IsCharacter reports whether sqlType is a narrow or wide character type.
func IsCharacter(sqlType api.SQLType) bool {
	switch sqlType {
	case api.CHAR, api.VARCHAR, api.LONGVARCHAR,
		api.WCHAR, api.WVARCHAR, api.WLONGVARCHAR, api.SS_XML:
		return true
	default:
		return false
	}
}

// IsWide reports whether sqlType is the wide-character (UTF-16) variant of
// a character type.
func IsWide(sqlType api.SQLType) bool {
	switch sqlType {
	case api.WCHAR, api.WVARCHAR, api.WLONGVARCHAR, api.SS_XML:
		return true
	default:
		return false
	}
}
