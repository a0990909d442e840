// Package driverinfo answers SQLGetInfo and SQLGetFunctions, the two
// capability-discovery calls a driver implements. Most
// answers are static constants this driver always reports the same way;
// a handful (DBMS version, database name, data source name) come from the
// ConnInfo the caller passes. cmd/furball fills in the database name and
// data source name only, so the DBMS version is reported empty.
//
// There is no direct precedent for this in alexbrainman/odbc — alexbrainman/odbc
// never answers SQLGetInfo, it only calls it against whatever driver is
// loaded underneath. It is grounded instead on SimonWaldherr-tinySQL's
// odbc.go SQLGetInfo, which is a provider-side implementation of the
// same call: a switch over InfoType returning a fixed string or integer
// per case, generalized here into a table driven by api.InfoType instead
// of an inline switch so every answer has one place to change.
package driverinfo

import "github.com/copycatdb/furball/api"

const (
	DriverName = "FURBALL"
	// DriverVersion matches the form "MM.mm.bbbb" ODBC drivers conventionally report.
	DriverVersion = "01.00.0000"
	DBMSName      = "Microsoft SQL Server"
)

// ConnInfo is the subset of connection state SQLGetInfo needs that
// cannot be answered statically.
type ConnInfo struct {
	DatabaseName string
	DataSourceName string
	DBMSVersion  string
}

// StringInfo answers a SQLGetInfo call whose return type is a string,
// given the currently-connected ConnInfo (may be zero-valued if no
// connection is established; ODBC permits several InfoTypes to be
// queried on an unconnected handle).
func StringInfo(infoType api.InfoType, conn ConnInfo) (string, bool) {
	switch infoType {
	case api.InfoDriverName:
		return DriverName, true
	case api.InfoDriverVer:
		return DriverVersion, true
	case api.InfoDBMSName:
		return DBMSName, true
	case api.InfoDBMSVer:
		return conn.DBMSVersion, true
	case api.InfoDatabaseName:
		return conn.DatabaseName, true
	case api.InfoDataSourceName:
		return conn.DataSourceName, true
	case api.InfoIdentifierQuoteChar:
		return "\"", true
	case api.InfoCatalogNameSeparator:
		return ".", true
	case api.InfoCatalogTerm:
		return "database", true
	case api.InfoSchemaTerm:
		return "schema", true
	case api.InfoTableTerm:
		return "table", true
	case api.InfoSearchPatternEscape:
		return "\\", true
	default:
		return "", false
	}
}

// IntInfo answers a SQLGetInfo call whose return type is a 32-bit
// integer bitmask/value.
func IntInfo(infoType api.InfoType) (int32, bool) {
	switch infoType {
	case api.InfoGetDataExtensions:
		// SQL_GD_ANY_COLUMN | SQL_GD_ANY_ORDER, the two extension bits this
		// driver's forward-only, first-result-set-only GetData supports.
		return 0x00000001 | 0x00000002, true
	default:
		return 0, false
	}
}

// SmallIntInfo answers a SQLGetInfo call whose return type is a 16-bit value.
func SmallIntInfo(infoType api.InfoType) (int16, bool) {
	switch infoType {
	case api.InfoTxnCapable:
		return api.TxnCapableAll, true
	case api.InfoDefaultTxnIsolation:
		return 2, true // READ COMMITTED
	case api.InfoMaxIdentifierLen:
		return 128, true
	case api.InfoAccessibleTables:
		return 0, true // "N": this driver never restricts by permission locally
	default:
		return 0, false
	}
}

// Function is one ODBC function this driver exports, used to answer
// SQLGetFunctions' per-function support bitmap. The
// numeric codes match the ODBC header's SQL_API_* constants.
type Function struct {
	Code      int16
	Supported bool
}

// SupportedFunctions lists every function code this driver implements,
// each marked supported — this driver never
// half-implements an exported entry point.
var SupportedFunctions = []Function{
	{Code: 1, Supported: true},  // SQL_API_SQLCOLATTRIBUTE
	{Code: 2, Supported: true},  // SQL_API_SQLCANCEL
	{Code: 3, Supported: true},  // SQL_API_SQLCONNECT
	{Code: 4, Supported: true},  // SQL_API_SQLDESCRIBECOL
	{Code: 5, Supported: true},  // SQL_API_SQLDISCONNECT
	{Code: 6, Supported: true},  // SQL_API_SQLEXECDIRECT
	{Code: 7, Supported: true},  // SQL_API_SQLEXECUTE
	{Code: 8, Supported: true},  // SQL_API_SQLFETCH
	{Code: 9, Supported: true},  // SQL_API_SQLFREESTMT
	{Code: 10, Supported: true}, // SQL_API_SQLGETCURSORNAME (reports empty)
	{Code: 11, Supported: true}, // SQL_API_SQLNUMRESULTCOLS
	{Code: 12, Supported: true}, // SQL_API_SQLPREPARE
	{Code: 13, Supported: true}, // SQL_API_SQLROWCOUNT
	{Code: 14, Supported: true}, // SQL_API_SQLSETCURSORNAME
	{Code: 15, Supported: true}, // SQL_API_SQLBINDPARAMETER
	{Code: 16, Supported: true}, // SQL_API_SQLGETDATA
	{Code: 17, Supported: true}, // SQL_API_SQLPARAMDATA
	{Code: 18, Supported: true}, // SQL_API_SQLPUTDATA
	{Code: 19, Supported: true}, // SQL_API_SQLMORERESULTS
	{Code: 20, Supported: true}, // SQL_API_SQLCLOSECURSOR
	{Code: 21, Supported: true}, // SQL_API_SQLGETTYPEINFO
	{Code: 22, Supported: true}, // SQL_API_SQLTABLES
	{Code: 23, Supported: true}, // SQL_API_SQLCOLUMNS
	{Code: 24, Supported: true}, // SQL_API_SQLSTATISTICS
	{Code: 25, Supported: true}, // SQL_API_SQLPRIMARYKEYS
	{Code: 26, Supported: true}, // SQL_API_SQLFOREIGNKEYS
	{Code: 27, Supported: true}, // SQL_API_SQLSPECIALCOLUMNS
	{Code: 28, Supported: true}, // SQL_API_SQLPROCEDURES (always empty result set)
	{Code: 40, Supported: true}, // SQL_API_SQLNUMPARAMS
}

// IsSupported reports whether functionID (an ODBC SQL_API_* code) is
// one of SupportedFunctions. Anything not in the table is unsupported,
// the conservative default SQLGetFunctions callers expect.
func IsSupported(functionID int16) bool {
	for _, f := range SupportedFunctions {
		if f.Code == functionID {
			return f.Supported
		}
	}
	return false
}
