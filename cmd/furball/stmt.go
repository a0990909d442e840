package main

/*
#include "odbc.h"
*/
import "C"

import (
	"context"
	"encoding/hex"
	"unsafe"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/convert"
	"github.com/copycatdb/furball/internal/handle"
	"github.com/copycatdb/furball/internal/stmt"
)

func hexEncode(raw []byte) string {
	return hex.EncodeToString(raw)
}

//export SQLPrepare
func SQLPrepare(h C.SQLHSTMT, text *C.SQLCHAR, textLen C.SQLINTEGER) C.SQLRETURN {
	return prepare(h, cGoString(text, C.SQLSMALLINT(textLen)))
}

//export SQLPrepareW
func SQLPrepareW(h C.SQLHSTMT, text *C.SQLWCHAR, textLen C.SQLINTEGER) C.SQLRETURN {
	return prepare(h, wGoString(text, C.SQLSMALLINT(textLen)))
}

func prepare(h C.SQLHSTMT, sql string) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if err := s.Prepare(sql); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

//export SQLExecDirect
func SQLExecDirect(h C.SQLHSTMT, text *C.SQLCHAR, textLen C.SQLINTEGER) C.SQLRETURN {
	return execDirect(h, cGoString(text, C.SQLSMALLINT(textLen)))
}

//export SQLExecDirectW
func SQLExecDirectW(h C.SQLHSTMT, text *C.SQLWCHAR, textLen C.SQLINTEGER) C.SQLRETURN {
	return execDirect(h, wGoString(text, C.SQLSMALLINT(textLen)))
}

func execDirect(h C.SQLHSTMT, sql string) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	err := s.ExecDirect(context.Background(), sql)
	return execResult(err)
}

//export SQLExecute
func SQLExecute(h C.SQLHSTMT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	err := s.Execute(context.Background())
	return execResult(err)
}

func execResult(err error) C.SQLRETURN {
	if err == nil {
		return C.SQL_SUCCESS
	}
	// Only one sentinel ever flows out of Execute/ExecDirect/
	// ContinueAfterPutData: ErrNeedData. Anything else is a hard
	// failure already pushed to the statement's diag list.
	if isNeedData(err) {
		return C.SQL_NEED_DATA
	}
	return C.SQL_ERROR
}

func isNeedData(err error) bool {
	return err == stmt.ErrNeedData
}

//export SQLBindParameter
func SQLBindParameter(h C.SQLHSTMT, paramNumber C.SQLUSMALLINT, ioType C.SQLSMALLINT, valueType C.SQLSMALLINT, paramType C.SQLSMALLINT, columnSize C.SQLULEN, decimalDigits C.SQLSMALLINT, paramValue C.SQLPOINTER, bufferLength C.SQLLEN, strLenOrInd *C.SQLLEN) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	ordinal := int(paramNumber) - 1

	isNull := false
	ind := int64(0)
	if strLenOrInd != nil {
		ind = int64(*strLenOrInd)
		isNull = ind == int64(api.NULL_DATA)
	}
	isDAE := ind <= int64(api.DATA_AT_EXEC)

	kind := literalKindFor(api.SQLType(paramType))
	isWide := valueType == C.SQL_C_WCHAR

	var literal string
	if !isNull && !isDAE {
		raw := literalFromBuffer(kind, isWide, valueType, paramValue, bufferLength, ind)
		literal = convert.FormatLiteral(kind, raw, false, isWide)
	}

	if err := s.BindParam(ordinal, kind, isWide, literal, isNull, isDAE); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

// literalKindFor maps an application's declared SQL_* parameter type to
// the LiteralKind FormatLiteral needs to quote it correctly.
func literalKindFor(t api.SQLType) convert.LiteralKind {
	switch t {
	case api.BINARY, api.VARBINARY, api.LONGVARBINARY:
		return convert.LiteralBinary
	case api.TYPE_DATE, api.TYPE_TIME, api.TYPE_TIMESTAMP, api.SS_TIME2, api.SS_TIMESTAMPOFFSET:
		return convert.LiteralDateTime
	case api.GUID:
		return convert.LiteralGUID
	case api.INTEGER, api.SMALLINT, api.BIGINT, api.TINYINT, api.BIT, api.FLOAT, api.REAL, api.DOUBLE, api.NUMERIC, api.DECIMAL:
		return convert.LiteralNumeric
	default:
		return convert.LiteralString
	}
}

// literalFromBuffer reads the application's bound C buffer into the
// canonical text FormatLiteral expects. bufferLength/ind together give
// the value's length for character and binary data; numeric/date/guid
// buffers are read through their declared C type's fixed width.
func literalFromBuffer(kind convert.LiteralKind, isWide bool, cType C.SQLSMALLINT, p C.SQLPOINTER, bufferLength C.SQLLEN, ind int64) string {
	if p == nil {
		return ""
	}
	switch kind {
	case convert.LiteralBinary:
		n := ind
		if n < 0 {
			n = int64(bufferLength)
		}
		raw := unsafe.Slice((*byte)(p), int(n))
		return hexEncode(raw)
	default:
		if cType == C.SQL_C_WCHAR {
			return wGoString((*C.SQLWCHAR)(p), -3)
		}
		return cGoString((*C.SQLCHAR)(p), -3)
	}
}

//export SQLParamData
func SQLParamData(h C.SQLHSTMT, valuePtr *C.SQLPOINTER) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	ordinal, have := s.ParamData()
	if !have {
		return C.SQL_SUCCESS
	}
	if valuePtr != nil {
		*valuePtr = C.SQLPOINTER(unsafe.Pointer(uintptr(ordinal + 1)))
	}
	return C.SQL_NEED_DATA
}

//export SQLPutData
func SQLPutData(h C.SQLHSTMT, data C.SQLPOINTER, strLenOrInd C.SQLLEN) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	var chunk []byte
	if strLenOrInd > 0 {
		chunk = unsafe.Slice((*byte)(data), int(strLenOrInd))
	}
	if err := s.PutData(chunk); err != nil {
		return C.SQL_ERROR
	}
	if err := s.ContinueAfterPutData(context.Background()); err != nil {
		if isNeedData(err) {
			return C.SQL_NEED_DATA
		}
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

//export SQLFetch
func SQLFetch(h C.SQLHSTMT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if !s.Fetch() {
		return C.SQL_NO_DATA
	}
	return C.SQL_SUCCESS
}

//export SQLNumResultCols
func SQLNumResultCols(h C.SQLHSTMT, count *C.SQLSMALLINT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	*count = C.SQLSMALLINT(s.NumResultCols())
	return C.SQL_SUCCESS
}

//export SQLNumParams
func SQLNumParams(h C.SQLHSTMT, count *C.SQLSMALLINT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if count != nil {
		*count = C.SQLSMALLINT(s.NumParams())
	}
	return C.SQL_SUCCESS
}

//export SQLCancel
func SQLCancel(h C.SQLHSTMT) C.SQLRETURN {
	// This driver runs one statement to completion synchronously on
	// internal/async's worker before returning to the caller, so there
	// is never an in-flight execution for a second ABI thread to cancel.
	// SQLCancel is still a valid call against an idle statement handle.
	if _, ok := lookupStmt(h); !ok {
		return C.SQL_INVALID_HANDLE
	}
	return C.SQL_SUCCESS
}

//export SQLRowCount
func SQLRowCount(h C.SQLHSTMT, rowCount *C.SQLLEN) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	*rowCount = C.SQLLEN(s.RowCount())
	return C.SQL_SUCCESS
}

//export SQLDescribeCol
func SQLDescribeCol(h C.SQLHSTMT, colNum C.SQLUSMALLINT, nameBuf *C.SQLCHAR, nameBufLen C.SQLSMALLINT, nameLenOut *C.SQLSMALLINT, dataType *C.SQLSMALLINT, columnSize *C.SQLULEN, decimalDigits *C.SQLSMALLINT, nullable *C.SQLSMALLINT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	col, err := s.DescribeCol(int(colNum))
	if err != nil {
		return C.SQL_ERROR
	}
	writeOutChar(nameBuf, nameBufLen, nameLenOut, col.Name)
	if dataType != nil {
		*dataType = C.SQLSMALLINT(col.SQLType)
	}
	if columnSize != nil {
		*columnSize = C.SQLULEN(col.ColumnSize)
	}
	if decimalDigits != nil {
		*decimalDigits = C.SQLSMALLINT(col.Scale)
	}
	if nullable != nil {
		*nullable = C.SQLSMALLINT(col.Nullable)
	}
	return C.SQL_SUCCESS
}

//export SQLColAttribute
func SQLColAttribute(h C.SQLHSTMT, colNum C.SQLUSMALLINT, fieldID C.SQLUSMALLINT, charAttr C.SQLPOINTER, bufLen C.SQLSMALLINT, strLenOut *C.SQLSMALLINT, numAttr *C.SQLLEN) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	col, err := s.DescribeCol(int(colNum))
	if err != nil {
		return C.SQL_ERROR
	}
	switch api.ColAttrField(fieldID) {
	case api.DescName:
		writeOutChar((*C.SQLCHAR)(charAttr), bufLen, strLenOut, col.Name)
	case api.DescType:
		*numAttr = C.SQLLEN(col.SQLType)
	case api.DescLength:
		*numAttr = C.SQLLEN(col.ColumnSize)
	case api.DescPrecision:
		*numAttr = C.SQLLEN(col.Precision)
	case api.DescScale:
		*numAttr = C.SQLLEN(col.Scale)
	case api.DescNullable:
		*numAttr = C.SQLLEN(col.Nullable)
	default:
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

//export SQLGetData
func SQLGetData(h C.SQLHSTMT, colNum C.SQLUSMALLINT, targetType C.SQLSMALLINT, targetValue C.SQLPOINTER, bufferLength C.SQLLEN, strLenOrInd *C.SQLLEN) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	v, _, err := s.GetData(int(colNum))
	if err != nil {
		return C.SQL_ERROR
	}
	if v.Null {
		if strLenOrInd != nil {
			*strLenOrInd = C.SQLLEN(api.NULL_DATA)
		}
		return C.SQL_SUCCESS
	}

	wide := targetType == C.SQL_C_WCHAR
	var dst []byte
	if targetValue != nil && bufferLength > 0 {
		dst = unsafe.Slice((*byte)(targetValue), int(bufferLength))
	}

	var indicator int64
	var truncated bool
	if targetType == C.SQL_C_BINARY {
		indicator, truncated = convert.WriteBinary(dst, []byte(v.Text))
	} else {
		indicator, truncated = convert.WriteChar(dst, v.Text, wide)
	}
	if strLenOrInd != nil {
		*strLenOrInd = C.SQLLEN(indicator)
	}
	if truncated {
		return C.SQL_SUCCESS_WITH_INFO
	}
	return C.SQL_SUCCESS
}

//export SQLFreeStmt
func SQLFreeStmt(h C.SQLHSTMT, option C.SQLUSMALLINT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	switch option {
	case C.SQL_CLOSE:
		s.CloseCursor()
	case C.SQL_UNBIND:
		s.UnbindColumns()
	case C.SQL_RESET_PARAMS:
		s.ResetParams()
	case C.SQL_DROP:
		s.Close()
		registry.FreeStmt(handle.ID(uintptr(h)))
	}
	return C.SQL_SUCCESS
}

//export SQLCloseCursor
func SQLCloseCursor(h C.SQLHSTMT) C.SQLRETURN {
	s, ok := lookupStmt(h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	s.CloseCursor()
	return C.SQL_SUCCESS
}

//export SQLMoreResults
func SQLMoreResults(h C.SQLHSTMT) C.SQLRETURN {
	// Only the first result set a batch produces is ever materialized,
	// so there are never more results to move to.
	if _, ok := lookupStmt(h); !ok {
		return C.SQL_INVALID_HANDLE
	}
	return C.SQL_NO_DATA
}
