// SQLGetDiagRec reads from the diag.List internal/diag attaches to
// every handle; it is grounded on alexbrainman/odbc's error.go NewError,
// which performs the same index-then-format walk against an ODBC
// driver's diagnostic records, just sourced from a live SQLGetDiagRec
// call into the driver underneath rather than a Go-side list.
package main

/*
#include "odbc.h"
*/
import "C"

import (
	"unsafe"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/diag"
	"github.com/copycatdb/furball/internal/handle"
)

//export SQLGetDiagRec
func SQLGetDiagRec(handleType C.SQLSMALLINT, h C.SQLHANDLE, recNumber C.SQLSMALLINT, sqlState *C.SQLCHAR, nativeError *C.SQLINTEGER, messageText *C.SQLCHAR, bufferLength C.SQLSMALLINT, textLengthOut *C.SQLSMALLINT) C.SQLRETURN {
	rec, ok := diagRecAt(handleType, h, recNumber)
	if !ok {
		return C.SQL_NO_DATA
	}
	if sqlState != nil {
		copyNarrow(sqlState, 6, string(rec.State))
	}
	if nativeError != nil {
		*nativeError = C.SQLINTEGER(rec.NativeError)
	}
	writeOutChar(messageText, bufferLength, textLengthOut, rec.Message)
	return C.SQL_SUCCESS
}

//export SQLGetDiagRecW
func SQLGetDiagRecW(handleType C.SQLSMALLINT, h C.SQLHANDLE, recNumber C.SQLSMALLINT, sqlState *C.SQLWCHAR, nativeError *C.SQLINTEGER, messageText *C.SQLWCHAR, bufferLength C.SQLSMALLINT, textLengthOut *C.SQLSMALLINT) C.SQLRETURN {
	rec, ok := diagRecAt(handleType, h, recNumber)
	if !ok {
		return C.SQL_NO_DATA
	}
	if sqlState != nil {
		writeOutWide(sqlState, 6, nil, string(rec.State))
	}
	if nativeError != nil {
		*nativeError = C.SQLINTEGER(rec.NativeError)
	}
	writeOutWide(messageText, bufferLength, textLengthOut, rec.Message)
	return C.SQL_SUCCESS
}

func diagRecAt(handleType C.SQLSMALLINT, h C.SQLHANDLE, recNumber C.SQLSMALLINT) (diag.Record, bool) {
	list, ok := diagListFor(api.HandleType(handleType), handle.ID(uintptr(unsafe.Pointer(h))))
	if !ok {
		return diag.Record{}, false
	}
	return list.At(int(recNumber))
}
