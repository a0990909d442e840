package main

/*
#include "odbc.h"
*/
import "C"

import (
	"unsafe"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/driverinfo"
)

// SQLGetInfo dispatches to whichever of driverinfo's three typed
// answer functions reports ok=true for infoType — the C output shape
// (string, 32-bit, or 16-bit) follows from which one matches.
//export SQLGetInfo
func SQLGetInfo(dbc C.SQLHDBC, infoType C.SQLUSMALLINT, infoValue C.SQLPOINTER, bufferLength C.SQLSMALLINT, stringLengthOut *C.SQLSMALLINT) C.SQLRETURN {
	it := api.InfoType(infoType)

	ci := driverinfo.ConnInfo{}
	if c, ok := lookupConn(dbc); ok {
		ci.DatabaseName = c.DatabaseName()
		ci.DataSourceName = c.DataSourceName()
	}

	if s, ok := driverinfo.StringInfo(it, ci); ok {
		writeOutChar((*C.SQLCHAR)(infoValue), bufferLength, stringLengthOut, s)
		return C.SQL_SUCCESS
	}
	if n, ok := driverinfo.IntInfo(it); ok {
		if infoValue != nil {
			*(*int32)(unsafe.Pointer(infoValue)) = n
		}
		return C.SQL_SUCCESS
	}
	if n, ok := driverinfo.SmallIntInfo(it); ok {
		if infoValue != nil {
			*(*int16)(unsafe.Pointer(infoValue)) = n
		}
		return C.SQL_SUCCESS
	}
	return C.SQL_ERROR
}

//export SQLGetFunctions
func SQLGetFunctions(dbc C.SQLHDBC, functionID C.SQLUSMALLINT, supportedPtr *C.SQLUSMALLINT) C.SQLRETURN {
	if _, ok := lookupConn(dbc); !ok {
		return C.SQL_INVALID_HANDLE
	}
	if supportedPtr == nil {
		return C.SQL_ERROR
	}
	if driverinfo.IsSupported(int16(functionID)) {
		*supportedPtr = 1
	} else {
		*supportedPtr = 0
	}
	return C.SQL_SUCCESS
}
