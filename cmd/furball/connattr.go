package main

/*
#include "odbc.h"
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/copycatdb/furball/api"
)

//export SQLSetConnectAttr
func SQLSetConnectAttr(dbc C.SQLHDBC, attribute C.SQLINTEGER, value C.SQLPOINTER, stringLength C.SQLINTEGER) C.SQLRETURN {
	return setConnectAttr(dbc, attribute, value)
}

//export SQLSetConnectAttrW
func SQLSetConnectAttrW(dbc C.SQLHDBC, attribute C.SQLINTEGER, value C.SQLPOINTER, stringLength C.SQLINTEGER) C.SQLRETURN {
	// AttrAutocommit and the other attributes this driver tracks are all
	// integer-valued, never strings, so the narrow and wide entry points
	// read the same SQLPOINTER the same way; there is no SQLWCHAR buffer
	// to marshal here the way SQLPrepareW/SQLExecDirectW have to.
	return setConnectAttr(dbc, attribute, value)
}

func setConnectAttr(dbc C.SQLHDBC, attribute C.SQLINTEGER, value C.SQLPOINTER) C.SQLRETURN {
	c, ok := lookupConn(dbc)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	switch api.ConnAttr(attribute) {
	case api.AttrAutocommit:
		on := uintptr(value) == C.SQL_AUTOCOMMIT_ON
		if err := c.SetAutocommit(context.Background(), on); err != nil {
			return C.SQL_ERROR
		}
		return C.SQL_SUCCESS
	default:
		// Access mode, timeouts and isolation level are accepted but not
		// tracked — this driver only tracks autocommit and
		// connection-dead state.
		return C.SQL_SUCCESS
	}
}

//export SQLGetConnectAttr
func SQLGetConnectAttr(dbc C.SQLHDBC, attribute C.SQLINTEGER, value C.SQLPOINTER, bufferLength C.SQLINTEGER, stringLengthOut *C.SQLINTEGER) C.SQLRETURN {
	return getConnectAttr(dbc, attribute, value)
}

//export SQLGetConnectAttrW
func SQLGetConnectAttrW(dbc C.SQLHDBC, attribute C.SQLINTEGER, value C.SQLPOINTER, bufferLength C.SQLINTEGER, stringLengthOut *C.SQLINTEGER) C.SQLRETURN {
	// Same reasoning as SQLSetConnectAttrW: AttrAutocommit and
	// AttrConnectionDead are both plain integers, so the wide variant
	// answers identically to the narrow one.
	return getConnectAttr(dbc, attribute, value)
}

func getConnectAttr(dbc C.SQLHDBC, attribute C.SQLINTEGER, value C.SQLPOINTER) C.SQLRETURN {
	c, ok := lookupConn(dbc)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	switch api.ConnAttr(attribute) {
	case api.AttrAutocommit:
		v := C.SQL_AUTOCOMMIT_OFF
		if c.Autocommit() {
			v = C.SQL_AUTOCOMMIT_ON
		}
		if value != nil {
			*(*int32)(unsafe.Pointer(value)) = int32(v)
		}
		return C.SQL_SUCCESS
	case api.AttrConnectionDead:
		v := C.SQL_CD_FALSE
		if c.IsDead() {
			v = C.SQL_CD_TRUE
		}
		if value != nil {
			*(*int32)(unsafe.Pointer(value)) = int32(v)
		}
		return C.SQL_SUCCESS
	default:
		return C.SQL_ERROR
	}
}
