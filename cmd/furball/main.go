// Command furball is the driver's C ABI entry point: a cgo
// buildmode=c-shared library a driver manager (unixODBC, iODBC, the
// Windows Driver Manager) loads and calls through the standard ODBC
// function table.
//
// Build as a shared library:
//
//	go build -buildmode=c-shared -o libfurball.so ./cmd/furball
//
// Register it with unixODBC the same way alexbrainman/odbc documents its unixODBC registration:
//
//	[Furball]
//	Description = Furball ODBC Driver for SQL Server
//	Driver      = /path/to/libfurball.so
//
// This file and its siblings in this package are grounded on
// SimonWaldherr-tinySQL's odbc/odbc.go, the pack's only complete cgo
// c-shared ODBC driver: the C preamble's typedefs/constants are the
// same ODBC ABI vocabulary, and the handle-table-plus-thin-wrapper
// shape carries over directly. Two things are deliberately NOT carried
// over from that file: it keeps its own package-level envMap/connMap/
// stmtMap instead of a registry type (internal/handle replaces that),
// and none of its exported-looking functions actually carry a
// "//export" comment, so a real cgo build would never generate C
// symbols for them — every function below carries one.
package main

/*
#include "odbc.h"
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/conn"
	"github.com/copycatdb/furball/internal/diag"
	"github.com/copycatdb/furball/internal/handle"
	"github.com/copycatdb/furball/internal/mssqlclient"
	"github.com/copycatdb/furball/internal/stmt"
)

// registry is the single process-wide handle table, mirroring
// SimonWaldherr-tinySQL's package-level maps but behind internal/handle's
// typed API, whose frees cascade to child handles.
var registry = handle.New()

// clientFactory is the default wiring: every Connection dials SQL
// Server over github.com/microsoft/go-mssqldb. A build that wants a
// different TDS library swaps this one assignment.
var clientFactory conn.Factory = mssqlclient.New

//export SQLAllocHandle
func SQLAllocHandle(handleType C.SQLSMALLINT, inputHandle C.SQLHANDLE, outputHandle *C.SQLHANDLE) C.SQLRETURN {
	switch api.HandleType(handleType) {
	case api.HandleEnv:
		env := registry.AllocEnv()
		*outputHandle = C.SQLHANDLE(unsafe.Pointer(uintptr(env.ID)))
		return C.SQL_SUCCESS
	case api.HandleDBC:
		env, ok := registry.LookupEnv(handle.ID(uintptr(inputHandle)))
		if !ok {
			return C.SQL_INVALID_HANDLE
		}
		hconn := registry.AllocConn(env)
		hconn.State = conn.New(&hconn.Diag)
		*outputHandle = C.SQLHANDLE(unsafe.Pointer(uintptr(hconn.ID)))
		return C.SQL_SUCCESS
	case api.HandleStmt:
		hconn, ok := registry.LookupConn(handle.ID(uintptr(inputHandle)))
		if !ok {
			return C.SQL_INVALID_HANDLE
		}
		c, ok := hconn.State.(*conn.Conn)
		if !ok {
			return C.SQL_INVALID_HANDLE
		}
		hstmt := registry.AllocStmt(hconn)
		hstmt.State = stmt.New(&hstmt.Diag, c)
		*outputHandle = C.SQLHANDLE(unsafe.Pointer(uintptr(hstmt.ID)))
		return C.SQL_SUCCESS
	default:
		return C.SQL_INVALID_HANDLE
	}
}

//export SQLFreeHandle
func SQLFreeHandle(handleType C.SQLSMALLINT, h C.SQLHANDLE) C.SQLRETURN {
	id := handle.ID(uintptr(h))
	var ok bool
	switch api.HandleType(handleType) {
	case api.HandleEnv:
		ok = registry.FreeEnv(id)
	case api.HandleDBC:
		ok = registry.FreeConn(id)
	case api.HandleStmt:
		ok = registry.FreeStmt(id)
	}
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	return C.SQL_SUCCESS
}

//export SQLSetEnvAttr
func SQLSetEnvAttr(env C.SQLHENV, attribute C.SQLINTEGER, value C.SQLPOINTER, stringLength C.SQLINTEGER) C.SQLRETURN {
	// Only SQL_ATTR_ODBC_VERSION / SQL_OV_ODBC3 is meaningful here, and
	// this driver only ever speaks ODBC 3.x, so every value is accepted.
	if _, ok := registry.LookupEnv(handle.ID(uintptr(env))); !ok {
		return C.SQL_INVALID_HANDLE
	}
	return C.SQL_SUCCESS
}

//export SQLConnect
func SQLConnect(dbc C.SQLHDBC, dsn *C.SQLCHAR, dsnLen C.SQLSMALLINT, user *C.SQLCHAR, userLen C.SQLSMALLINT, pass *C.SQLCHAR, passLen C.SQLSMALLINT) C.SQLRETURN {
	return connectDSN(dbc, cGoString(dsn, dsnLen), cGoString(user, userLen), cGoString(pass, passLen))
}

//export SQLConnectW
func SQLConnectW(dbc C.SQLHDBC, dsn *C.SQLWCHAR, dsnLen C.SQLSMALLINT, user *C.SQLWCHAR, userLen C.SQLSMALLINT, pass *C.SQLWCHAR, passLen C.SQLSMALLINT) C.SQLRETURN {
	return connectDSN(dbc, wGoString(dsn, dsnLen), wGoString(user, userLen), wGoString(pass, passLen))
}

func connectDSN(dbc C.SQLHDBC, dsn, user, pass string) C.SQLRETURN {
	c, ok := lookupConn(dbc)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if err := c.ConnectDSN(context.Background(), clientFactory, dsn, user, pass); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

//export SQLDriverConnect
func SQLDriverConnect(dbc C.SQLHDBC, windowHandle C.SQLPOINTER, inStr *C.SQLCHAR, inStrLen C.SQLSMALLINT, outStr *C.SQLCHAR, outStrMax C.SQLSMALLINT, outStrLen *C.SQLSMALLINT, driverCompletion C.SQLUSMALLINT) C.SQLRETURN {
	return driverConnect(dbc, cGoString(inStr, inStrLen))
}

//export SQLDriverConnectW
func SQLDriverConnectW(dbc C.SQLHDBC, windowHandle C.SQLPOINTER, inStr *C.SQLWCHAR, inStrLen C.SQLSMALLINT, outStr *C.SQLWCHAR, outStrMax C.SQLSMALLINT, outStrLen *C.SQLSMALLINT, driverCompletion C.SQLUSMALLINT) C.SQLRETURN {
	return driverConnect(dbc, wGoString(inStr, inStrLen))
}

func driverConnect(dbc C.SQLHDBC, connStr string) C.SQLRETURN {
	c, ok := lookupConn(dbc)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if err := c.ConnectString(context.Background(), clientFactory, connStr); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

//export SQLDisconnect
func SQLDisconnect(dbc C.SQLHDBC) C.SQLRETURN {
	c, ok := lookupConn(dbc)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if err := c.Disconnect(context.Background()); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

//export SQLEndTran
func SQLEndTran(handleType C.SQLSMALLINT, h C.SQLHANDLE, completionType C.SQLSMALLINT) C.SQLRETURN {
	hconn, ok := registry.LookupConn(handle.ID(uintptr(h)))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	c, ok := hconn.State.(*conn.Conn)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if err := c.EndTran(context.Background(), api.TranCompletion(completionType)); err != nil {
		return C.SQL_ERROR
	}
	return C.SQL_SUCCESS
}

// lookupConn resolves a C connection handle down to its *conn.Conn,
// the internal driver-state type internal/conn.New creates and
// SQLAllocHandle(SQL_HANDLE_DBC) stashes in handle.Conn.State.
func lookupConn(dbc C.SQLHDBC) (*conn.Conn, bool) {
	hconn, ok := registry.LookupConn(handle.ID(uintptr(dbc)))
	if !ok {
		return nil, false
	}
	c, ok := hconn.State.(*conn.Conn)
	return c, ok
}

// lookupStmt resolves a C statement handle down to its *stmt.Stmt.
func lookupStmt(h C.SQLHSTMT) (*stmt.Stmt, bool) {
	hstmt, ok := registry.LookupStmt(handle.ID(uintptr(h)))
	if !ok {
		return nil, false
	}
	s, ok := hstmt.State.(*stmt.Stmt)
	return s, ok
}

// diagListFor resolves any handle type to the diag.List backing it, for
// SQLGetDiagRec.
func diagListFor(ht api.HandleType, id handle.ID) (*diag.List, bool) {
	switch ht {
	case api.HandleEnv:
		e, ok := registry.LookupEnv(id)
		if !ok {
			return nil, false
		}
		return &e.Diag, true
	case api.HandleDBC:
		c, ok := registry.LookupConn(id)
		if !ok {
			return nil, false
		}
		return &c.Diag, true
	case api.HandleStmt:
		s, ok := registry.LookupStmt(id)
		if !ok {
			return nil, false
		}
		return &s.Diag, true
	default:
		return nil, false
	}
}

func main() {}
