package main

/*
#include "odbc.h"
*/
import "C"

import (
	"unsafe"

	"github.com/copycatdb/furball/internal/utf16x"
)

// cGoString reads a narrow (SQLCHAR*) ODBC string argument. length is
// either the caller-supplied byte count or SQL_NTS (-3), in which case
// the C string is assumed NUL-terminated.
func cGoString(p *C.SQLCHAR, length C.SQLSMALLINT) string {
	if p == nil {
		return ""
	}
	if length == -3 { // SQL_NTS
		return C.GoString((*C.char)(unsafe.Pointer(p)))
	}
	return C.GoStringN((*C.char)(unsafe.Pointer(p)), C.int(length))
}

// wGoString reads a wide (SQLWCHAR*, UTF-16) ODBC string argument,
// decoding through internal/utf16x so malformed surrogate pairs follow
// the same replacement-character policy SQLGetData uses on the way out.
func wGoString(p *C.SQLWCHAR, length C.SQLSMALLINT) string {
	if p == nil {
		return ""
	}
	units := unsafe.Slice((*uint16)(unsafe.Pointer(p)), wcslen(p, length))
	return utf16x.Decode(units)
}

func wcslen(p *C.SQLWCHAR, length C.SQLSMALLINT) int {
	if length != -3 { // not SQL_NTS
		return int(length)
	}
	n := 0
	base := unsafe.Pointer(p)
	for {
		u := *(*uint16)(unsafe.Add(base, uintptr(n)*2))
		if u == 0 {
			return n
		}
		n++
	}
}

// writeOutChar copies text into a caller-supplied narrow output buffer
// following ODBC's "truncate, null-terminate if room, report the
// untruncated length" convention (SQLGetInfo, SQLGetDiagRec's message
// buffer, SQLDescribeCol's column name).
func writeOutChar(buf *C.SQLCHAR, bufLen C.SQLSMALLINT, outLen *C.SQLSMALLINT, text string) {
	n := copyNarrow(buf, int(bufLen), text)
	if outLen != nil {
		*outLen = C.SQLSMALLINT(len(text))
	}
	_ = n
}

func copyNarrow(buf *C.SQLCHAR, bufLen int, text string) int {
	if buf == nil || bufLen <= 0 {
		return 0
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(buf)), bufLen)
	n := copy(dst[:bufLen-1], text)
	dst[n] = 0
	return n
}

// writeOutWide is writeOutChar's wide-string counterpart, encoding
// through internal/utf16x and NUL-NUL terminating.
func writeOutWide(buf *C.SQLWCHAR, bufLen C.SQLSMALLINT, outLen *C.SQLSMALLINT, text string) {
	units := utf16x.Encode(text)
	if outLen != nil {
		*outLen = C.SQLSMALLINT(len(units) * 2)
	}
	if buf == nil || bufLen <= 0 {
		return
	}
	dst := unsafe.Slice((*uint16)(unsafe.Pointer(buf)), int(bufLen))
	max := int(bufLen) - 1
	n := len(units)
	if n > max {
		n = max
	}
	copy(dst[:n], units[:n])
	dst[n] = 0
}
