// Package tdsclient defines the boundary between Furball and the
// asynchronous TDS wire client it runs on top of: Furball does not
// itself speak TDS, it drives an existing async TDS client and exposes
// a synchronous ODBC surface over it. internal/mssqlclient implements
// the Client interface and is what cmd/furball wires in; internal/stmt
// and internal/conn only ever depend on this interface, so they stay
// testable against a fake.
//
// The shape mirrors alexbrainman/odbc's own split between a thin api
// package (protocol calls) and the higher driver.go/conn.go/stmt.go
// layer that sequences them, generalized from ODBC-driver-manager calls
// to TDS client calls.
package tdsclient

import "context"

// Row is one row of a streamed result set, as reported through
// Handler.OnRow. Each cell carries its TDS kind so
// internal/rowwriter can look up the right SQL/C type pair via
// internal/typemap without re-inspecting the value itself.
type Row struct {
	Values []Cell
}

// Cell is one column value within a streamed Row.
type Cell struct {
	Null bool
	Kind CellKind
	// The field selected by Kind carries the value (Text for the
	// date/time/decimal/guid kinds); internal/rowwriter reads only that
	// field.
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	WStr   string
	Bytes  []byte
	Text   string // pre-formatted canonical text for date/time/decimal/guid kinds
}

// CellKind mirrors internal/typemap.TDSKind; it is redeclared here so
// this package has no dependency on typemap, keeping the client
// boundary minimal and stable.
type CellKind int

const (
	KindNull CellKind = iota
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

// ColumnMeta describes one column of a streamed result set, reported
// once before any rows for that result set arrive.
type ColumnMeta struct {
	Name string
	Kind CellKind
	// Size is the server-reported column size, when available; 0 means
	// "let internal/typemap pick a default".
	Size int
	Nullable bool
}

// Handler receives the streaming callbacks a single batch execution
// produces, in order: zero or more result sets, each announced by
// OnResultSet and followed by zero or more OnRow calls, and finally
// OnDone once with the row count of the last statement that affected
// rows. OnDone's rowsAffected is -1 when not applicable
// (e.g. the batch produced a result set instead of an update count).
type Handler interface {
	OnResultSet(cols []ColumnMeta)
	OnRow(row Row)
	OnDone(rowsAffected int64)
}

// Client is the minimal surface internal/conn and internal/stmt require
// from an external async TDS client. A real implementation dials the
// server, negotiates TDS, and drives Handler's callbacks from its own
// internal event loop; internal/async is what lets this module call it
// synchronously from the ABI's single-worker thread.
type Client interface {
	// Connect establishes a TDS session against server:port, authenticating
	// with user/password and selecting database as the initial catalog.
	Connect(ctx context.Context, server string, port int, database, user, password string, trustServerCert bool) error

	// Close tears down the session. Calling Close on an already-closed or
	// never-connected Client is a no-op.
	Close() error

	// Exec runs one batch of T-SQL text, invoking h's callbacks for
	// whatever it produces. The call blocks until the server signals the
	// batch is done or ctx is canceled.
	Exec(ctx context.Context, batch string, h Handler) error

	// Ping reports whether the session is still usable.
	// SQL_ATTR_CONNECTION_DEAD is answered from internal/conn's own dead
	// flag, not from Ping.
	Ping(ctx context.Context) error
}
