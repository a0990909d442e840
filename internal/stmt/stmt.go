// Package stmt implements the Statement state machine:
// Idle -> Prepared -> (NeedData ->)* Executed -> Fetching,
// prepare/exec-direct, parameter binding, batch execution (including the
// autocommit-driven implicit BEGIN TRANSACTION and textual
// "?"-substitution in place of true server-side RPC parameters), the
// ParamData/PutData data-at-execution loop, and forward-only fetch
// against the row set internal/rowwriter materialized.
//
// It is grounded on alexbrainman/odbc's odbcstmt.go/stmt.go/param.go:
// Parameter.BindValue's per-Go-type switch is the model for BindParam
// below (generalized from "build a C buffer" to "format a literal or
// flag data-at-execution"), and ODBCStmt's usedByStmt/usedByRows mutex
// dance is generalized into the single State enum this package uses to
// reject calls made out of sequence: executing a statement that is mid
// data-at-execution returns HY010.
package stmt

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/async"
	"github.com/copycatdb/furball/internal/convert"
	"github.com/copycatdb/furball/internal/diag"
	"github.com/copycatdb/furball/internal/rowstore"
	"github.com/copycatdb/furball/internal/rowwriter"
	"github.com/copycatdb/furball/internal/sqltext"
	"github.com/copycatdb/furball/internal/tdsclient"
)

// State is the statement's position in its lifecycle.
type State int

const (
	Idle State = iota
	Prepared
	NeedData
	Executed
	Fetching
)

// ConnDriver is the subset of internal/conn.Conn a Statement needs: a
// way to run a batch and to know whether autocommit requires an
// implicit BEGIN TRANSACTION first.
type ConnDriver interface {
	Client() (tdsclient.Client, *async.Executor, error)
	Autocommit() bool
	InTransaction() bool
	NoteImplicitTransactionStart()
	MarkDead()
}

// Param is one bound input parameter.
type Param struct {
	Kind     convert.LiteralKind
	IsWide   bool
	Null     bool
	Literal  string // pre-formatted, for every kind except DAE
	NeedData bool   // true if this parameter is SQL_DATA_AT_EXEC
	dae      []byte // accumulated bytes from PutData calls
}

// Stmt is one Statement handle's live state.
type Stmt struct {
	Diag *diag.List
	conn ConnDriver

	state  State
	sqlRaw string
	params []Param

	daeIndex int // index into params of the parameter currently being supplied

	table        rowstore.Table
	rowsAffected int64
	cursor       int // index of the current row, -1 before first fetch
}

// New returns an Idle Statement bound to conn.
func New(d *diag.List, c ConnDriver) *Stmt {
	return &Stmt{Diag: d, conn: c, state: Idle, cursor: -1}
}

// Prepare stores sql and counts its placeholders (SQLPrepare).
func (s *Stmt) Prepare(sql string) error {
	s.Diag.Clear()
	if s.state == NeedData {
		err := errors.New("statement is mid data-at-execution")
		s.Diag.PushErr(api.StateFunctionSequenceError, err)
		return err
	}
	n := sqltext.NumParams(sql)
	s.sqlRaw = sql
	s.params = make([]Param, n)
	s.state = Prepared
	return nil
}

// NumParams reports how many "?" placeholders the prepared text has.
func (s *Stmt) NumParams() int {
	return len(s.params)
}

// BindParam sets the ordinal-th (0-based) parameter's value.
// isDAE requests SQL_DATA_AT_EXEC: the application will supply the value
// later via PutData, following SQLParamData.
func (s *Stmt) BindParam(ordinal int, kind convert.LiteralKind, isWide bool, literal string, null bool, isDAE bool) error {
	s.Diag.Clear()
	if ordinal < 0 || ordinal >= len(s.params) {
		err := errors.Errorf("parameter ordinal %d out of range", ordinal)
		s.Diag.PushErr(api.StateInvalidDescriptorIndex, err)
		return err
	}
	s.params[ordinal] = Param{Kind: kind, IsWide: isWide, Literal: literal, Null: null, NeedData: isDAE}
	return nil
}

// ResetParams clears every bound parameter (SQLFreeStmt/SQL_RESET_PARAMS).
func (s *Stmt) ResetParams() {
	s.Diag.Clear()
	for i := range s.params {
		s.params[i] = Param{}
	}
}

// UnbindColumns drops any column binding state. Furball never binds
// application buffers ahead of time (every GetData call is answered
// straight from rowstore), so this only exists to give SQLFreeStmt's
// SQL_UNBIND option something meaningful to do.
func (s *Stmt) UnbindColumns() {}

// CloseCursor implements SQLCloseCursor / SQLFreeStmt(SQL_CLOSE):
// discards the result set and returns to Prepared, without discarding
// the prepared text or bound parameters, distinguishing this from a
// full Close.
func (s *Stmt) CloseCursor() {
	s.Diag.Clear()
	s.table = rowstore.Table{}
	s.cursor = -1
	if s.state == Fetching || s.state == Executed {
		s.state = Prepared
	}
}

// ExecDirect prepares and executes sql in one step (SQLExecDirect).
func (s *Stmt) ExecDirect(ctx context.Context, sql string) error {
	if err := s.Prepare(sql); err != nil {
		return err
	}
	return s.Execute(ctx)
}

// Execute substitutes bound parameters into the prepared text and runs
// it (SQLExecute). If any bound parameter is data-at-execution, Execute
// returns ErrNeedData and the statement moves to NeedData instead of
// running anything, deferring to the ParamData/PutData protocol.
func (s *Stmt) Execute(ctx context.Context) error {
	s.Diag.Clear()
	if s.state != Prepared && s.state != Executed && s.state != Fetching {
		err := errors.New("statement has not been prepared")
		s.Diag.PushErr(api.StateFunctionSequenceError, err)
		return err
	}
	for i, p := range s.params {
		if p.NeedData && p.dae == nil && !p.Null {
			s.daeIndex = i
			s.state = NeedData
			return ErrNeedData
		}
	}
	return s.runBatch(ctx)
}

// ErrNeedData signals SQL_NEED_DATA: the caller must drive the
// ParamData/PutData loop before the batch actually runs.
var ErrNeedData = errors.New("stmt: SQL_NEED_DATA")

// ParamData returns the ordinal (0-based) of the parameter that needs
// its value supplied next, or ok=false if every data-at-execution
// parameter has been satisfied (SQLParamData).
func (s *Stmt) ParamData() (ordinal int, ok bool) {
	if s.state != NeedData {
		return 0, false
	}
	return s.daeIndex, true
}

// PutData appends chunk to the parameter currently being supplied. A
// zero-length chunk is preserved as an empty (not NULL) value.
func (s *Stmt) PutData(chunk []byte) error {
	s.Diag.Clear()
	if s.state != NeedData {
		err := errors.New("no parameter is awaiting data")
		s.Diag.PushErr(api.StateFunctionSequenceError, err)
		return err
	}
	p := &s.params[s.daeIndex]
	if p.dae == nil {
		p.dae = []byte{}
	}
	p.dae = append(p.dae, chunk...)
	return nil
}

// advanceParamData is reached through ContinueAfterPutData once the
// current data-at-execution parameter's value has been supplied.
// It formats the accumulated bytes into the same literal form bound
// parameters use, then advances to the next NeedData parameter or, if
// none remain, runs the batch.
func (s *Stmt) advanceParamData(ctx context.Context) error {
	p := &s.params[s.daeIndex]
	text := string(p.dae)
	if p.Kind == convert.LiteralBinary {
		text = hex.EncodeToString(p.dae)
	}
	p.Literal = convert.FormatLiteral(p.Kind, text, false, p.IsWide)
	for i := s.daeIndex + 1; i < len(s.params); i++ {
		if s.params[i].NeedData && s.params[i].dae == nil && !s.params[i].Null {
			s.daeIndex = i
			return ErrNeedData
		}
	}
	return s.runBatch(ctx)
}

// ContinueAfterPutData is called by the ABI layer once the application's
// PutData calls for the current parameter have ended (a zero-length
// terminal call or moving straight to the next SQLParamData), to either
// advance to the next DAE parameter or run the batch.
func (s *Stmt) ContinueAfterPutData(ctx context.Context) error {
	return s.advanceParamData(ctx)
}

func (s *Stmt) runBatch(ctx context.Context) error {
	client, ex, err := s.conn.Client()
	if err != nil {
		s.Diag.PushErr(api.StateConnectionNotOpen, err)
		return err
	}

	literals := make([]string, len(s.params))
	for i, p := range s.params {
		if p.Null {
			literals[i] = "NULL"
			continue
		}
		literals[i] = p.Literal
	}
	batch, err := sqltext.Substitute(s.sqlRaw, literals)
	if err != nil {
		s.Diag.PushErr(api.StateDataException, err)
		return err
	}

	if !s.conn.Autocommit() && !s.conn.InTransaction() {
		batch = "BEGIN TRANSACTION\n" + batch
		s.conn.NoteImplicitTransactionStart()
	}

	w := &rowwriter.Writer{}
	err = ex.Run(ctx, func(ctx context.Context) error {
		return client.Exec(ctx, batch, w)
	}, nil)
	if err != nil {
		s.conn.MarkDead()
		s.Diag.PushErr(api.StateCommLinkFailure, err)
		return err
	}

	s.table = w.Table
	s.rowsAffected = w.RowsAffected
	s.cursor = -1
	s.state = Executed
	return nil
}

// LoadTable installs a result set materialized without a server round
// trip, for statements like SQLGetTypeInfo whose answer is a static
// table known entirely client-side. It leaves the
// statement in the same Executed state runBatch would.
func (s *Stmt) LoadTable(table rowstore.Table) {
	s.table = table
	s.rowsAffected = int64(len(table.Rows))
	s.cursor = -1
	s.state = Executed
}

// RowCount answers SQLRowCount: -1 for a statement whose last batch
// produced a result set (SELECT), the server-reported affected-row
// count otherwise.
func (s *Stmt) RowCount() int64 {
	if s.table.NumCols() > 0 {
		return -1
	}
	return s.rowsAffected
}

// NumResultCols answers SQLNumResultCols.
func (s *Stmt) NumResultCols() int {
	return s.table.NumCols()
}

// DescribeCol answers SQLDescribeCol / SQLColAttribute for the 1-based
// indexed column.
func (s *Stmt) DescribeCol(idx int) (rowstore.Column, error) {
	s.Diag.Clear()
	col, ok := s.table.ColumnAt(idx)
	if !ok {
		err := fmt.Errorf("column %d out of range", idx)
		s.Diag.PushErr(api.StateInvalidDescriptorIndex, err)
		return rowstore.Column{}, err
	}
	return col, nil
}

// Fetch advances the cursor to the next row (SQLFetch; the driver does
// not export SQLFetchScroll, so forward-only is the only fetch mode).
// ok is false at end of the result set, mapped to SQL_NO_DATA by the
// ABI layer, and stays false on every subsequent call.
func (s *Stmt) Fetch() (ok bool) {
	s.Diag.Clear()
	if s.state != Executed && s.state != Fetching {
		return false
	}
	s.state = Fetching
	next := s.cursor + 1
	if next >= s.table.NumRows() {
		s.cursor = s.table.NumRows() // pin past the end
		return false
	}
	s.cursor = next
	return true
}

// GetData answers SQLGetData for the 1-based indexed column of the
// current row. Calling this with no current row (before the first Fetch,
// or after Fetch has returned false) is SQLSTATE 24000.
func (s *Stmt) GetData(idx int) (rowstore.Value, rowstore.Column, error) {
	s.Diag.Clear()
	if s.cursor < 0 || s.cursor >= s.table.NumRows() {
		err := errors.New("no current row")
		s.Diag.PushErr(api.StateInvalidCursorState, err)
		return rowstore.Value{}, rowstore.Column{}, err
	}
	row, _ := s.table.RowAt(s.cursor)
	col, ok := s.table.ColumnAt(idx)
	if !ok || idx < 1 || idx > len(row) {
		err := fmt.Errorf("column %d out of range", idx)
		s.Diag.PushErr(api.StateInvalidDescriptorIndex, err)
		return rowstore.Value{}, rowstore.Column{}, err
	}
	return row[idx-1], col, nil
}

// Close releases the statement's result set and parameters. It does not
// itself remove the handle from the registry — that is
// internal/handle.Registry.FreeStmt's job; Close only resets state so a
// reused Stmt value starts clean.
func (s *Stmt) Close() {
	s.table = rowstore.Table{}
	s.params = nil
	s.sqlRaw = ""
	s.state = Idle
	s.cursor = -1
}
