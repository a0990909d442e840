package stmt

import (
	"context"
	"testing"

	"github.com/copycatdb/furball/internal/async"
	"github.com/copycatdb/furball/internal/convert"
	"github.com/copycatdb/furball/internal/diag"
	"github.com/copycatdb/furball/internal/tdsclient"
)

type fakeClient struct {
	batches []string
}

func (f *fakeClient) Connect(context.Context, string, int, string, string, string, bool) error {
	return nil
}
func (f *fakeClient) Close() error { return nil }
func (f *fakeClient) Exec(ctx context.Context, batch string, h tdsclient.Handler) error {
	f.batches = append(f.batches, batch)
	h.OnResultSet([]tdsclient.ColumnMeta{{Name: "id", Kind: tdsclient.KindI32}})
	h.OnRow(tdsclient.Row{Values: []tdsclient.Cell{{Kind: tdsclient.KindI32, Int: 7}}})
	h.OnDone(-1)
	return nil
}
func (f *fakeClient) Ping(context.Context) error { return nil }

type fakeConn struct {
	client     *fakeClient
	ex         async.Executor
	autocommit bool
	inTxn      bool
	dead       bool
}

func (c *fakeConn) Client() (tdsclient.Client, *async.Executor, error) {
	return c.client, &c.ex, nil
}
func (c *fakeConn) Autocommit() bool               { return c.autocommit }
func (c *fakeConn) InTransaction() bool            { return c.inTxn }
func (c *fakeConn) NoteImplicitTransactionStart()  { c.inTxn = true }
func (c *fakeConn) MarkDead()                      { c.dead = true }

func newTestStmt() (*Stmt, *fakeConn) {
	var d diag.List
	fc := &fakeConn{client: &fakeClient{}, autocommit: true}
	return New(&d, fc), fc
}

func TestPrepareExecuteFetchGetData(t *testing.T) {
	s, _ := newTestStmt()
	if err := s.Prepare("SELECT id FROM t WHERE x = ?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.NumParams() != 1 {
		t.Fatalf("expected 1 param, got %d", s.NumParams())
	}
	if err := s.BindParam(0, convert.LiteralNumeric, false, "1", false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.NumResultCols() != 1 {
		t.Fatalf("expected 1 column, got %d", s.NumResultCols())
	}
	if !s.Fetch() {
		t.Fatal("expected a row")
	}
	v, _, err := s.GetData(1)
	if err != nil || v.Text != "7" {
		t.Fatalf("unexpected GetData result: %+v, %v", v, err)
	}
	if s.Fetch() {
		t.Fatal("expected no more rows")
	}
}

func TestGetDataBeforeFetchFails(t *testing.T) {
	s, _ := newTestStmt()
	s.Prepare("SELECT 1")
	s.Execute(context.Background())
	if _, _, err := s.GetData(1); err == nil {
		t.Fatal("expected an error calling GetData before Fetch")
	}
}

func TestSuccessClearsPriorFailureDiagnostics(t *testing.T) {
	d := &diag.List{}
	fc := &fakeConn{client: &fakeClient{}, autocommit: true}
	s := New(d, fc)

	if _, _, err := s.GetData(1); err == nil {
		t.Fatal("expected an error calling GetData with no current row")
	}
	if d.Len() == 0 {
		t.Fatal("expected the failed GetData to push a diagnostic")
	}

	if err := s.Prepare("SELECT 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("expected a successful Execute to clear stale diagnostics, got %d records", d.Len())
	}
}

func TestDataAtExecutionFlow(t *testing.T) {
	s, fc := newTestStmt()
	s.Prepare("INSERT INTO t(blob) VALUES (?)")
	if err := s.BindParam(0, convert.LiteralBinary, false, "", false, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := s.Execute(context.Background())
	if err != ErrNeedData {
		t.Fatalf("expected ErrNeedData, got %v", err)
	}
	ord, ok := s.ParamData()
	if !ok || ord != 0 {
		t.Fatalf("expected ordinal 0, got %d, ok=%v", ord, ok)
	}
	if err := s.PutData([]byte{0xDE, 0xAD}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.PutData([]byte{0xBE, 0xEF}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ContinueAfterPutData(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc.client.batches) != 1 || fc.client.batches[0] != "INSERT INTO t(blob) VALUES (0xDEADBEEF)" {
		t.Fatalf("unexpected batch: %v", fc.client.batches)
	}
}

func TestZeroLengthPutDataPreservesEmptyValue(t *testing.T) {
	s, fc := newTestStmt()
	s.Prepare("INSERT INTO t(blob) VALUES (?)")
	s.BindParam(0, convert.LiteralBinary, false, "", false, true)
	s.Execute(context.Background())
	if err := s.PutData(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ContinueAfterPutData(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.client.batches[0] != "INSERT INTO t(blob) VALUES (0x)" {
		t.Fatalf("unexpected batch: %v", fc.client.batches)
	}
}

func TestAutocommitOffOpensImplicitTransaction(t *testing.T) {
	s, fc := newTestStmt()
	fc.autocommit = false
	s.Prepare("SELECT 1")
	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc.client.batches) != 1 {
		t.Fatalf("expected one batch, got %d", len(fc.client.batches))
	}
	if got := fc.client.batches[0]; got[:len("BEGIN TRANSACTION")] != "BEGIN TRANSACTION" {
		t.Fatalf("expected an implicit BEGIN TRANSACTION, got %q", got)
	}
	if !fc.inTxn {
		t.Fatal("expected the connection to be notified of the implicit transaction")
	}
}

func TestRowCountIsMinusOneForSelect(t *testing.T) {
	s, _ := newTestStmt()
	s.Prepare("SELECT 1")
	s.Execute(context.Background())
	if s.RowCount() != -1 {
		t.Fatalf("expected -1, got %d", s.RowCount())
	}
}
