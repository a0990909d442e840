package conn

import (
	"context"
	"testing"

	"github.com/copycatdb/furball/internal/diag"
	"github.com/copycatdb/furball/internal/tdsclient"
)

type fakeClient struct {
	execs   []string
	closed  bool
	failPing bool
}

func (f *fakeClient) Connect(ctx context.Context, server string, port int, database, user, password string, trustServerCert bool) error {
	return nil
}
func (f *fakeClient) Close() error { f.closed = true; return nil }
func (f *fakeClient) Exec(ctx context.Context, batch string, h tdsclient.Handler) error {
	f.execs = append(f.execs, batch)
	h.OnDone(-1)
	return nil
}
func (f *fakeClient) Ping(ctx context.Context) error {
	if f.failPing {
		return errFakePing
	}
	return nil
}

var errFakePing = errPing{}

type errPing struct{}

func (errPing) Error() string { return "ping failed" }

func TestConnectStringThenDisconnect(t *testing.T) {
	var d diag.List
	c := New(&d)
	fc := &fakeClient{}
	factory := func() tdsclient.Client { return fc }

	if err := c.ConnectString(context.Background(), factory, "SERVER=db;DATABASE=widgets"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DatabaseName() != "widgets" {
		t.Fatalf("expected database name to be recorded, got %q", c.DatabaseName())
	}
	if err := c.Disconnect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fc.closed {
		t.Fatal("expected Close to have been called on the client")
	}
}

func TestAutocommitOffThenOnCommitsOpenTransaction(t *testing.T) {
	var d diag.List
	c := New(&d)
	fc := &fakeClient{}
	factory := func() tdsclient.Client { return fc }
	if err := c.ConnectString(context.Background(), factory, "SERVER=db"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.SetAutocommit(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Autocommit() {
		t.Fatal("expected autocommit to be off")
	}
	c.NoteImplicitTransactionStart()

	if err := c.SetAutocommit(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Autocommit() {
		t.Fatal("expected autocommit to be back on")
	}
	if len(fc.execs) != 1 || fc.execs[0] != "COMMIT TRANSACTION" {
		t.Fatalf("expected a COMMIT TRANSACTION to have been sent, got %v", fc.execs)
	}
}

func TestSetAutocommitOffIsSilent(t *testing.T) {
	var d diag.List
	c := New(&d)
	fc := &fakeClient{}
	factory := func() tdsclient.Client { return fc }
	if err := c.ConnectString(context.Background(), factory, "SERVER=db"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetAutocommit(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc.execs) != 0 {
		t.Fatalf("expected no batch to be sent turning autocommit off, got %v", fc.execs)
	}
}

func TestOperationsBeforeConnectFail(t *testing.T) {
	var d diag.List
	c := New(&d)
	if _, _, err := c.Client(); err == nil {
		t.Fatal("expected an error using Client before connecting")
	}
}

func TestSuccessClearsPriorFailureDiagnostics(t *testing.T) {
	var d diag.List
	c := New(&d)
	fc := &fakeClient{}
	factory := func() tdsclient.Client { return fc }

	if _, _, err := c.Client(); err == nil {
		t.Fatal("expected an error using Client before connecting")
	}
	if d.Len() == 0 {
		t.Fatal("expected the failed Client call to push a diagnostic")
	}

	if err := c.ConnectString(context.Background(), factory, "SERVER=db"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("expected a successful ConnectString to clear stale diagnostics, got %d records", d.Len())
	}
}
