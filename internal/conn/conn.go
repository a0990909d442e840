// Package conn implements the Connection component: establishing a TDS
// session (by connection string or DSN),
// tracking autocommit state and its transition policy, ending
// transactions, and answering the handful of connection attributes this
// driver supports.
//
// It is grounded on alexbrainman/odbc's conn.go Open/Close, generalized
// from "allocate and drive an ODBC driver-manager handle" to "dial and
// drive an internal/tdsclient.Client session" — the sequencing (allocate
// resource, connect, map failure to a wrapped error, release on close)
// is the same shape, the resource underneath is different.
package conn

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/async"
	"github.com/copycatdb/furball/internal/connstr"
	"github.com/copycatdb/furball/internal/diag"
	"github.com/copycatdb/furball/internal/tdsclient"
)

// Factory creates a new, unconnected tdsclient.Client. cmd/furball
// supplies the concrete constructor for whichever TDS library is wired
// into the build; tests supply a fake.
type Factory func() tdsclient.Client

// Conn is one Connection handle's live state.
type Conn struct {
	Diag *diag.List

	mu         sync.Mutex
	client     tdsclient.Client
	executor   async.Executor
	connected  bool
	dead       bool
	autocommit bool // true = SQL_AUTOCOMMIT_ON, the ODBC default
	inTxn      bool // a transaction has been opened implicitly by an execute
	params     connstr.Params
}

// New returns an unconnected Conn bound to d, ready to Connect.
func New(d *diag.List) *Conn {
	return &Conn{Diag: d, autocommit: true}
}

// ConnectString establishes a session using a "Key=Value;" connection
// string (SQLDriverConnect).
func (c *Conn) ConnectString(ctx context.Context, factory Factory, s string) error {
	c.Diag.Clear()
	p, err := connstr.ParseConnectionString(s)
	if err != nil {
		c.Diag.PushErr(api.StateConnectionFailure, err)
		return err
	}
	return c.connect(ctx, factory, p)
}

// ConnectDSN establishes a session by looking dsn up in an odbc.ini file
// (SQLConnect). user/password override whatever the DSN section
// specifies when non-empty.
func (c *Conn) ConnectDSN(ctx context.Context, factory Factory, dsn, user, password string) error {
	c.Diag.Clear()
	p, err := connstr.ResolveDSN(dsn, user, password)
	if err != nil {
		c.Diag.PushErr(api.StateConnectionFailure, err)
		return err
	}
	return c.connect(ctx, factory, p)
}

func (c *Conn) connect(ctx context.Context, factory Factory, p connstr.Params) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		err := errors.New("connection is already open")
		c.Diag.PushErr(api.StateConnectionNotOpen, err)
		return err
	}

	client := factory()
	err := c.executor.Run(ctx, func(ctx context.Context) error {
		return client.Connect(ctx, p.Server, p.Port, p.Database, p.User, p.Password, p.TrustServerCertificate)
	}, nil)
	if err != nil {
		c.Diag.PushErr(api.StateConnectionFailure, err)
		return err
	}
	c.client = client
	c.params = p
	c.connected = true
	c.dead = false
	return nil
}

// Disconnect tears the session down (SQLDisconnect).
func (c *Conn) Disconnect(ctx context.Context) error {
	c.Diag.Clear()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		err := errors.New("connection is not open")
		c.Diag.PushErr(api.StateConnectionNotOpen, err)
		return err
	}
	err := c.executor.Run(ctx, func(ctx context.Context) error {
		return c.client.Close()
	}, nil)
	c.executor.Close()
	c.connected = false
	if err != nil {
		c.Diag.PushErr(api.StateCommLinkFailure, err)
		return err
	}
	return nil
}

// Client returns the live tdsclient.Client for internal/stmt to drive
// batches against, and the Executor that serializes access to it.
func (c *Conn) Client() (tdsclient.Client, *async.Executor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected || c.dead {
		err := errors.New("connection is not open")
		c.Diag.PushErr(api.StateConnectionNotOpen, err)
		return nil, nil, err
	}
	return c.client, &c.executor, nil
}

// MarkDead records that a call against this connection failed in a way
// that makes the session unusable: 08S01/08003 failures poison the
// connection for any further use.
func (c *Conn) MarkDead() {
	c.mu.Lock()
	c.dead = true
	c.mu.Unlock()
}

// IsDead answers SQL_ATTR_CONNECTION_DEAD.
func (c *Conn) IsDead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dead
}

// Autocommit reports the current SQL_ATTR_AUTOCOMMIT state.
func (c *Conn) Autocommit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autocommit
}

// SetAutocommit implements the ON<->OFF transition policy: turning
// autocommit OFF is silent (the next execute
// begins a transaction implicitly); turning it back ON, while a
// transaction is open, sends a COMMIT first.
func (c *Conn) SetAutocommit(ctx context.Context, on bool) error {
	c.Diag.Clear()
	c.mu.Lock()
	wasOn := c.autocommit
	inTxn := c.inTxn
	c.mu.Unlock()

	if on == wasOn {
		return nil
	}
	if on && inTxn {
		if err := c.execSimple(ctx, "COMMIT TRANSACTION"); err != nil {
			c.Diag.PushErr(api.StateGeneralError, err)
			return err
		}
		c.mu.Lock()
		c.inTxn = false
		c.mu.Unlock()
	}
	c.mu.Lock()
	c.autocommit = on
	c.mu.Unlock()
	return nil
}

// NoteImplicitTransactionStart records that internal/stmt opened a
// transaction implicitly because autocommit is off, so SetAutocommit
// knows to commit it later.
func (c *Conn) NoteImplicitTransactionStart() {
	c.mu.Lock()
	c.inTxn = true
	c.mu.Unlock()
}

// InTransaction reports whether an implicit transaction is currently open.
func (c *Conn) InTransaction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inTxn
}

// EndTran implements SQLEndTran: commit or roll back whatever
// transaction is open, implicit or not.
func (c *Conn) EndTran(ctx context.Context, completion api.TranCompletion) error {
	c.Diag.Clear()
	stmtText := "COMMIT TRANSACTION"
	if completion == api.Rollback {
		stmtText = "ROLLBACK TRANSACTION"
	}
	if err := c.execSimple(ctx, stmtText); err != nil {
		c.Diag.PushErr(api.StateGeneralError, err)
		return err
	}
	c.mu.Lock()
	c.inTxn = false
	c.mu.Unlock()
	return nil
}

func (c *Conn) execSimple(ctx context.Context, batch string) error {
	client, ex, err := c.Client()
	if err != nil {
		return err
	}
	return ex.Run(ctx, func(ctx context.Context) error {
		return client.Exec(ctx, batch, noopHandler{})
	}, nil)
}

type noopHandler struct{}

func (noopHandler) OnResultSet([]tdsclient.ColumnMeta) {}
func (noopHandler) OnRow(tdsclient.Row)                {}
func (noopHandler) OnDone(int64)                       {}

// DatabaseName reports the initial catalog this connection was opened
// against, used to answer SQLGetInfo(SQL_DATABASE_NAME).
func (c *Conn) DatabaseName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.Database
}

// DataSourceName always returns empty: the DSN name a connection was
// opened with is not recorded. internal/driverinfo treats that as "no
// DSN" rather than an error.
func (c *Conn) DataSourceName() string {
	return ""
}
