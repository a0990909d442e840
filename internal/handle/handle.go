// Package handle implements the three-level handle registry this driver
// uses: Environment owns zero or more Connections, each
// Connection owns zero or more Statements, and freeing a parent cascades
// to every surviving child.
//
// It is grounded on SimonWaldherr-tinySQL's odbc/odbc.go, whose
// SQLAllocHandle keeps package-level envMap/connMap/stmtMap registries
// keyed by a monotonically increasing uintptr and validates parent
// membership before minting a child. This package generalizes that into a
// typed, mutex-protected registry that cmd/furball calls instead of
// reimplementing the bookkeeping inline, and adds the cascading free and
// per-handle diagnostic list this driver needs that alexbrainman/odbc does
// not need (it has no child-statement cleanup path of its own).
package handle

import (
	"sync"

	"github.com/copycatdb/furball/api"
	"github.com/copycatdb/furball/internal/diag"
)

// ID is the opaque handle value threaded across the C ABI. cmd/furball
// stores this inside the pointer-sized handle it hands back to the driver
// manager; nothing in this package interprets it beyond using it as a map
// key.
type ID uintptr

// Env is an environment handle: the root of the hierarchy.
type Env struct {
	ID    ID
	Diag  diag.List
	mu    sync.Mutex
	conns map[ID]*Conn
}

// Conn is a connection handle, owned by exactly one Env.
type Conn struct {
	ID    ID
	Env   *Env
	Diag  diag.List
	State any // set by internal/conn to its connection state; opaque here

	mu    sync.Mutex
	stmts map[ID]*Stmt
}

// Stmt is a statement handle, owned by exactly one Conn.
type Stmt struct {
	ID    ID
	Conn  *Conn
	Diag  diag.List
	State any // set by internal/stmt to its statement state; opaque here
}

// Registry is the process-wide handle table. The zero value is ready to
// use; cmd/furball keeps a single package-level instance, mirroring
// SimonWaldherr-tinySQL's package-level envMap/connMap/stmtMap.
type Registry struct {
	mu       sync.Mutex
	nextID   ID
	envs     map[ID]*Env
	conns    map[ID]*Conn
	stmts    map[ID]*Stmt
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		nextID: 1,
		envs:   make(map[ID]*Env),
		conns:  make(map[ID]*Conn),
		stmts:  make(map[ID]*Stmt),
	}
}

func (r *Registry) allocID() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id
}

// AllocEnv mints a new top-level Environment handle.
func (r *Registry) AllocEnv() *Env {
	env := &Env{ID: r.allocID(), conns: make(map[ID]*Conn)}
	r.mu.Lock()
	r.envs[env.ID] = env
	r.mu.Unlock()
	return env
}

// AllocConn mints a new Connection handle under env, which must be a
// live Environment.
func (r *Registry) AllocConn(env *Env) *Conn {
	conn := &Conn{ID: r.allocID(), Env: env, stmts: make(map[ID]*Stmt)}
	r.mu.Lock()
	r.conns[conn.ID] = conn
	r.mu.Unlock()
	env.mu.Lock()
	env.conns[conn.ID] = conn
	env.mu.Unlock()
	return conn
}

// AllocStmt mints a new Statement handle under conn.
func (r *Registry) AllocStmt(conn *Conn) *Stmt {
	stmt := &Stmt{ID: r.allocID(), Conn: conn}
	r.mu.Lock()
	r.stmts[stmt.ID] = stmt
	r.mu.Unlock()
	conn.mu.Lock()
	conn.stmts[stmt.ID] = stmt
	conn.mu.Unlock()
	return stmt
}

// LookupEnv validates that id still denotes a live Environment handle.
func (r *Registry) LookupEnv(id ID) (*Env, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.envs[id]
	return e, ok
}

// LookupConn validates that id still denotes a live Connection handle.
func (r *Registry) LookupConn(id ID) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	return c, ok
}

// LookupStmt validates that id still denotes a live Statement handle.
func (r *Registry) LookupStmt(id ID) (*Stmt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stmts[id]
	return s, ok
}

// FreeStmt drops stmt from the registry and from its owning Conn's child
// set. Freeing an already-freed or unknown handle is reported via the
// bool so the ABI layer can return SQL_INVALID_HANDLE.
func (r *Registry) FreeStmt(id ID) bool {
	r.mu.Lock()
	s, ok := r.stmts[id]
	if ok {
		delete(r.stmts, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	s.Conn.mu.Lock()
	delete(s.Conn.stmts, id)
	s.Conn.mu.Unlock()
	return true
}

// FreeConn drops conn and cascades to every surviving child Statement:
// freeing a Connection frees every Statement allocated under it.
func (r *Registry) FreeConn(id ID) bool {
	r.mu.Lock()
	c, ok := r.conns[id]
	if ok {
		delete(r.conns, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	c.mu.Lock()
	children := make([]ID, 0, len(c.stmts))
	for sid := range c.stmts {
		children = append(children, sid)
	}
	c.mu.Unlock()

	r.mu.Lock()
	for _, sid := range children {
		delete(r.stmts, sid)
	}
	r.mu.Unlock()

	c.Env.mu.Lock()
	delete(c.Env.conns, id)
	c.Env.mu.Unlock()
	return true
}

// FreeEnv drops env and cascades to every surviving child Connection (and
// transitively, every Statement under each).
func (r *Registry) FreeEnv(id ID) bool {
	r.mu.Lock()
	e, ok := r.envs[id]
	if ok {
		delete(r.envs, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	e.mu.Lock()
	children := make([]ID, 0, len(e.conns))
	for cid := range e.conns {
		children = append(children, cid)
	}
	e.mu.Unlock()

	for _, cid := range children {
		r.FreeConn(cid)
	}
	return true
}

// HandleTypeOf reports whether id currently denotes a live handle of
// type ht. It returns false if id is unknown under that type.
func (r *Registry) HandleTypeOf(ht api.HandleType, id ID) bool {
	switch ht {
	case api.HandleEnv:
		_, ok := r.LookupEnv(id)
		return ok
	case api.HandleDBC:
		_, ok := r.LookupConn(id)
		return ok
	case api.HandleStmt:
		_, ok := r.LookupStmt(id)
		return ok
	default:
		return false
	}
}
