// Package mssqlclient adapts github.com/microsoft/go-mssqldb, a
// database/sql driver for the TDS wire protocol, onto the
// internal/tdsclient.Client interface that internal/conn and
// internal/stmt drive batches through.
//
// alexbrainman/odbc talks to SQL Server through whatever ODBC driver
// manager and vendor driver (FreeTDS, the Microsoft ODBC driver, ...)
// the system has installed; it never speaks TDS itself. Furball's own
// Go process does, via go-mssqldb, so this package plays the role the
// driver manager's dial-out plays in conn.go/mssql_test.go: given a
// server, port, database and credentials, open a session and hand back
// something internal/conn can run batches against.
//
// go-mssqldb's public surface is database/sql's synchronous
// query/exec model, not a push-style row callback one, so Exec bridges
// the two: it runs the batch, and depending on whether the driver
// handed back a column set, plays it through the supplied Handler as
// either a result set (OnResultSet/OnRow) or a rowcount-only batch
// (OnDone). internal/async.Executor still serializes every call onto
// one goroutine per connection, matching this driver's single-statement-
// in-flight rule; this adapter does not need its own locking.
package mssqlclient

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/copycatdb/furball/internal/tdsclient"
)

// Client is a tdsclient.Client backed by a *sql.DB opened against the
// go-mssqldb driver.
type Client struct {
	db *sql.DB
}

// New returns an unconnected Client. internal/conn.Factory wraps this
// as the default cmd/furball wiring; tests substitute a fake instead.
func New() tdsclient.Client {
	return &Client{}
}

// Connect opens the session. Non-query driver options (encryption,
// login timeout) are left at go-mssqldb's defaults; this driver does
// not expose a full connection-attribute surface.
func (c *Client) Connect(ctx context.Context, server string, port int, database, user, password string, trustServerCert bool) error {
	q := url.Values{}
	if database != "" {
		q.Set("database", database)
	}
	if trustServerCert {
		q.Set("TrustServerCertificate", "true")
	}
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%d", server, portOrDefault(port)),
		RawQuery: q.Encode(),
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}
	c.db = db
	return nil
}

func portOrDefault(port int) int {
	if port == 0 {
		return 1433
	}
	return port
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Ping checks that the session is still reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Exec runs one already-substituted batch (internal/sqltext has
// already resolved every "?" placeholder into a literal, so this is a
// single textual statement with no bind parameters of its own).
//
// database/sql does not expose "this statement returned N columns"
// ahead of a call to Query, and a literal-substituted batch may be
// either a SELECT or a DML statement. go-mssqldb's Rows.Columns()
// returns an empty slice for a statement with no result set, which is
// how Exec distinguishes the two without sniffing the SQL text; once
// it knows there is no result set it re-runs the batch through
// ExecContext to recover the real affected-row count, since
// QueryContext's sql.Rows has no sql.Result to ask for one.
func (c *Client) Exec(ctx context.Context, batch string, h tdsclient.Handler) error {
	rows, err := c.db.QueryContext(ctx, batch)
	if err != nil {
		return err
	}

	cols, err := rows.ColumnTypes()
	if err != nil {
		rows.Close()
		return err
	}
	if len(cols) == 0 {
		rows.Close()
		return c.execNoResultSet(ctx, batch, h)
	}
	defer rows.Close()
	return c.streamResultSet(rows, cols, h)
}

func (c *Client) execNoResultSet(ctx context.Context, batch string, h tdsclient.Handler) error {
	res, err := c.db.ExecContext(ctx, batch)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some statements (DDL, SET options) don't report a row count at
		// all; go-mssqldb returns an error from RowsAffected for those
		// rather than 0, so fall back to "not applicable".
		n = -1
	}
	h.OnDone(n)
	return nil
}

func (c *Client) streamResultSet(rows *sql.Rows, cols []*sql.ColumnType, h tdsclient.Handler) error {
	meta := make([]tdsclient.ColumnMeta, len(cols))
	scan := make([]interface{}, len(cols))
	for i, ct := range cols {
		kind := kindFor(ct.DatabaseTypeName())
		meta[i] = tdsclient.ColumnMeta{Name: ct.Name(), Kind: kind}
		if size, ok := ct.Length(); ok {
			meta[i].Size = int(size)
		}
		if nullable, ok := ct.Nullable(); ok {
			meta[i].Nullable = nullable
		}
		switch kind {
		case tdsclient.KindBytes:
			scan[i] = new([]byte)
		case tdsclient.KindDate, tdsclient.KindTime, tdsclient.KindDateTime, tdsclient.KindDateTimeOffset:
			scan[i] = new(sql.NullTime)
		default:
			scan[i] = new(sql.NullString)
		}
	}
	h.OnResultSet(meta)

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return err
		}
		row := tdsclient.Row{Values: make([]tdsclient.Cell, len(scan))}
		for i, v := range scan {
			row.Values[i] = cellFor(meta[i].Kind, v)
		}
		h.OnRow(row)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	h.OnDone(-1)
	return nil
}

// cellFor converts one Scan destination into the Cell shape
// internal/rowwriter expects, formatting temporal values into the
// canonical layouts internal/convert's ToTimestamp/ToDate/ToTime/ToTime2
// parse rather than leaving them in whatever stringification
// database/sql would otherwise pick.
func cellFor(kind tdsclient.CellKind, dest interface{}) tdsclient.Cell {
	switch d := dest.(type) {
	case *[]byte:
		if *d == nil {
			return tdsclient.Cell{Null: true, Kind: kind}
		}
		return tdsclient.Cell{Kind: kind, Bytes: *d}
	case *sql.NullTime:
		if !d.Valid {
			return tdsclient.Cell{Null: true, Kind: kind}
		}
		return tdsclient.Cell{Kind: kind, Text: formatTemporal(kind, d.Time)}
	case *sql.NullString:
		if !d.Valid {
			return tdsclient.Cell{Null: true, Kind: kind}
		}
		cell := tdsclient.Cell{Kind: kind, Str: d.String, Text: d.String}
		switch kind {
		case tdsclient.KindBool:
			cell.Bool = d.String == "1" || strings.EqualFold(d.String, "true")
		case tdsclient.KindU8, tdsclient.KindI16, tdsclient.KindI32, tdsclient.KindI64:
			cell.Int, _ = strconv.ParseInt(d.String, 10, 64)
		case tdsclient.KindF32, tdsclient.KindF64:
			cell.Float, _ = strconv.ParseFloat(d.String, 64)
		case tdsclient.KindWStr:
			cell.WStr = d.String
		}
		return cell
	default:
		return tdsclient.Cell{Null: true, Kind: kind}
	}
}

// formatTemporal renders a time.Time into the canonical text
// internal/convert's layouts parse: a space-separated date/time with no
// zone for DATE/TIME/DATETIME/DATETIME2, and the same shape with a
// trailing UTC-offset for DATETIMEOFFSET (displayed as-is, never parsed
// back into a struct — SQL_SS_TIMESTAMPOFFSET columns bind as SQL_C_CHAR).
func formatTemporal(kind tdsclient.CellKind, t time.Time) string {
	switch kind {
	case tdsclient.KindDate:
		return t.Format("2006-01-02")
	case tdsclient.KindTime:
		return t.Format("15:04:05.9999999")
	case tdsclient.KindDateTimeOffset:
		return t.Format("2006-01-02 15:04:05.9999999 -07:00")
	default:
		return t.Format("2006-01-02 15:04:05.9999999")
	}
}

// kindFor maps go-mssqldb's DatabaseTypeName() strings to the
// dependency-free CellKind enum internal/tdsclient and internal/
// rowwriter operate on. Unrecognized names fall back to KindStr, which
// streamResultSet scans via sql.NullString, a safe default for a type
// this driver doesn't otherwise recognize.
func kindFor(dbType string) tdsclient.CellKind {
	switch strings.ToUpper(dbType) {
	case "BIT":
		return tdsclient.KindBool
	case "TINYINT":
		return tdsclient.KindU8
	case "SMALLINT":
		return tdsclient.KindI16
	case "INT":
		return tdsclient.KindI32
	case "BIGINT":
		return tdsclient.KindI64
	case "REAL":
		return tdsclient.KindF32
	case "FLOAT":
		return tdsclient.KindF64
	case "NVARCHAR", "NCHAR", "NTEXT":
		return tdsclient.KindWStr
	case "VARCHAR", "CHAR", "TEXT":
		return tdsclient.KindStr
	case "BINARY", "VARBINARY", "IMAGE":
		return tdsclient.KindBytes
	case "DATE":
		return tdsclient.KindDate
	case "TIME":
		return tdsclient.KindTime
	case "DATETIME", "DATETIME2", "SMALLDATETIME":
		return tdsclient.KindDateTime
	case "DATETIMEOFFSET":
		return tdsclient.KindDateTimeOffset
	case "DECIMAL", "NUMERIC", "MONEY", "SMALLMONEY":
		return tdsclient.KindDecimal
	case "UNIQUEIDENTIFIER":
		return tdsclient.KindGUID
	default:
		return tdsclient.KindStr
	}
}
