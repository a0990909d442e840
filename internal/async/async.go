// Package async bridges Furball's synchronous ODBC ABI surface onto the
// asynchronous TDS client it drives: the driver presents
// a blocking call-and-return ABI to the driver manager while the
// underlying TDS client is built around callbacks; a single background
// worker executes one TDS operation at a time and the calling ABI thread
// blocks on it, so two ODBC calls against the same statement can never
// race on the wire."
//
// It is grounded on alexbrainman/odbc's stmt_go18.go sqlExecuteAsync:
// that function starts the blocking ODBC call on a goroutine, returns an
// error channel, and on context cancellation calls SQLCancel, waits on a
// WaitGroup, and closes the statement and connection out from under the
// caller. This package generalizes that one-off pattern into a reusable
// executor: Executor.Run starts its worker goroutine once (sync.Once,
// mirroring the idempotent-start alexbrainman/odbc's package-level drv
// singleton relies on implicitly) and every subsequent Run submits a job
// to it, blocking the caller until the job finishes or ctx is canceled.
package async

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Job is one unit of work submitted to an Executor: a TDS operation
// (connect, execute a batch, fetch) that the executor's worker goroutine
// runs to completion or abandons on cancellation.
type Job func(ctx context.Context) error

// Executor runs jobs one at a time on a single background goroutine,
// started lazily on first use. Every SQL Server TDS session the driver
// manages goes through its own Executor (owned by internal/conn), so
// statements sharing a connection are serialized the way a single TDS
// socket requires, while separate connections run concurrently.
type Executor struct {
	once   sync.Once
	jobs   chan jobRequest
	quit   chan struct{}
	closed atomic.Bool
}

type jobRequest struct {
	job  Job
	done chan error
}

func (e *Executor) start() {
	e.jobs = make(chan jobRequest)
	e.quit = make(chan struct{})
	go e.loop()
}

func (e *Executor) loop() {
	for {
		select {
		case req := <-e.jobs:
			req.done <- req.job(context.Background())
		case <-e.quit:
			return
		}
	}
}

// Run submits job to the executor and blocks until it completes or ctx
// is canceled. If ctx is canceled first, Run returns ctx.Err()
// immediately; the job keeps running on the worker goroutine to
// completion (its result is discarded), matching alexbrainman/odbc's
// "mark the connection bad, cancel and close in the background" policy
// of not trusting a connection whose in-flight call was abandoned.
//
// cancelHook, if non-nil, is invoked exactly once when ctx is canceled
// after the job has been handed to the worker and before it finishes —
// the caller's chance to do the TDS equivalent of alexbrainman/odbc's
// api.SQLCancel. A cancellation before the hand-off returns ctx.Err()
// without calling it.
func (e *Executor) Run(ctx context.Context, job Job, cancelHook func()) error {
	e.once.Do(e.start)
	if e.closed.Load() {
		return ErrClosed
	}

	req := jobRequest{job: job, done: make(chan error, 1)}
	select {
	case e.jobs <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.quit:
		return ErrClosed
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		if cancelHook != nil {
			cancelHook()
		}
		return ctx.Err()
	}
}

// Close stops accepting new jobs: a Run still waiting to hand its job to
// the worker returns ErrClosed. A job already running is not interrupted.
func (e *Executor) Close() {
	e.once.Do(e.start)
	if e.closed.Swap(true) {
		return
	}
	close(e.quit)
}

// ErrClosed is returned by Run once Close has been called.
var ErrClosed = closedError{}

type closedError struct{}

func (closedError) Error() string { return "async: executor is closed" }
