package async

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunReturnsJobResult(t *testing.T) {
	var e Executor
	err := e.Run(context.Background(), func(ctx context.Context) error {
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestRunPropagatesJobError(t *testing.T) {
	var e Executor
	want := errors.New("boom")
	err := e.Run(context.Background(), func(ctx context.Context) error {
		return want
	}, nil)
	if err != want {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestRunSerializesAgainstSameExecutor(t *testing.T) {
	var e Executor
	start := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		e.Run(context.Background(), func(ctx context.Context) error {
			close(start)
			<-release
			return nil
		}, nil)
		close(done)
	}()

	<-start
	secondStarted := make(chan struct{})
	go func() {
		e.Run(context.Background(), func(ctx context.Context) error {
			close(secondStarted)
			return nil
		}, nil)
	}()

	select {
	case <-secondStarted:
		t.Fatal("second job ran before the first finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-done
	<-secondStarted
}

func TestRunHonorsContextCancellation(t *testing.T) {
	var e Executor
	ctx, cancel := context.WithCancel(context.Background())
	blocking := make(chan struct{})
	cancelHookCalled := make(chan struct{})

	go func() {
		e.Run(ctx, func(ctx context.Context) error {
			<-blocking
			return nil
		}, func() {
			close(cancelHookCalled)
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-cancelHookCalled:
	case <-time.After(time.Second):
		t.Fatal("expected cancelHook to be invoked")
	}
	close(blocking)
}

func TestRunAfterCloseReturnsErrClosed(t *testing.T) {
	var e Executor
	e.Close()
	err := e.Run(context.Background(), func(ctx context.Context) error { return nil }, nil)
	if err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
