package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeServer struct {
	startErr  error
	stop      chan struct{}
	shutdowns int
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stop: make(chan struct{})}
}

func (s *fakeServer) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stop
	return nil
}

func (s *fakeServer) Shutdown(context.Context) error {
	s.shutdowns++
	if s.startErr == nil {
		close(s.stop)
	}
	return nil
}

// blockingWorker runs until its context is canceled, like the queue worker.
func blockingWorker(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func serveAsync(ctx context.Context, t *testing.T, srv httpServer) <-chan error {
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, blockingWorker, zaptest.NewLogger(t)) }()
	return done
}

func TestServe_StartFailureStopsWorker(t *testing.T) {
	bindErr := errors.New("listen tcp :8080: bind: address already in use")
	srv := newFakeServer(bindErr)

	select {
	case err := <-serveAsync(context.Background(), t, srv):
		require.ErrorIs(t, err, bindErr)
		require.Equal(t, 1, srv.shutdowns)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the server failed to start")
	}
}

func TestServe_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newFakeServer(nil)
	done := serveAsync(ctx, t, srv)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
		require.Equal(t, 1, srv.shutdowns)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
