// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeServer records lifecycle calls. ListenAndServe returns listenErr at
// once when set, otherwise blocks until Shutdown.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	listens     atomic.Int32
	shutdowns   atomic.Int32
	started     chan struct{}
	stopped     chan struct{}
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}, 1), stopped: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stopped)
	}
	return f.shutdownErr
}

func (f *fakeServer) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe was not called")
	}
}

// serveAsync runs svc.Serve in the background and returns its result channel.
func serveAsync(ctx context.Context, svc *HTTPServerService) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	return errCh
}

func waitResult(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
		return nil
	}
}

func TestHTTPServerService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

func TestNewHTTPServerService(t *testing.T) {
	tests := []struct {
		name    string
		server  HTTPServer
		timeout time.Duration
		want    time.Duration
		wantStr string
	}{
		{"explicit timeout", newFakeServer(), 3 * time.Second, 3 * time.Second, "http-server"},
		{"zero timeout", newFakeServer(), 0, 10 * time.Second, "http-server"},
		{"negative timeout", newFakeServer(), -time.Second, 10 * time.Second, "http-server"},
		{"named by address", &http.Server{Addr: ":3857"}, time.Second, time.Second, "http-server(:3857)"},
		{"http.Server without address", &http.Server{}, time.Second, time.Second, "http-server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHTTPServerService(tt.server, tt.timeout)
			if svc.server != tt.server {
				t.Error("server not assigned")
			}
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != tt.wantStr {
				t.Errorf("String() = %q, want %q", svc.String(), tt.wantStr)
			}
		})
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Run("cancellation drains the server", func(t *testing.T) {
		srv := newFakeServer()
		ctx, cancel := context.WithCancel(context.Background())
		errCh := serveAsync(ctx, NewHTTPServerService(srv, time.Second))

		srv.waitStarted(t)
		cancel()

		if err := waitResult(t, errCh); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if srv.listens.Load() != 1 || srv.shutdowns.Load() != 1 {
			t.Errorf("listens=%d shutdowns=%d, want 1/1", srv.listens.Load(), srv.shutdowns.Load())
		}
	})

	t.Run("listen failure is returned for a restart", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		srv := newFakeServer()
		srv.listenErr = bindErr

		err := NewHTTPServerService(srv, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want wrapped bind error", err)
		}
		if srv.shutdowns.Load() != 0 {
			t.Error("Shutdown should not be called after a listen failure")
		}
	})

	t.Run("shutdown failure is returned", func(t *testing.T) {
		shutdownErr := errors.New("shutdown timeout")
		srv := newFakeServer()
		srv.shutdownErr = shutdownErr
		ctx, cancel := context.WithCancel(context.Background())
		errCh := serveAsync(ctx, NewHTTPServerService(srv, time.Second))

		srv.waitStarted(t)
		cancel()

		if err := waitResult(t, errCh); !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	})
}

func TestHTTPServerService_RealServer(t *testing.T) {
	// Reserve a free port, then release it for the server.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	server := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
		ReadHeaderTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveAsync(ctx, NewHTTPServerService(server, time.Second))

	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err = http.Get("http://" + addr + "/")
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never answered: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	cancel()
	if err := waitResult(t, errCh); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	srv := newFakeServer()
	sup := suture.New("test-api", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(srv, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := sup.ServeBackground(ctx)

	srv.waitStarted(t)
	cancel()
	<-done

	if srv.shutdowns.Load() != 1 {
		t.Errorf("shutdowns = %d, want 1", srv.shutdowns.Load())
	}
}
