package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type ServerConfig struct {
	Addr              string
	H2C               bool
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Server accepts connections and serves each one on its own goroutine.
// A failing Accept is logged and retried; it never stops the server.
type Server struct {
	config  ServerConfig
	handler http.Handler
}

func NewServer(config ServerConfig, handler http.Handler) *Server {
	return &Server{
		config:  config,
		handler: handler,
	}
}

// ListenAndServe binds the configured address and serves until ctx is done.
// A bind failure is returned immediately.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}

	slog.Info("HTTP server listening", "url", "http://"+ln.Addr().String())

	return s.Serve(ctx, ln)
}

// Serve serves connections from ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout and returns once in-flight requests
// are done. It takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	handler := s.handler
	if s.config.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		ConnState: func(conn net.Conn, state http.ConnState) {
			slog.Debug("connection state", "remote", conn.RemoteAddr().String(), "state", state.String())
		},
	}

	done := make(chan struct{})
	shutdownDone := make(chan error, 1)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.Error("server shutdown error", "err", err)
			_ = server.Close()
		}
		shutdownDone <- err
	}()

	err := server.Serve(&acceptListener{Listener: ln})
	if errors.Is(err, http.ErrServerClosed) {
		// Serve returns as soon as Shutdown starts; wait for in-flight
		// requests to drain.
		<-shutdownDone
		return nil
	}
	close(done)

	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.config.ShutdownTimeout <= 0 {
		return 30 * time.Second
	}
	return s.config.ShutdownTimeout
}

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// acceptListener keeps accepting after transient failures such as EMFILE.
// Only a closed listener ends the loop.
type acceptListener struct {
	net.Listener
}

func (l *acceptListener) Accept() (net.Conn, error) {
	var delay time.Duration
	for {
		conn, err := l.Listener.Accept()
		if err == nil {
			return conn, nil
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, err
		}

		if delay == 0 {
			delay = minAcceptDelay
		} else {
			delay = min(delay*2, maxAcceptDelay)
		}

		slog.Warn("failed to accept connection", "err", err, "retry_in", delay)
		time.Sleep(delay)
	}
}
