package tftp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	tftplib "github.com/pin/tftp/v3"

	"github.com/sagarc03/softserve"
)

type Resolver interface {
	Resolve(ctx context.Context, requestPath string) (softserve.Outcome, error)
}

type Config struct {
	Addr string
	// Timeout is the per-packet retransmission timeout; 0 keeps the
	// library default.
	Timeout time.Duration
}

// Server answers read requests from a Resolver.
type Server struct {
	config   Config
	resolver Resolver
}

func NewServer(config Config, resolver Resolver) *Server {
	return &Server{
		config:   config,
		resolver: resolver,
	}
}

// ListenAndServe binds the configured UDP address and serves until ctx is
// done. A bind failure is returned immediately.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}

	slog.Info("TFTP server listening", "addr", conn.LocalAddr().String())

	return s.Serve(ctx, conn)
}

// Serve answers read requests arriving on conn until ctx is done. It takes
// ownership of conn.
func (s *Server) Serve(ctx context.Context, conn *net.UDPConn) error {
	defer func() { _ = conn.Close() }()

	// Canceled before anything was served.
	if ctx.Err() != nil {
		return nil
	}

	server := tftplib.NewServer(func(filename string, rf io.ReaderFrom) error {
		return s.handleRead(ctx, filename, rf)
	}, nil)
	if s.config.Timeout > 0 {
		server.SetTimeout(s.config.Timeout)
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}

		slog.Info("shutting down tftp server...")
		server.Shutdown()
	}()

	err := server.Serve(conn)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

// sizer is implemented by outgoing transfers that can advertise tsize.
type sizer interface {
	SetSize(n int64)
}

func (s *Server) handleRead(ctx context.Context, filename string, rf io.ReaderFrom) error {
	requestPath := filename
	if !strings.HasPrefix(requestPath, "/") {
		requestPath = "/" + requestPath
	}

	out, err := s.resolver.Resolve(ctx, requestPath)
	if err != nil {
		slog.Error("tftp read failed", "path", filename, "error", err)
		return softserve.ErrInternal
	}
	if out.Kind != softserve.OutcomeStream {
		slog.Warn("tftp read", "path", filename, "status", out.Kind.String())
		return fmt.Errorf("%s: %w", filename, softserve.ErrNotFound)
	}
	defer func() {
		if err := out.Stream.Close(); err != nil {
			slog.Warn("failed to close file", "path", out.Path, "err", err)
		}
	}()

	if t, ok := rf.(sizer); ok {
		t.SetSize(out.Size)
	}

	n, err := rf.ReadFrom(out.Stream)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Warn("tftp transfer aborted", "path", filename, "bytes", n, "error", err)
		}
		return err
	}

	slog.Info("tftp read", "path", filename, "status", softserve.OutcomeStream.String(), "bytes", n)
	return nil
}
