package ftp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	ftpserver "github.com/fclairamb/ftpserverlib"
	"github.com/spf13/afero"

	"github.com/sagarc03/softserve/filesystem"
)

// Banner is sent to every client on connect.
const Banner = "softserve read-only FTP"

type Config struct {
	Addr string
	// IdleTimeout is in seconds; 0 keeps the library default.
	IdleTimeout int
	// PassivePorts is an inclusive "start-end" range; empty lets the OS pick.
	PassivePorts string
}

// Driver is the ftpserverlib main driver. Every user is accepted and gets
// the same read-only view of the root.
type Driver struct {
	settings *ftpserver.Settings
	fs       afero.Fs
}

func NewDriver(root *filesystem.Root, cfg Config) (*Driver, error) {
	if root == nil {
		return nil, errors.New("new driver: root is nil")
	}

	settings := &ftpserver.Settings{
		ListenAddr:  cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
	}

	if cfg.PassivePorts != "" {
		ports, err := ParsePortRange(cfg.PassivePorts)
		if err != nil {
			return nil, fmt.Errorf("new driver: %w", err)
		}
		settings.PassiveTransferPortRange = ports
	}

	return &Driver{
		settings: settings,
		fs:       NewFs(root),
	}, nil
}

func (d *Driver) GetSettings() (*ftpserver.Settings, error) {
	return d.settings, nil
}

func (d *Driver) ClientConnected(cc ftpserver.ClientContext) (string, error) {
	slog.Info("ftp client connected", "id", cc.ID(), "remote", cc.RemoteAddr().String())
	return Banner, nil
}

func (d *Driver) ClientDisconnected(cc ftpserver.ClientContext) {
	slog.Info("ftp client disconnected", "id", cc.ID(), "remote", cc.RemoteAddr().String())
}

func (d *Driver) AuthUser(_ ftpserver.ClientContext, user, _ string) (ftpserver.ClientDriver, error) {
	slog.Debug("ftp login", "user", user)
	return d.fs, nil
}

func (d *Driver) GetTLSConfig() (*tls.Config, error) {
	return nil, errors.New("tls is not supported")
}

// ParsePortRange parses an inclusive "start-end" port range.
func ParsePortRange(s string) (*ftpserver.PortRange, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return nil, fmt.Errorf("invalid port range %q: expected start-end", s)
	}

	start, err := parsePort(startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port range %q: %w", s, err)
	}
	end, err := parsePort(endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port range %q: %w", s, err)
	}
	if start > end {
		return nil, fmt.Errorf("invalid port range %q: start is after end", s)
	}

	return &ftpserver.PortRange{Start: start, End: end}, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

// Serve listens on cfg.Addr and serves root until ctx is done.
// A bind failure is returned immediately.
func Serve(ctx context.Context, root *filesystem.Root, cfg Config) error {
	driver, err := NewDriver(root, cfg)
	if err != nil {
		return err
	}

	server := ftpserver.NewFtpServer(driver)
	if err := server.Listen(); err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	slog.Info("FTP server listening", "addr", cfg.Addr, "root", root.Path())

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}

		slog.Info("shutting down ftp server...")
		if err := server.Stop(); err != nil {
			slog.Error("ftp server shutdown error", "err", err)
		}
	}()

	err = server.Serve()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
