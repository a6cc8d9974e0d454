package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/softserve"
	"github.com/sagarc03/softserve/config"
	"github.com/sagarc03/softserve/filesystem"
	"github.com/sagarc03/softserve/ftp"
	"github.com/sagarc03/softserve/tftp"
)

var ftpCmd = &cobra.Command{
	Use:   "ftp [path]",
	Short: "Serve a directory over anonymous FTP or TFTP",
	Long: `Serve a directory over anonymous, read-only FTP.

With --trivial the same address is served over TFTP (UDP) instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFTP,
}

func init() {
	ftpCmd.Flags().IntP("port", "p", 5002, "port to listen on (env: SFS_FTP_PORT)")
	ftpCmd.Flags().StringP("ip", "i", "127.0.0.1", "IP address to bind (env: SFS_FTP_IP)")
	ftpCmd.Flags().BoolP("trivial", "t", false, "serve TFTP instead of FTP (env: SFS_FTP_PROTOCOL=tftp)")

	rootCmd.AddCommand(ftpCmd)
}

func runFTP(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	trivial, _ := cmd.Flags().GetBool("trivial")
	protocol, err := ftpProtocol(cfg, trivial)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := filesystem.NewRoot(cfg.Root.Path)
	if err != nil {
		return fmt.Errorf("open served root: %w", err)
	}
	defer func() { _ = root.Close() }()

	slog.Info("serving directory", "protocol", protocol, "root", root.Path())

	switch protocol {
	case softserve.ProtocolTFTP:
		resolver, err := softserve.NewResolver(root, softserve.ResolverConfig{})
		if err != nil {
			return fmt.Errorf("create resolver: %w", err)
		}

		server := tftp.NewServer(tftp.Config{
			Addr:    cfg.FTP.Addr(),
			Timeout: cfg.TFTP.Timeout,
		}, resolver)
		return server.ListenAndServe(ctx)
	default:
		return ftp.Serve(ctx, root, ftp.Config{
			Addr:         cfg.FTP.Addr(),
			IdleTimeout:  cfg.FTP.IdleTimeout,
			PassivePorts: cfg.FTP.PassivePorts,
		})
	}
}

// ftpProtocol picks the listener for the ftp command. --trivial wins over
// ftp.protocol.
func ftpProtocol(cfg *config.Config, trivial bool) (softserve.Protocol, error) {
	name := cfg.FTP.Protocol
	if trivial {
		name = string(softserve.ProtocolTFTP)
	}

	protocol, err := softserve.ParseProtocol(name)
	if err != nil {
		return "", err
	}
	if protocol == softserve.ProtocolHTTP {
		return "", fmt.Errorf("protocol %s is served by the http command", protocol)
	}

	return protocol, nil
}
