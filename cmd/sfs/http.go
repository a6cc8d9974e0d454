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
	softhttp "github.com/sagarc03/softserve/http"
)

var httpCmd = &cobra.Command{
	Use:   "http [path]",
	Short: "Serve a directory over HTTP",
	Long: `Serve a directory over HTTP/1.1 (and cleartext HTTP/2).

Every request, whatever its method, is answered with the file at the
request path, or with index.html when the path names a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHTTP,
}

func init() {
	addHTTPFlags(httpCmd)
	rootCmd.AddCommand(httpCmd)
}

func addHTTPFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("port", "p", 5001, "port to listen on (env: SFS_HTTP_PORT)")
	cmd.Flags().StringP("ip", "i", "127.0.0.1", "IP address to bind (env: SFS_HTTP_IP)")
	cmd.Flags().Bool("no-index-convenience", false, "do not serve index.html for directory requests")
}

func runHTTP(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
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

	resolver, err := softserve.NewResolver(root, softserve.ResolverConfig{
		IndexConvenience: cfg.HTTP.IndexConvenience,
	})
	if err != nil {
		return fmt.Errorf("create resolver: %w", err)
	}

	handler := softhttp.NewHandler(&softhttp.HandlerConfig{CORS: cfg.CORS}, resolver)

	server := softhttp.NewServer(softhttp.ServerConfig{
		Addr:              cfg.HTTP.Addr(),
		H2C:               cfg.HTTP.H2C,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}, handler.Router())

	slog.Info("serving directory",
		"protocol", softserve.ProtocolHTTP,
		"root", root.Path(),
		"index_convenience", cfg.HTTP.IndexConvenience,
	)

	return server.ListenAndServe(ctx)
}
