package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/softserve/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "sfs [path]",
	Short:   "Serve a directory read-only over HTTP, FTP or TFTP",
	Long: `sfs exposes a local directory as a read-only resource.

Without a subcommand it serves HTTP, exactly like "sfs http".
Requests can never reach files outside the served directory.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runHTTP,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable (default: ./sfs.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info, env: SFS_LOG_LEVEL)")

	addHTTPFlags(rootCmd)
}

// loadConfig loads the configuration for the command being run, stores it
// in the command context and sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	configFiles, err := cmd.Flags().GetStringSlice("config")
	if err != nil {
		return err
	}

	keys := config.HTTPFlagKeys
	if cmd.Name() == "ftp" {
		keys = config.FTPFlagKeys
	}

	cfg, err := config.Load(configFiles, cmd.Flags(), keys)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(args) > 0 {
		cfg.Root.Path = args[0]
	}

	setupLogging(cfg)
	cmd.SetContext(config.WithContext(cmd.Context(), cfg))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("sfs failed", "err", err)
		os.Exit(1)
	}
}
