// Package config provides configuration loading and validation for sfs.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SFS_ prefix)
//  4. CLI flags
//
// Without an explicit file, ./sfs.yaml is read when present.
//
// # Usage
//
//	cfg, err := config.Load([]string{"sfs.yaml"}, cmd.Flags(), config.HTTPFlagKeys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// The http and ftp commands both take --ip and --port. The keys argument of
// Load decides which section those flags land in.
//
// # Environment Variables
//
// All config keys map to environment variables with SFS_ prefix:
//   - root.path → SFS_ROOT_PATH
//   - http.port → SFS_HTTP_PORT
//   - ftp.passive_ports → SFS_FTP_PASSIVE_PORTS
//
// # Configuration Structure
//
// The Config struct contains:
//   - Root: the served directory
//   - HTTP: bind address, index convenience, h2c and timeouts
//   - FTP: bind address shared by FTP and TFTP, idle timeout, passive ports
//   - TFTP: transfer timeout
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//   - Env: dev or prod, selects the log handler
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Ports must be 1-65535
//   - IPs must be valid IPv4 or IPv6 addresses
//   - Timeouts must not be negative
//   - Log level must be debug, info, warn, or error
package config
