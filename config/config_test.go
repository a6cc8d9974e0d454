package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/softserve/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root.Path)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.IP)
	assert.Equal(t, 5001, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.IndexConvenience)
	assert.True(t, cfg.HTTP.H2C)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 120*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "ftp", cfg.FTP.Protocol)
	assert.Equal(t, "127.0.0.1", cfg.FTP.IP)
	assert.Equal(t, 5002, cfg.FTP.Port)
	assert.Equal(t, 900, cfg.FTP.IdleTimeout)
	assert.Empty(t, cfg.FTP.PassivePorts)
	assert.Equal(t, 5*time.Second, cfg.TFTP.Timeout)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.IsProd())
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := writeConfig(t, "sfs.yaml", `
root:
  path: /srv/www
http:
  ip: 0.0.0.0
  port: 8080
  index_convenience: false
  h2c: false
  idle_timeout: 30s
ftp:
  protocol: tftp
  ip: "::1"
  port: 2121
  passive_ports: 30000-30100
tftp:
  timeout: 2s
log:
  level: debug
env: prod
`)

	cfg, err := config.Load([]string{configPath}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www", cfg.Root.Path)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.HTTP.IndexConvenience)
	assert.False(t, cfg.HTTP.H2C)
	assert.Equal(t, 30*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, "tftp", cfg.FTP.Protocol)
	assert.Equal(t, "[::1]:2121", cfg.FTP.Addr())
	assert.Equal(t, "30000-30100", cfg.FTP.PassivePorts)
	assert.Equal(t, 2*time.Second, cfg.TFTP.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.IsProd())
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	basePath := writeConfig(t, "base.yaml", `
root:
  path: /srv/base
http:
  port: 8000
log:
  level: warn
`)
	overridePath := writeConfig(t, "override.yaml", `
http:
  port: 9000
`)

	// Load with merge (later files override earlier)
	cfg, err := config.Load([]string{basePath, overridePath}, nil, nil)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9000, cfg.HTTP.Port)

	// Preserved values from base
	assert.Equal(t, "/srv/base", cfg.Root.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load([]string{filepath.Join(t.TempDir(), "nope.yaml")}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.HTTP.Port)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port out of range", content: "http:\n  port: 99999\n"},
		{name: "invalid ip", content: "ftp:\n  ip: not-an-ip\n"},
		{name: "http is not an ftp protocol", content: "ftp:\n  protocol: http\n"},
		{name: "negative timeout", content: "tftp:\n  timeout: -1s\n"},
		{name: "invalid log level", content: "log:\n  level: loud\n"},
		{name: "invalid env", content: "env: staging\n"},
		{name: "empty root", content: "root:\n  path: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, "sfs.yaml", tt.content)

			_, err := config.Load([]string{configPath}, nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoad_WithCORS(t *testing.T) {
	configPath := writeConfig(t, "sfs.yaml", `
cors:
  enabled: true
  allowed_origins:
    - https://example.com
    - https://app.example.com
  allowed_methods:
    - GET
  allowed_headers:
    - Content-Type
  max_age: 600
`)

	cfg, err := config.Load([]string{configPath}, nil, nil)
	require.NoError(t, err)

	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://example.com", "https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, 600, cfg.CORS.MaxAge)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("SFS_HTTP_PORT", "9090")
	t.Setenv("SFS_ROOT_PATH", "/srv/env")
	t.Setenv("SFS_FTP_PASSIVE_PORTS", "40000-40010")

	cfg, err := config.Load(nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/srv/env", cfg.Root.Path)
	assert.Equal(t, "40000-40010", cfg.FTP.PassivePorts)
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("port", "p", 0, "")
	flags.StringP("ip", "i", "", "")
	flags.String("log-level", "", "")
	flags.Bool("no-index-convenience", false, "")
	return flags
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SFS_HTTP_PORT", "9090")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"-p", "7000", "--ip", "0.0.0.0", "--log-level", "debug"}))

	cfg, err := config.Load(nil, flags, config.HTTPFlagKeys)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.IP)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5002, cfg.FTP.Port)
}

func TestLoad_FTPFlagKeys(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--port", "2121"}))

	cfg, err := config.Load(nil, flags, config.FTPFlagKeys)
	require.NoError(t, err)

	assert.Equal(t, 2121, cfg.FTP.Port)
	assert.Equal(t, 5001, cfg.HTTP.Port)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	configPath := writeConfig(t, "sfs.yaml", "http:\n  port: 8080\n")

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load([]string{configPath}, flags, config.HTTPFlagKeys)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.IndexConvenience)
}

func TestLoad_NoIndexConvenience(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--no-index-convenience"}))

	cfg, err := config.Load(nil, flags, config.HTTPFlagKeys)
	require.NoError(t, err)

	assert.False(t, cfg.HTTP.IndexConvenience)
}

func TestFromContext_Missing(t *testing.T) {
	_, err := config.FromContext(context.Background())
	assert.Error(t, err)
}
