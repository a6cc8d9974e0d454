package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	softhttp "github.com/sagarc03/softserve/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for sfs.
type Config struct {
	Root RootConfig          `mapstructure:"root" yaml:"root"`
	HTTP HTTPConfig          `mapstructure:"http" yaml:"http"`
	FTP  FTPConfig           `mapstructure:"ftp" yaml:"ftp"`
	TFTP TFTPConfig          `mapstructure:"tftp" yaml:"tftp"`
	CORS softhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log  LogConfig           `mapstructure:"log" yaml:"log"`
	Env  string              `mapstructure:"env" yaml:"env" validate:"required,oneof=dev development prod production"`
}

// RootConfig holds the served directory.
type RootConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	IP                string        `mapstructure:"ip" yaml:"ip" validate:"required,ip"`
	Port              int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	IndexConvenience  bool          `mapstructure:"index_convenience" yaml:"index_convenience"`
	H2C               bool          `mapstructure:"h2c" yaml:"h2c"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout" validate:"min=0"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=0"`
}

// Addr returns the host:port the HTTP server binds.
func (c HTTPConfig) Addr() string {
	return joinHostPort(c.IP, c.Port)
}

// FTPConfig holds FTP and TFTP listener configuration. Both protocols bind
// the same address; only one runs per process.
type FTPConfig struct {
	// Protocol selects the listener started by the ftp command.
	Protocol     string `mapstructure:"protocol" yaml:"protocol" validate:"required,oneof=ftp tftp"`
	IP           string `mapstructure:"ip" yaml:"ip" validate:"required,ip"`
	Port         int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	IdleTimeout  int    `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
	PassivePorts string `mapstructure:"passive_ports" yaml:"passive_ports"`
}

// Addr returns the host:port the FTP or TFTP server binds.
func (c FTPConfig) Addr() string {
	return joinHostPort(c.IP, c.Port)
}

// TFTPConfig holds TFTP transfer configuration.
type TFTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// HTTPFlagKeys maps the flags of the http command to viper keys.
var HTTPFlagKeys = map[string]string{
	"ip":        "http.ip",
	"port":      "http.port",
	"log-level": "log.level",
}

// FTPFlagKeys maps the flags of the ftp command to viper keys.
var FTPFlagKeys = map[string]string{
	"ip":        "ftp.ip",
	"port":      "ftp.port",
	"log-level": "log.level",
}

// invertedFlags are boolean flags that set the negation of their key.
var invertedFlags = map[string]string{
	"no-index-convenience": "http.index_convenience",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Only bind if the flag was explicitly set
		if !f.Changed {
			return
		}

		if key, ok := invertedFlags[f.Name]; ok {
			set, err := flags.GetBool(f.Name)
			if err == nil {
				v.Set(key, !set)
			}
			return
		}

		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := keys[viperKey]; ok {
			viperKey = mapped
		}
		_ = v.BindPFlag(viperKey, f)
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("root.path", ".")

	v.SetDefault("http.ip", "127.0.0.1")
	v.SetDefault("http.port", 5001)
	v.SetDefault("http.index_convenience", true)
	v.SetDefault("http.h2c", true)
	v.SetDefault("http.read_header_timeout", "10s")
	v.SetDefault("http.idle_timeout", "120s")
	v.SetDefault("http.shutdown_timeout", "30s")

	v.SetDefault("ftp.protocol", "ftp")
	v.SetDefault("ftp.ip", "127.0.0.1")
	v.SetDefault("ftp.port", 5002)
	v.SetDefault("ftp.idle_timeout", 900) // seconds
	v.SetDefault("ftp.passive_ports", "")

	v.SetDefault("tftp.timeout", "5s")

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("env", "dev")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
//   - keys: flag name to viper key mapping for the running command (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet, keys map[string]string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("sfs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("SFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags, keys)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// IsProd reports whether the configured environment is production.
func (c *Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

func joinHostPort(ip string, port int) string {
	return net.JoinHostPort(ip, strconv.Itoa(port))
}
