package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

const (
	AppName  = "taskapp"
	fileName = AppName + ".config.yaml"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	LogLevelOff = "off"
)

type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	JWT       JWTConfig       `koanf:"jwt"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type DatabaseConfig struct {
	Driver  string `koanf:"driver"`
	DSN     string `koanf:"dsn"`
	Migrate bool   `koanf:"migrate"`
	SQLLog  bool   `koanf:"sql_log"`
	// ConnectRetries bounds the PostgreSQL start-up ping attempts.
	ConnectRetries uint64 `koanf:"connect_retries"`
}

type ServerConfig struct {
	Host   string   `koanf:"host"`
	Cors   []string `koanf:"cors"`
	Static string   `koanf:"static"`
}

type JWTConfig struct {
	Issuer string `koanf:"issuer"`
	Secret string `koanf:"secret"`
	// Expire is the token lifetime in seconds.
	Expire int64 `koanf:"expire"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type TelemetryConfig struct {
	ServiceName  string `koanf:"service_name"`
	MetricsHost  string `koanf:"metrics_host"`
	OTLPEndpoint string `koanf:"otlp_endpoint"`
}

// Default returns the configuration used when nothing overrides it. The JWT
// secret is random, so tokens do not survive a restart unless one is set.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			DSN:            "file:data.db?_busy_timeout=5000&_txlock=immediate",
			Migrate:        true,
			ConnectRetries: 5,
		},
		Server: ServerConfig{
			Host: "0.0.0.0:3000",
		},
		JWT: JWTConfig{
			Issuer: AppName,
			Secret: uuid.NewString(),
			Expire: 86400,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: AppName,
		},
	}
}

// SearchPaths lists the files tried, in order, when no --config is given.
func SearchPaths() []string {
	paths := []string{filepath.Join("/etc", AppName, fileName)}

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), fileName))
	}

	return append(paths, fileName)
}

// Load merges defaults, the first config file found and the flags the user
// changed, in that order. An explicit path must exist.
func Load(path string, flags *pflag.FlagSet) (*Config, []string, error) {
	k := koanf.New(".")

	source, err := loadFile(k, path)
	if err != nil {
		return nil, nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, nil, oops.Code("CONFIG_FLAGS_INVALID").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, nil, oops.Code("CONFIG_INVALID").With("file", source).Wrap(err)
	}

	if flags != nil {
		applyNegations(cfg, flags)
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}

	return cfg, warnings, nil
}

func loadFile(k *koanf.Koanf, path string) (string, error) {
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return "", oops.Code("CONFIG_FILE_INVALID").With("file", path).Wrap(err)
		}
		return path, nil
	}

	for _, candidate := range SearchPaths() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := k.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return "", oops.Code("CONFIG_FILE_INVALID").With("file", candidate).Wrap(err)
		}
		return candidate, nil
	}

	return "", nil
}

var flagKeys = map[string]string{
	"driver":       "database.driver",
	"dsn":          "database.dsn",
	"sql-log":      "database.sql_log",
	"host":         "server.host",
	"cors":         "server.cors",
	"static-dir":   "server.static",
	"jwt-issuer":   "jwt.issuer",
	"jwt-secret":   "jwt.secret",
	"jwt-expire":   "jwt.expire",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"metrics-host": "telemetry.metrics_host",
	"otlp":         "telemetry.otlp_endpoint",
}

// flagKey maps changed flags onto config keys. Unchanged flags are skipped so
// their defaults never shadow the file.
func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return "", nil
		}

		switch f.Value.Type() {
		case "stringSlice":
			values, _ := flags.GetStringSlice(f.Name)
			return key, values
		case "int64":
			value, _ := flags.GetInt64(f.Name)
			return key, value
		case "bool":
			value, _ := flags.GetBool(f.Name)
			return key, value
		default:
			return key, f.Value.String()
		}
	}
}

func applyNegations(cfg *Config, flags *pflag.FlagSet) {
	if negated(flags, "no-migration") {
		cfg.Database.Migrate = false
	}
	if negated(flags, "no-cors") {
		cfg.Server.Cors = nil
	}
	if negated(flags, "no-static") {
		cfg.Server.Static = ""
	}
	if negated(flags, "no-log") {
		cfg.Log.Level = LogLevelOff
	}
}

func negated(flags *pflag.FlagSet, name string) bool {
	value, err := flags.GetBool(name)
	return err == nil && value
}

var logLevels = []string{"trace", "debug", "info", "warn", "error", LogLevelOff}

// Validate normalises recoverable problems and reports them as warnings.
// Anything that would leave the service unusable is an error.
func (c *Config) Validate() ([]string, error) {
	var warnings []string

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !slices.Contains(logLevels, c.Log.Level) {
		warnings = append(warnings, "Unknown log level '"+c.Log.Level+"'. Logging will be disabled.")
		c.Log.Level = LogLevelOff
	}

	if c.Server.Static != "" {
		if info, err := os.Stat(c.Server.Static); err != nil || !info.IsDir() {
			warnings = append(warnings, "Static directory '"+c.Server.Static+"' does not exist. Static serving will be disabled.")
			c.Server.Static = ""
		}
	}

	var errs []error

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, oops.Code("CONFIG_INVALID").With("driver", c.Database.Driver).Errorf("unknown database driver %q", c.Database.Driver))
	}

	if c.Database.DSN == "" {
		errs = append(errs, oops.Code("CONFIG_INVALID").Errorf("database dsn is required"))
	}

	if c.JWT.Expire <= 0 {
		errs = append(errs, oops.Code("CONFIG_INVALID").With("expire", c.JWT.Expire).Errorf("jwt expire must be positive"))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, oops.Code("CONFIG_INVALID").Errorf("jwt secret is required"))
	}

	return warnings, errors.Join(errs...)
}
