package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapp/pkg/errutil"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))

	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:data.db?_busy_timeout=5000&_txlock=immediate", cfg.Database.DSN)
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Host)
	assert.Empty(t, cfg.Server.Cors)
	assert.Equal(t, AppName, cfg.JWT.Issuer)
	assert.Equal(t, int64(86400), cfg.JWT.Expire)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.NotEqual(t, cfg.JWT.Secret, Default().JWT.Secret)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  dsn: postgres://localhost/tasks
  migrate: false
server:
  host: 127.0.0.1:8080
  cors:
    - http://localhost:5173
jwt:
  issuer: tasks
  secret: file-secret
  expire: 600
log:
  level: DEBUG
`)

	cfg, warnings, err := Load(path, nil)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/tasks", cfg.Database.DSN)
	assert.False(t, cfg.Database.Migrate)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.Cors)
	assert.Equal(t, JWTConfig{Issuer: "tasks", Secret: "file-secret", Expire: 600}, cfg.JWT)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, AppName, cfg.Telemetry.ServiceName)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1:8080
  cors: ["http://a.example", "http://b.example"]
jwt:
  issuer: tasks
  secret: file-secret
`)
	flags := newFlags(t, "--host", "0.0.0.0:9000", "--jwt-expire", "60", "--no-cors", "--no-migration")

	cfg, _, err := Load(path, flags)

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Host)
	assert.Equal(t, int64(60), cfg.JWT.Expire)
	assert.Empty(t, cfg.Server.Cors)
	assert.False(t, cfg.Database.Migrate)

	// unchanged flags leave the file alone
	assert.Equal(t, "tasks", cfg.JWT.Issuer)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
}

func TestLoad_FlagsOnly(t *testing.T) {
	dir := t.TempDir()
	flags := newFlags(t,
		"--driver", "postgres",
		"--dsn", "postgres://db/tasks",
		"--cors", "http://a.example,http://b.example",
		"--static-dir", dir,
		"--jwt-secret", "cli-secret",
		"--no-log",
	)

	cfg, warnings, err := Load(writeConfig(t, "{}"), flags)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://db/tasks", cfg.Database.DSN)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.Cors)
	assert.Equal(t, dir, cfg.Server.Static)
	assert.Equal(t, "cli-secret", cfg.JWT.Secret)
	assert.Equal(t, LogLevelOff, cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)

	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_FILE_INVALID")
}

func TestValidate(t *testing.T) {
	t.Run("unknown log level disables logging", func(t *testing.T) {
		cfg := Default()
		cfg.Log.Level = "chatty"

		warnings, err := cfg.Validate()

		require.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Equal(t, LogLevelOff, cfg.Log.Level)
	})

	t.Run("missing static dir disables static serving", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Static = filepath.Join(t.TempDir(), "missing")

		warnings, err := cfg.Validate()

		require.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Empty(t, cfg.Server.Static)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Driver = "mysql"

		_, err := cfg.Validate()

		assert.ErrorContains(t, err, `unknown database driver "mysql"`)
	})

	t.Run("non positive expire", func(t *testing.T) {
		cfg := Default()
		cfg.JWT.Expire = 0

		_, err := cfg.Validate()

		assert.ErrorContains(t, err, "jwt expire must be positive")
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Driver = "mysql"
		cfg.JWT.Expire = -1

		_, err := cfg.Validate()

		assert.ErrorContains(t, err, "unknown database driver")
		assert.ErrorContains(t, err, "jwt expire must be positive")
	})
}
