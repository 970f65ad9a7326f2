package config

import "github.com/spf13/pflag"

// RegisterFlags declares the command line overrides understood by Load.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("driver", "", "database driver (sqlite or postgres)")
	flags.String("dsn", "", "database connection string")
	flags.Bool("sql-log", false, "log every SQL statement (sqlite only)")
	flags.Bool("no-migration", false, "skip schema migrations on start")

	flags.String("host", "", "listen address, e.g. 0.0.0.0:3000")
	flags.StringSlice("cors", nil, "allowed CORS origins, * for any")
	flags.Bool("no-cors", false, "disable CORS headers")
	flags.String("static-dir", "", "directory served for unmatched GET requests")
	flags.Bool("no-static", false, "disable static file serving")

	flags.String("jwt-issuer", "", "JWT issuer")
	flags.String("jwt-secret", "", "JWT signing secret")
	flags.Int64("jwt-expire", 0, "JWT lifetime in seconds")

	flags.String("log-level", "", "trace, debug, info, warn, error or off")
	flags.String("log-format", "", "json or console")
	flags.Bool("no-log", false, "disable logging")

	flags.String("metrics-host", "", "address for the Prometheus /metrics endpoint")
	flags.String("otlp", "", "OTLP gRPC endpoint for traces")
}
