package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "taskapp/internal/adapter/http"
	"taskapp/internal/adapter/logging"
	"taskapp/internal/adapter/telemetry"
	"taskapp/internal/core/service"
	"taskapp/internal/core/util"
	"taskapp/pkg/auth"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP server. This is also what runs when no subcommand is given.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, warnings, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	for _, warning := range warnings {
		logger.Warn(warning)
	}

	if level, ok := logging.ParseLevel(cfg.Log.Level); !ok || level > zap.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		MetricsHost:    cfg.Telemetry.MetricsHost,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	}, logger.Logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down telemetry", zap.Error(err))
		}
	}()

	uow, closeStore, err := openStore(ctx, cfg.Database, logger.Logger)
	if err != nil {
		logger.Error("Failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return err
	}
	defer closeStore()

	module := service.NewModule(
		uow,
		util.NewArgon2idHasher(0),
		&auth.JWT{Issuer: cfg.JWT.Issuer, Secret: cfg.JWT.Secret, Expire: cfg.JWT.Expire},
		tel.AppMetrics,
		logger.Logger,
	)

	router := httpadapter.NewRouter(
		httpadapter.NewContainer(module),
		httpadapter.RouterConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Cors:        cfg.Server.Cors,
			StaticDir:   cfg.Server.Static,
		},
		tel.AppMetrics,
		logger,
	)

	return httpadapter.NewServer(cfg.Server.Host, router, logger.Logger).Run(ctx)
}
