package main

import (
	"github.com/spf13/cobra"

	"taskapp/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command. Without a subcommand it serves HTTP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Account and task service",
		Long: `taskapp serves account signup/signin and task management over HTTP,
backed by SQLite or PostgreSQL.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, []string, error) {
	return config.Load(configFile, cmd.Flags())
}
