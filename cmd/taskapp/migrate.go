package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending schema migrations to the configured database and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Database.Migrate = true

	cmd.Println("Running migrations...")
	_, closeStore, err := openStore(cmd.Context(), cfg.Database, zap.NewNop())
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("driver", cfg.Database.Driver).Wrap(err)
	}
	closeStore()

	cmd.Println("Migrations completed successfully")
	return nil
}
