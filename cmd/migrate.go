package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/frahmantamala/payroll-report/db"
	rosterPostgres "github.com/frahmantamala/payroll-report/internal/roster/postgres"
	"github.com/frahmantamala/payroll-report/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the roster schema migrations for the configured database driver",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory (defaults to the embedded migrations)")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	dbConn, err := rosterPostgres.OpenMigrationDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer dbConn.Close()

	var fsys fs.FS = db.Migrations
	dir := ""
	if migrateDir != "" {
		fsys = os.DirFS(migrateDir)
		dir = "."
	}

	if err := rosterPostgres.Migrate(ctx, dbConn.DB, cfg.Database.Driver, fsys, dir, migrateRollback); err != nil {
		return err
	}

	version, err := rosterPostgres.SchemaVersion(ctx, dbConn)
	if err != nil {
		return err
	}

	logger.LoggerWrapper().Info("migrations applied",
		"driver", cfg.Database.Driver,
		"rollback", migrateRollback,
		"version", version)
	return nil
}
