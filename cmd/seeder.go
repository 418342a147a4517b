package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/payroll-report/internal/roster"
	rosterPostgres "github.com/frahmantamala/payroll-report/internal/roster/postgres"
	"github.com/frahmantamala/payroll-report/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedFile  string
	seedClear bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the roster tables from a JSON or YAML file",
	Long:  `Load a JSON or YAML record file and insert its units and employees into the configured database. Units that already exist are skipped.`,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := getStringFlag(seedFile, cfg.Source.Path)
	ctx := context.Background()

	loaded := roster.NewFileLoader(path).Load(ctx)
	if !loaded.OK() {
		return fmt.Errorf("failed to read seed file %s: %w", path, loaded.Err)
	}

	gormDB, err := rosterPostgres.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	seeder := roster.NewSeeder(rosterPostgres.NewRosterRepository(gormDB), logger.LoggerWrapper())
	summary, err := seeder.Seed(ctx, loaded.Dataset, seedClear)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d unit(s) from %s, skipped %d existing\n", summary.Created, path, summary.Skipped)
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "record file to seed from (defaults to source.path)")
	seedCmd.Flags().BoolVar(&seedClear, "clear", false, "delete all units and employees before seeding")
}
