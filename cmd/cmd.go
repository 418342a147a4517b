package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/roster"
	rosterPostgres "github.com/frahmantamala/payroll-report/internal/roster/postgres"
	"github.com/frahmantamala/payroll-report/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath     string
	sourceOverride string
)

var rootCmd = &cobra.Command{
	Use:           "payroll-report",
	Short:         "Payroll Report",
	Long:          `Computes monthly salaries with overtime, aggregates statistics per unit and company-wide, and exports them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// Check if we're running in Docker environment
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		applyOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
		return cfg, nil
	}

	// Load configuration from file (development); every key has a default
	v := viper.New()
	for key, value := range internal.Defaults {
		v.SetDefault(key, value)
	}
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	return &cfg, nil
}

func applyOverrides(cfg *internal.Config) {
	if sourceOverride != "" {
		cfg.Source.Kind = internal.SourceFile
		cfg.Source.Path = sourceOverride
	}
}

// newLoader builds the configured record source. The returned close function
// releases the database connection, if any.
func newLoader(cfg *internal.Config) (payroll.Loader, func(), error) {
	if cfg.Source.Kind != internal.SourceDatabase {
		return roster.NewFileLoader(cfg.Source.Path), func() {}, nil
	}

	db, err := rosterPostgres.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	repo := rosterPostgres.NewRosterRepository(db)
	loader := roster.NewDatabaseLoader(repo, "database:"+cfg.Database.Driver)
	return loader, func() { _ = sqlDB.Close() }, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", ".", "directory containing config.yml")
	rootCmd.PersistentFlags().StringVar(&sourceOverride, "source", "", "read records from this JSON/YAML file (overrides config)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
