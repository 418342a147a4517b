package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	SourceFile     = "file"
	SourceDatabase = "database"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	NegativeReject    = "reject"
	NegativePropagate = "propagate"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"http_server"`
	Source   SourceConfig   `mapstructure:"source"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
	Payroll  PayrollConfig  `mapstructure:"payroll"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// SourceConfig selects where employee records are read from. Kind "file"
// reads Path (json, yaml or yml); kind "database" uses DatabaseConfig.
type SourceConfig struct {
	Kind string `mapstructure:"kind"`
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type ExportConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type PayrollConfig struct {
	NegativeValues string `mapstructure:"negative_values"`
}

type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults are used for every key missing from config.yml and the environment.
var Defaults = map[string]any{
	"env":                             "development",
	"http_server.port":                8080,
	"http_server.read_header_timeout": 5 * time.Second,
	"http_server.read_timeout":        10 * time.Second,
	"http_server.write_timeout":       30 * time.Second,
	"http_server.idle_timeout":        60 * time.Second,
	"source.kind":                     SourceFile,
	"source.path":                     "lib/data/employee_data.json",
	"database.driver":                 DriverSQLite,
	"database.source":                 "payroll.db",
	"database.max_open_conns":         5,
	"database.max_idle_conns":         2,
	"database.conn_max_lifetime":      30 * time.Minute,
	"export.path":                     "salaries_export.csv",
	"export.format":                   FormatCSV,
	"payroll.negative_values":         NegativeReject,
	"cache.size":                      16,
	"cache.ttl":                       10 * time.Minute,
	"logging.level":                   "info",
	"logging.format":                  "text",
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds the configuration from plain environment variables,
// used for container deployments where no config.yml is shipped.
func LoadConfigFromEnv() *Config {
	return &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Source: SourceConfig{
			Kind: getEnv("SOURCE_KIND", SourceFile),
			Path: getEnv("SOURCE_PATH", "lib/data/employee_data.json"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverPostgres),
			Source:          getEnv("DB_SOURCE", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Export: ExportConfig{
			Path:   getEnv("EXPORT_PATH", "salaries_export.csv"),
			Format: getEnv("EXPORT_FORMAT", FormatCSV),
		},
		Payroll: PayrollConfig{
			NegativeValues: getEnv("PAYROLL_NEGATIVE_VALUES", NegativeReject),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("CACHE_SIZE", 16),
			TTL:  getEnvAsDuration("CACHE_TTL", 10*time.Minute),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Source.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("source config: %v", err))
	}

	if c.Source.Kind == SourceDatabase {
		if err := c.Database.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("database config: %v", err))
		}
	}

	if err := c.Export.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("export config: %v", err))
	}

	if err := c.Payroll.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("payroll config: %v", err))
	}

	if err := c.Cache.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("cache config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *SourceConfig) Validate() error {
	switch c.Kind {
	case SourceFile:
		if c.Path == "" {
			return errors.New("path is required for file sources")
		}
		switch strings.ToLower(filepath.Ext(c.Path)) {
		case ".json", ".yaml", ".yml":
		default:
			return fmt.Errorf("unsupported source file extension %q", filepath.Ext(c.Path))
		}
	case SourceDatabase:
	default:
		return fmt.Errorf("unknown source kind %q", c.Kind)
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != DriverPostgres && c.Driver != DriverSQLite {
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *ExportConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	if c.Format != FormatCSV && c.Format != FormatXLSX {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

func (c *PayrollConfig) Validate() error {
	if c.NegativeValues != NegativeReject && c.NegativeValues != NegativePropagate {
		return fmt.Errorf("negative_values must be %q or %q", NegativeReject, NegativePropagate)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if c.Size < 1 {
		return errors.New("size must be at least 1")
	}
	if c.TTL <= 0 {
		return errors.New("ttl must be positive")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", c.Level)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}
