package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"

	"github.com/frahmantamala/payroll-report/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects gorm to the configured driver.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.GetDSN())
	case internal.DriverSQLite:
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenMigrationDB returns the handle used by goose. Postgres goes through the
// pgx stdlib driver; sqlite reuses the gorm connection.
func OpenMigrationDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Driver == internal.DriverPostgres {
		const driver = "pgx"

		dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		return dbConn, nil
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, "sqlite3"), nil
}

// SchemaVersion returns the latest applied migration version, 0 when none.
func SchemaVersion(ctx context.Context, db *sqlx.DB) (int64, error) {
	var version int64
	err := db.GetContext(ctx, &version,
		"SELECT COALESCE(MAX(version_id), 0) FROM schema_migrations WHERE is_applied")
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func gooseDialect(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// Migrate applies (or with rollback, reverts the latest of) the migrations
// found in dir of fsys, named migrations/<driver> in the embedded set.
func Migrate(ctx context.Context, db *sql.DB, driver string, fsys fs.FS, dir string, rollback bool) error {
	if dir == "" {
		dir = path.Join("migrations", driver)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetTableName("schema_migrations")

	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if rollback {
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		return nil
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
