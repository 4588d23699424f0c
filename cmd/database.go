package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-records/db"
	"github.com/frahmantamala/employee-records/internal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openDB opens the configured database through gorm and verifies the connection
func openDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		pgCfg, err := pgx.ParseConfig(cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("invalid postgres source: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgCfg)})
	case internal.DriverSQLite:
		dialector = db.SQLite(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logMode := gormlogger.Silent
	if cfg.LogQueries {
		logMode = gormlogger.Info
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gdb, nil
}

func closeDB(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gooseDialect(driver string) string {
	if driver == internal.DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// runMigrations runs a goose command against the embedded migrations of the
// driver, or against dir on disk when dir is set.
func runMigrations(ctx context.Context, gdb *gorm.DB, driver, dir, command string) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	if dir == "" {
		goose.SetBaseFS(db.Migrations)
		dir = db.Dir(driver)
	} else {
		goose.SetBaseFS(nil)
	}

	if err := goose.RunContext(ctx, command, sqlDB, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
