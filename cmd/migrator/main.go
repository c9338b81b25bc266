package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"field-rental/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	migrationUp   = "up"
	migrationDown = "down"
)

func main() {
	var migrationsPath, migrationsTable, migrationType string
	flag.StringVar(&migrationType, "migration-type", migrationUp, "migration type (up|down)")
	flag.StringVar(&migrationsPath, "migrations-path", "migrations", "path to migrations")
	flag.StringVar(&migrationsTable, "migrations-table", "schema_migrations", "name of migrations table")
	flag.Parse()

	_ = godotenv.Load()

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to read database config", "error", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+migrationsPath, MigrateURL(dbCfg, migrationsTable))
	if err != nil {
		slog.Error("failed to init migrator", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := Run(m, migrationType); err != nil {
		slog.Error("migration failed", "type", migrationType, "error", err)
		os.Exit(1)
	}
}

// Run applies or reverts every migration. Having nothing to do is not an error.
func Run(m *migrate.Migrate, migrationType string) error {
	var err error
	switch migrationType {
	case migrationUp:
		err = m.Up()
	case migrationDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration type %q", migrationType)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "type", migrationType)
	return nil
}

// MigrateURL rewrites the pool DSN for the pgx/v5 migrate driver.
func MigrateURL(cfg config.DBConfig, table string) string {
	dsn := strings.Replace(cfg.BuildDSN(), "postgres://", "pgx5://", 1)
	return dsn + "&x-migrations-table=" + table
}
