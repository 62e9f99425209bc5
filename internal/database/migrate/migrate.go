// Package migrate applies the SQL schema under MIGRATIONS_PATH with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appConfig "github.com/festy23/street_sports/internal/config"
)

// GetMigrationsPath returns MIGRATIONS_PATH, default "migrations".
func GetMigrationsPath() string {
	return appConfig.GetEnv("MIGRATIONS_PATH", "migrations")
}

// resolvePath returns the absolute migrations directory and fails early
// when it holds no up migrations, which golang-migrate would otherwise
// report as a bare "file does not exist".
func resolvePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return "", fmt.Errorf("migrations directory does not exist: %s", abs)
	}
	ups, err := filepath.Glob(filepath.Join(abs, "*.up.sql"))
	if err != nil {
		return "", fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(ups) == 0 {
		return "", fmt.Errorf("no up migrations in %s", abs)
	}
	return abs, nil
}

// Migrate brings the Postgres schema to the latest version. A dirty
// schema left by a failed run is reported rather than forced.
func Migrate(db *gorm.DB, logger *zap.SugaredLogger) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	path, err := resolvePath(GetMigrationsPath())
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", version)
	}
	logger.Infow("schema ready", "version", version, "path", path)
	return nil
}
