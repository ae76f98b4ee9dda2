// Package db opens the relational stores used when STORE_DRIVER is postgres or sqlite.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"around_backend/internal/platform/config"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Surfaces unique and foreign key violations as gorm.ErrDuplicatedKey and
		// gorm.ErrForeignKeyViolated.
		TranslateError: true,
		Logger:         NewGormLogger(nil),
	}
}

// PostgresOpener opens a postgres connection through the pgx driver.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// SQLiteOpener opens a sqlite database file, or an in-memory one for ":memory:".
// Foreign keys are enforced on every connection.
func SQLiteOpener(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(sqliteDSN(path)), gormConfig())
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// BuildDSN builds a postgres key/value DSN.
func BuildDSN(cfg config.PostgresConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := opener(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the relational store selected by cfg.Store.Driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return ConnectWithRetry(BuildDSN(cfg.Postgres), cfg.Postgres.ConnectTimeout, PostgresOpener)
	case "sqlite":
		gdb, err := SQLiteOpener(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLite.Path, err)
		}
		return gdb, nil
	default:
		return nil, errors.New("db: unsupported relational driver " + cfg.Store.Driver)
	}
}

// Migrate creates or updates the tables for models.
func Migrate(gdb *gorm.DB, models ...any) error {
	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
