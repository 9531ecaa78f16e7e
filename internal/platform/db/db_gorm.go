// Package db opens the GORM connection used by the user repository.
package db

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"user_manager/internal/feature/user/domain/entity"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLitePath     = "users.db"
	defaultConnectTimeout = 60 * time.Second
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds the storage settings read from the environment.
type Config struct {
	Driver string

	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string

	SQLitePath string

	RunMigrations  bool
	ConnectTimeout time.Duration
}

// Opener opens a GORM connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads the storage settings from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:         strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))),
		User:           os.Getenv("DB_USER"),
		Password:       os.Getenv("DB_PASSWORD"),
		Name:           os.Getenv("DB_NAME"),
		Host:           os.Getenv("DB_HOST"),
		Port:           os.Getenv("DB_PORT"),
		SSLMode:        os.Getenv("DB_SSLMODE"),
		SQLitePath:     strings.TrimSpace(os.Getenv("SQLITE_PATH")),
		ConnectTimeout: defaultConnectTimeout,
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultSQLitePath
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}

	// SQLite files are created locally, so the table is migrated unless told otherwise.
	cfg.RunMigrations = cfg.Driver == DriverSQLite
	if v, err := strconv.ParseBool(os.Getenv("RUN_MIGRATIONS")); err == nil {
		cfg.RunMigrations = v
	}
	if d, err := time.ParseDuration(os.Getenv("DB_CONNECT_TIMEOUT")); err == nil && d > 0 {
		cfg.ConnectTimeout = d
	}
	return cfg
}

// BuildDSN returns the connection string for the configured driver.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	}
	return cfg.SQLitePath
}

// OpenerFor returns the Opener matching the driver.
func OpenerFor(driver string) (Opener, error) {
	gormCfg := &gorm.Config{Logger: newGormLogger()}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormCfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			if err := ensureDirForSQLite(dsn); err != nil {
				return nil, err
			}
			return gorm.Open(sqlite.Open(dsn), gormCfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to the configured store and migrates the users table when enabled.
func OpenDB(cfg Config) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.AutoMigrate(&entity.User{}); err != nil {
			Close(db)
			return nil, fmt.Errorf("migrate db: %w", err)
		}
	}
	slog.Info("database ready", "driver", cfg.Driver, "migrated", cfg.RunMigrations)
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("db close failed", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("db close failed", "error", err)
	}
}

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// ensureDirForSQLite creates the parent directory of a SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
