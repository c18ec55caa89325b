// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationConfig holds migration configuration
type MigrationConfig struct {
	DatabaseURL      string
	TableName        string
	SchemaName       string
	ForceDirty       bool
	StatementTimeout time.Duration
}

func (c MigrationConfig) withDefaults() MigrationConfig {
	if c.TableName == "" {
		c.TableName = "schema_migrations"
	}
	if c.SchemaName == "" {
		c.SchemaName = "public"
	}
	if c.StatementTimeout == 0 {
		c.StatementTimeout = 10 * time.Minute
	}
	return c
}

// MigrationStatus is the ledger after a run
type MigrationStatus struct {
	CurrentVersion uint               `json:"current_version"`
	IsDirty        bool               `json:"is_dirty"`
	Applied        []AppliedMigration `json:"applied"`
}

// AppliedMigration is one row of the migration ledger
type AppliedMigration struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Migrator applies the embedded orders/memos schema
type Migrator struct {
	m      *migrate.Migrate
	sqlDB  *sql.DB
	cfg    MigrationConfig
	logger *slog.Logger
}

// NewMigrator opens a short-lived database/sql handle for golang-migrate
func NewMigrator(ctx context.Context, cfg *MigrationConfig, logger *slog.Logger) (*Migrator, error) {
	if cfg == nil {
		return nil, errors.New("migration config is required")
	}
	c := cfg.withDefaults()

	sqlDB, err := sql.Open("pgx", c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(2)

	m, err := newMigrate(ctx, sqlDB, c)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Migrator{m: m, sqlDB: sqlDB, cfg: c, logger: logger}, nil
}

func newMigrate(ctx context.Context, sqlDB *sql.DB, c MigrationConfig) (*migrate.Migrate, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{
		MigrationsTable:  c.TableName,
		SchemaName:       c.SchemaName,
		StatementTimeout: c.StatementTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres migrate driver: %w", err)
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}
	return m, nil
}

// Up applies pending migrations and returns the resulting ledger. A dirty
// database is only forced back when ForceDirty is set.
func (mg *Migrator) Up(ctx context.Context) (*MigrationStatus, error) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if dirty {
		if !mg.cfg.ForceDirty {
			return nil, fmt.Errorf("database is in dirty state at version %d", version)
		}
		mg.logger.WarnContext(ctx, "forcing dirty migration", slog.Uint64("version", uint64(version)))
		if err := mg.m.Force(int(version)); err != nil {
			return nil, fmt.Errorf("force version %d: %w", version, err)
		}
	}

	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	status := &MigrationStatus{}
	if status.CurrentVersion, status.IsDirty, err = mg.m.Version(); err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if status.Applied, err = appliedMigrations(ctx, mg.sqlDB, mg.cfg.SchemaName, mg.cfg.TableName); err != nil {
		return nil, err
	}
	return status, nil
}

// Close releases the migrate source and database handle
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func appliedMigrations(ctx context.Context, sqlDB *sql.DB, schema, table string) ([]AppliedMigration, error) {
	query := fmt.Sprintf(`SELECT version, dirty FROM %s.%s ORDER BY version ASC`, schema, table)

	rows, err := sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query migration ledger: %w", err)
	}
	defer rows.Close()

	applied := make([]AppliedMigration, 0)
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Dirty); err != nil {
			return nil, fmt.Errorf("scan migration row: %w", err)
		}
		applied = append(applied, a)
	}
	return applied, rows.Err()
}

// RunMigrationsWithRetry runs migrations, waiting 2s, 4s, ... between attempts
func RunMigrationsWithRetry(ctx context.Context, config *MigrationConfig, logger *slog.Logger, maxRetries int) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * 2 * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		status, err := migrateOnce(ctx, config, logger)
		if err == nil {
			logger.InfoContext(ctx, "database schema up to date",
				slog.Uint64("version", uint64(status.CurrentVersion)),
				slog.Int("applied", len(status.Applied)))
			return nil
		}
		lastErr = err
		logger.ErrorContext(ctx, "migration attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}

	return fmt.Errorf("migrations failed after %d attempts: %w", maxRetries, lastErr)
}

func migrateOnce(ctx context.Context, config *MigrationConfig, logger *slog.Logger) (*MigrationStatus, error) {
	mg, err := NewMigrator(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			logger.WarnContext(ctx, "failed to close migrator", slog.String("error", err.Error()))
		}
	}()
	return mg.Up(ctx)
}
