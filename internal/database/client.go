package database

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"entgo.io/ent/dialect/sql/schema"
	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/apex/log"
	"github.com/jackc/pgx/v5/stdlib"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the store.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store carried by ctx, if any.
func FromContext(ctx context.Context) *Store {
	s, _ := ctx.Value(ctxKey{}).(*Store)
	return s
}

// Open connects to the configured database and returns the underlying driver.
func Open(ctx context.Context, cfg *models.DatabaseConfig) (*entsql.Driver, error) {
	switch cfg.DBType {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection string: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return entsql.OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool)), nil
	case "mysql":
		db, err := sql.Open(dialect.MySQL, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		return entsql.OpenDB(dialect.MySQL, db), nil
	case "sqlite":
		db, err := sql.Open(cfg.DBType, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		// sqlite has a single writer, concurrent writers queue on one connection.
		db.SetMaxOpenConns(1)
		return entsql.OpenDB(dialect.SQLite, db), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}

// New opens the configured database and wraps it in a Store. Connection failures are fatal.
func New(ctx context.Context, cfg *models.DatabaseConfig) *Store {
	logger := log.FromContext(ctx)

	drv, err := Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).WithField("db_type", cfg.DBType).Fatal("failed to open database")
		return nil
	}

	return NewStore(drv)
}

// Migrate creates or updates the catalog and team tables.
func Migrate(ctx context.Context, s *Store) error {
	logger := log.FromContext(ctx)
	logger.Info("initiating database schema migration")

	m, err := schema.NewMigrate(
		s.drv,
		schema.WithDropIndex(true),
		schema.WithDropColumn(true),
	)
	if err != nil {
		return fmt.Errorf("failed to prepare migration: %w", err)
	}

	if err = m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("database schema migration complete")
	return nil
}
