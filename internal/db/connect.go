package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"todo_webapp/internal/logger"
	"todo_webapp/internal/repository"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

const DefaultURL = "sqlite://./database.db"

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect repository.Dialect
	DSN     string
}

// Parse maps a DATABASE_URL onto a dialect and driver DSN. A bare path is
// treated as a sqlite file.
func Parse(rawURL string) (Target, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}

	switch {
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return Target{Dialect: repository.DialectPostgres, DSN: rawURL}, nil
	case strings.HasPrefix(rawURL, "mysql://"):
		cfg, err := mysql.ParseDSN(strings.TrimPrefix(rawURL, "mysql://"))
		if err != nil {
			return Target{}, fmt.Errorf("parse mysql dsn: %w", err)
		}
		// report matched rows, not changed rows, so a same-value update is not a 404
		cfg.ClientFoundRows = true
		return Target{Dialect: repository.DialectMySQL, DSN: cfg.FormatDSN()}, nil
	case strings.HasPrefix(rawURL, "sqlite://"):
		path := strings.TrimPrefix(rawURL, "sqlite://")
		if path == "" {
			return Target{}, fmt.Errorf("sqlite url %q has no path", rawURL)
		}
		return Target{Dialect: repository.DialectSQLite, DSN: path}, nil
	case strings.Contains(rawURL, "://"):
		return Target{}, fmt.Errorf("unsupported database url scheme in %q", rawURL)
	default:
		return Target{Dialect: repository.DialectSQLite, DSN: rawURL}, nil
	}
}

// Open connects to the store named by rawURL, pings it and ensures the tasks
// table exists.
func Open(ctx context.Context, rawURL string) (repository.Store, error) {
	target, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}

	var store repository.Store
	switch target.Dialect {
	case repository.DialectPostgres:
		pool, err := pgxpool.New(ctx, target.DSN)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		store = repository.NewPgTaskRepository(pool)
	default:
		sqlDB, err := sql.Open(string(target.Dialect), target.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", target.Dialect, err)
		}
		if target.Dialect == repository.DialectSQLite {
			// one writer at a time, and :memory: databases live per connection
			sqlDB.SetMaxOpenConns(1)
		}
		store = repository.NewSQLTaskRepository(sqlDB, target.Dialect)
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping %s: %w", target.Dialect, err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Connect is Open for process startup: any failure is fatal.
func Connect(ctx context.Context, rawURL string) repository.Store {
	store, err := Open(ctx, rawURL)
	if err != nil {
		logger.Fatal("failed to open task store", "error", err)
	}

	logger.Info("database connected")
	return store
}
