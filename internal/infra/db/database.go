package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"aura-inn/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

const driverName = "pgx"

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func Connect(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*sql.DB, func(), error) {
	dsn := cfg.BuildDSN()

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(time.Hour)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database", "error", err)
		}
	}

	return db, cleanup, nil
}
