// Package database owns the MariaDB and Redis connection lifecycle: open,
// pool configuration, readiness ping, and startup migrations. Connections
// are built once in main and handed to features via dependency injection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/pville/moodlog/internal/config"
)

// dialTimeout bounds each readiness ping.
const dialTimeout = 5 * time.Second

// NewMariaDB opens a MariaDB pool and waits for the server to answer a
// ping. In containerized deployments the database often comes up after the
// app process, so the ping retries with doubling backoff instead of
// failing immediately.
func NewMariaDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb pool: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForPing(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func waitForPing(db *sql.DB) error {
	const attempts = 10
	delay := time.Second

	var lastErr error
	for i := 1; i <= attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		lastErr = db.PingContext(ctx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if i == attempts {
			break
		}

		slog.Warn("waiting for mariadb",
			slog.Int("attempt", i),
			slog.Duration("retry_in", delay),
			slog.Any("error", lastErr),
		)
		time.Sleep(delay)
		delay = min(delay*2, 30*time.Second)
	}
	return fmt.Errorf("mariadb unreachable after %d attempts: %w", attempts, lastErr)
}
