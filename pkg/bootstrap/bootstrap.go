// Package bootstrap creates the process-wide logger and database pool.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhiidetopchubaeva/shop/pkg/logger"
)

// NewLogger creates a new slog.Logger instance with the specified log level.
// Records are written as JSON to stdout and enriched with request-scoped attributes.
func NewLogger(level string, extractors ...logger.AttrExtractor) *slog.Logger {
	return newLogger(os.Stdout, level, extractors...)
}

func newLogger(w io.Writer, level string, extractors ...logger.AttrExtractor) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := logger.NewContextHandler(slog.NewJSONHandler(w, loggerOpts), extractors...)
	return slog.New(logHandler)
}

// NewDbPool creates a new database connection pool with the provided context and configuration,
// and pings the database so that a misconfiguration fails early.
func NewDbPool(ctx context.Context, url string, connectTimeout time.Duration, maxConns int32) (*pgxpool.Pool, error) {
	poolCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	dbPool, errPool := pgxpool.NewWithConfig(poolCtx, poolCfg)
	if errPool != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", errPool)
	}
	if err := dbPool.Ping(poolCtx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbPool, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
