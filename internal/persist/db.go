// Package persist stores frame telemetry in PostgreSQL.
package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/config"
)

const (
	applicationName = "ember"
	connectTimeout  = 5 * time.Second
	idleConnTimeout = time.Minute
)

// DB is the telemetry connection pool. The frame loop never touches it; only
// the telemetry writer goroutine and startup migrations do.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewDB(ctx context.Context, cfg config.TelemetryConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("telemetry dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	poolCfg.MinConns = 0
	poolCfg.MaxConnIdleTime = idleConnTimeout
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open telemetry pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reach telemetry database %s: %w", poolCfg.ConnConfig.Host, err)
	}

	log.Info("telemetry database connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &DB{Pool: pool, log: log}, nil
}

// Close releases the pool and logs how many connections were ever opened.
func (db *DB) Close() {
	stat := db.Pool.Stat()
	db.Pool.Close()
	db.log.Debug("telemetry database closed", zap.Int64("connections_opened", stat.NewConnsCount()))
}
