package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"canteen/config"
	"canteen/internal/domain/lifecycle"
	"canteen/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval  = 10 * time.Second
	poolWaitWarnAfter  = 50 * time.Millisecond
	poolStatsNamespace = "canteen"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	// Registerer receives the connection pool collector when metrics are on.
	Registerer prometheus.Registerer `optional:"true"`
}

// Open connects without lifecycle hooks, for one-shot tools. The caller
// closes the underlying sql.DB.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	// Multi-statement writes go through TransactionManager.Execute, so the
	// implicit per-statement transaction is redundant.
	return db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	}), nil
}

// New opens the pool, pings it on start and closes it on stop.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if params.Registerer != nil {
		if err := params.Registerer.Register(collectors.NewDBStatsCollector(sqlDB, poolStatsNamespace)); err != nil {
			params.Logger.Warn("Postgres pool collector not registered", slog.Any("error", err))
		}
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}
			go watchPool(watchCtx, params.Logger, sqlDB)

			return nil
		},
		OnStop: func(context.Context) error {
			stopWatch()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// watchPool warns when requests queue for a connection, which during a lunch
// rush means the pool is too small for the order volume.
func watchPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB) {
	ticker := time.NewTicker(poolCheckInterval)
	defer ticker.Stop()

	last := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		stats := sqlDB.Stats()
		waits := stats.WaitCount - last.WaitCount
		waited := stats.WaitDuration - last.WaitDuration
		last = stats
		if waits == 0 || waited < poolWaitWarnAfter {
			continue
		}

		logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool saturated",
			slog.Int64("waits", waits),
			slog.Duration("avg_wait", waited/time.Duration(waits)),
			slog.Int("in_use", stats.InUse),
			slog.Int("max_open", stats.MaxOpenConnections),
		)
	}
}
