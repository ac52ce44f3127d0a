package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"tastebud/config"
	"tastebud/internal/domain/lifecycle"
	"tastebud/internal/infra/metrics"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolSampleInterval = 5 * time.Second
	poolWaitWarnAfter  = 50 * time.Millisecond
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary database, migrates it when database.autoMigrate is set and samples the pool until shutdown.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Order placement runs inside txManager.Execute, so per-statement transactions are redundant.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	sampleCtx, stopSampling := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if dbCfg := params.Config.Database; dbCfg != nil && dbCfg.AutoMigrate {
				if err := Migrate(ctx, db, dbCfg.SeedTags); err != nil {
					return err
				}
				params.Logger.Info("database schema migrated", slog.Bool("seed_tags", dbCfg.SeedTags))
			}

			go samplePool(sampleCtx, params.Logger, sqlDB, poolSampleInterval)

			return nil
		},
		OnStop: func(context.Context) error {
			stopSampling()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// samplePool exports pool gauges every interval and warns when order traffic queued for connections.
func samplePool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waited := cur.WaitDuration - prev.WaitDuration
			metrics.RecordDBPool(cur.InUse, cur.Idle, waited)

			if waits := cur.WaitCount - prev.WaitCount; waits > 0 && waited >= poolWaitWarnAfter {
				logger.LogAttrs(ctx, slog.LevelWarn, "database pool saturated",
					slog.Int64("waits", waits),
					slog.Duration("waited", waited),
					slog.Duration("avg_wait", waited/time.Duration(waits)),
					slog.Int("max_open", cur.MaxOpenConnections),
					slog.Int("in_use", cur.InUse),
				)
			}

			prev = cur
		}
	}
}
