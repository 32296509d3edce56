package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/config"
	"github.com/kailas-cloud/facetdex/internal/db"
	"github.com/kailas-cloud/facetdex/internal/db/memory"
	dbPostgres "github.com/kailas-cloud/facetdex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/facetdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/facetdex/internal/logger"
)

func (o *options) resolveEnv() string {
	if o.env != "" {
		return o.env
	}
	return config.GetEnv()
}

func (o *options) load() (config.Config, *zap.Logger, error) {
	env := o.resolveEnv()

	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

// openStore creates the configured store and waits until it answers.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store, questionnaires are not persisted")
		store = memory.NewStore()
	case config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Database.Addrs,
			Password:  cfg.Database.Password,
			KeyPrefix: cfg.Storage.KeyPrefix,
		})
	case config.DriverPostgres:
		if cfg.Database.RunMigrations {
			if err := dbPostgres.Migrate(cfg.Database.DSN); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("Applied database migrations")
		}
		store, err = dbPostgres.NewStore(ctx, dbPostgres.Config{
			DSN:      cfg.Database.DSN,
			MaxConns: cfg.Database.MaxConns,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}
