package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recordkit/internal/config"
	"github.com/kailas-cloud/recordkit/internal/db"
	"github.com/kailas-cloud/recordkit/internal/db/memory"
	dbRedis "github.com/kailas-cloud/recordkit/internal/db/redis"
	logpkg "github.com/kailas-cloud/recordkit/internal/logger"
	typerepo "github.com/kailas-cloud/recordkit/internal/repository/datatype"
	recrepo "github.com/kailas-cloud/recordkit/internal/repository/record"
	datatypeuc "github.com/kailas-cloud/recordkit/internal/usecase/datatype"
	recorduc "github.com/kailas-cloud/recordkit/internal/usecase/record"
)

// app is the composition root shared by the commands.
type app struct {
	env     string
	cfg     config.Config
	logger  *zap.Logger
	store   db.Store
	types   *datatypeuc.Service
	records *recorduc.Service
	recRepo *recrepo.Repo
}

func loadApp(cmd *cobra.Command) (*app, error) {
	env, _ := cmd.Flags().GetString("env")
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := openStore(cfg.Database)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	a := wire(store, cfg, logger)
	a.env = env
	return a, nil
}

func wire(store db.Store, cfg config.Config, logger *zap.Logger) *app {
	recRepo := recrepo.New(store, cfg.Storage.KeyPrefix)
	types := datatypeuc.New(typerepo.New(store, cfg.Storage.KeyPrefix))
	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		types:   types,
		records: recorduc.New(recRepo, types),
		recRepo: recRepo,
	}
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Addrs,
			Password:   cfg.Password,
			ClientName: "recordkit",
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
