package main

import (
	"context"
	"database/sql"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medialens/collector/internal/config"
	"github.com/medialens/collector/internal/keywords"
	"github.com/medialens/collector/internal/paths"
	"github.com/medialens/collector/internal/services"
	"github.com/medialens/collector/internal/store"
	"github.com/medialens/collector/internal/store/migrations"
	"github.com/medialens/collector/pkg/workpool"
)

// app holds the wired agent: store, configuration, resolvers and the worker
// pool. Built once per command invocation.
type app struct {
	cfg        *config.Manager
	store      *store.Store
	db         *sql.DB
	paths      *paths.Manager
	resolver   *keywords.Resolver
	pool       *workpool.Pool
	collection *services.Collection
}

func newApp(ctx context.Context, v *viper.Viper) (*app, error) {
	a := &app{}

	loadOpts := []config.Option{
		config.WithConfigDir(v.GetString("config-dir")),
	}

	if v.GetBool("use-database") {
		db, err := store.NewDB(v.GetString("database"))
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.store = store.NewStore(db)
		loadOpts = append(loadOpts, config.WithDatabase(a.store.Settings()))
	}

	cfg, err := config.Load(ctx, loadOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cfg = cfg

	a.paths = paths.NewManager(cfg)
	a.resolver = keywords.NewResolver(cfg)

	workers, err := cfg.GetInt("processing.parallel.max_collector_workers", 4)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.pool = workpool.New(workers)
	a.collection = services.NewCollectionService(cfg, a.resolver, a.paths, a.pool)

	zap.S().Named("agent").Infow("agent wired",
		"version", version,
		"workers", workers,
		"database", v.GetBool("use-database"),
	)
	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
