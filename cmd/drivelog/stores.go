package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/drivelog/internal/core/config"
	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/storage/memory"
	"github.com/aevon-lab/drivelog/internal/core/storage/postgres"
	"github.com/aevon-lab/drivelog/internal/migrations"
	"github.com/aevon-lab/drivelog/internal/server"
)

// stores bundles the configured backend behind the storage interfaces.
type stores struct {
	samples storage.SampleStore
	trips   storage.TripStore
	health  server.HealthChecker
	close   func() error
}

func openStores(cfg *corecfg.Config) (*stores, error) {
	if cfg.Database.Type == "memory" {
		slog.Warn("Using in-memory store, data is lost on exit")
		store := memory.NewStore()
		return &stores{
			samples: store,
			trips:   store,
			close:   func() error { return nil },
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("run database migrations: %w", err)
	}

	adapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return &stores{
		samples: adapter,
		trips:   adapter,
		health:  adapter,
		close:   adapter.Close,
	}, nil
}

func openDB(cfg *corecfg.Config) (*sql.DB, error) {
	if cfg.Database.Type != "postgres" {
		return nil, fmt.Errorf("database.type %q has no schema to manage", cfg.Database.Type)
	}
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
