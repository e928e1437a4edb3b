package manager

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prn-tf/barledger/internal/config"
	"github.com/prn-tf/barledger/internal/repository/sqlite"
)

// OpenConfig opens the store described by cfg.
func OpenConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Manager, error) {
	sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
	sqliteCfg.JournalMode = cfg.Database.JournalMode
	sqliteCfg.BusyTimeout = cfg.Database.BusyTimeout
	sqliteCfg.CacheSize = cfg.Database.CacheSize
	sqliteCfg.SynchronousMode = cfg.Database.SynchronousMode

	return Open(ctx, cfg.Database.Path, Options{
		SQLite:            &sqliteCfg,
		BootstrapUsername: cfg.Bootstrap.Username,
		BootstrapPassword: cfg.Bootstrap.Password,
		Logger:            logger,
	})
}
