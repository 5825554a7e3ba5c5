package repository

import (
	"fmt"

	"beatwave/config"
	"beatwave/db"
	"beatwave/logger"
)

// OpenCatalog builds the catalog selected by cfg.CatalogSource. For the file
// source the result is a *FileCatalog; the caller decides whether to Watch it.
// The mysql source connects db.GormDB and serves playlists, kits and services
// from the fixtures.
func OpenCatalog(cfg *config.Config) (CatalogRepository, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourceFile:
		fc, err := OpenFileCatalog(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded from file", logger.String("path", cfg.CatalogFile))
		return fc, nil
	case config.CatalogSourceMySQL:
		if db.GormDB == nil {
			if err := db.ConnectGormDB(cfg); err != nil {
				return nil, fmt.Errorf("open mysql catalog: %w", err)
			}
		}
		logger.Info("catalog served from mysql", logger.String("db", cfg.DBName))
		return NewCatalog(NewGormBeatRepository(db.GormDB), FixtureCatalog()), nil
	default:
		logger.Info("catalog served from built-in fixtures")
		return NewMemoryCatalog(FixtureCatalog()), nil
	}
}
