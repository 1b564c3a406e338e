package db

import (
	"context"
	"fmt"
	"io"

	"notesapi/internal/config"
	"notesapi/internal/notes"
)

// NoteStore is a notes backend owned by the application host
type NoteStore interface {
	notes.Store
	notes.Migrator
	io.Closer
}

// OpenStore connects the backend named by cfg.Driver
func OpenStore(ctx context.Context, cfg config.StoreConfig) (NoteStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		sqlDB, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return notes.NewSQLiteStore(sqlDB), nil

	case config.DriverPostgres:
		gormDB, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return notes.NewPostgresStore(gormDB), nil

	case config.DriverMongo:
		database, err := ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return notes.NewMongoStore(database), nil

	case config.DriverMemory:
		return notes.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
