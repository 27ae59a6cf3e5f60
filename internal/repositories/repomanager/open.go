package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/accountstore/internal/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Open connects to the backend selected by cfg.Storage, checks it answers
// and brings its schema up to date. The caller owns the returned manager and
// must Close it.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	m, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := m.Ping(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, fmt.Errorf("%s ping error: %w", cfg.Storage, err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, fmt.Errorf("%s migration error: %w", cfg.Storage, err)
	}

	return m, nil
}

func connect(cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		return NewPostgresRepositoryManager(db), nil

	case config.StorageSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		return NewSQLiteRepositoryManager(db), nil

	case config.StorageMongo:
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("mongo connect error: %w", err)
		}
		return NewMongoRepositoryManager(client, cfg.MongoDatabase), nil

	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
