// Package store opens the repositories of the configured backend.
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/config"
	repo "github.com/oksasatya/planify/internal/domain/repository"
	mongostore "github.com/oksasatya/planify/internal/infrastructure/mongo"
	"github.com/oksasatya/planify/internal/infrastructure/postgres"
	"github.com/oksasatya/planify/internal/infrastructure/sqlite"
)

// Store bundles the three repositories of one backend.
type Store struct {
	Driver   string
	Users    repo.UserRepository
	Projects repo.ProjectRepository
	Tasks    repo.TaskRepository

	close func() error
}

// Close releases the backend connection.
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to cfg.StoreDriver. Postgres migrations run before the pool is handed out.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		logger.WithField("db", cfg.MongoDB).Info("mongo connected")
		return &Store{
			Driver:   cfg.StoreDriver,
			Users:    mongostore.NewUserRepository(db),
			Projects: mongostore.NewProjectRepository(db),
			Tasks:    mongostore.NewTaskRepository(db),
			close:    func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres:
		if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		logger.Info("postgres connected")
		return &Store{
			Driver:   cfg.StoreDriver,
			Users:    postgres.NewUserRepository(pool),
			Projects: postgres.NewProjectRepository(pool),
			Tasks:    postgres.NewTaskRepository(pool),
			close:    func() error { pool.Close(); return nil },
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		logger.WithField("path", cfg.SQLitePath).Info("sqlite opened")
		return &Store{
			Driver:   cfg.StoreDriver,
			Users:    sqlite.NewUserRepository(db),
			Projects: sqlite.NewProjectRepository(db),
			Tasks:    sqlite.NewTaskRepository(db),
			close:    func() error { return sqlite.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
