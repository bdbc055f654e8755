package config

import (
	"context"
	"fmt"
	"os"

	"todo-sync/internal/repository"
	"todo-sync/internal/repository/postgres"
	"todo-sync/internal/repository/sqlite"
)

// CreateRepository creates the view-state store selected by the configuration
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	switch config.Store.Driver {
	case DriverMemory:
		return repository.NewMemory(), nil
	case DriverPostgres:
		repo, err := postgres.New(ctx, config.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", postgres.RedactDSN(config.Store.DSN), err)
		}
		return repo, nil
	default:
		if err := os.MkdirAll(config.Store.Dir, os.FileMode(config.Store.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		repo, err := sqlite.New(config.GetDatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}
