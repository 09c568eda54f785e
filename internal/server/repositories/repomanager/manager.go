// Package repomanager opens the configured user store and exposes its
// repository together with a schema migration hook.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the store schema (or indexes) up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close(ctx context.Context) error
}

// New opens the store selected by cfg.StoreDriver.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StoreMongo:
		return NewMongoRepositoryManager(ctx, cfg.DatabaseDSN, cfg.MongoDatabase)
	case config.StorePostgres, config.StoreSQLite, config.StoreMySQL:
		return NewSQLRepositoryManager(cfg.StoreDriver, cfg.DatabaseDSN, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

type MemoryRepositoryManager struct {
	repo *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repo: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.repo }

func (m *MemoryRepositoryManager) Close(ctx context.Context) error { return nil }
