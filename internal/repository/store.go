package repository

import (
	"context"
	"fmt"

	"recipe-api/internal/config"
	"recipe-api/internal/database"

	"github.com/rs/zerolog"
)

// Store bundles the repositories of one storage backend.
type Store struct {
	Users   UserRepository
	Recipes RecipeRepository
	close   func()
}

// NewStore opens the backend selected by cfg.Store.Driver. The postgres
// driver connects and migrates before returning.
func NewStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		return &Store{
			Users:   NewMemoryUserRepository(logger),
			Recipes: NewMemoryRecipeRepository(logger),
			close:   func() {},
		}, nil

	case config.StoreDriverPostgres:
		pool, err := database.Open(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return &Store{
			Users:   NewUserRepository(pool, logger),
			Recipes: NewRecipeRepository(pool, logger),
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// Close releases the backend's resources.
func (s *Store) Close() {
	s.close()
}
