package fixture

import (
	"context"
	"fmt"

	"recipe-api/internal/service"

	"github.com/rs/zerolog"
)

// Importer creates fixture recipes for a user through the recipe service.
type Importer struct {
	recipes service.RecipeService
	logger  zerolog.Logger
}

// NewImporter creates a new fixture importer.
func NewImporter(recipes service.RecipeService, logger zerolog.Logger) *Importer {
	return &Importer{
		recipes: recipes,
		logger:  logger.With().Str("component", "fixture-importer").Logger(),
	}
}

// Import creates records in order for userID and returns how many were created.
// The first rejected record stops the import; earlier records stay created.
func (i *Importer) Import(ctx context.Context, userID int64, records []Record) (int, error) {
	created := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		req := rec.Recipe
		recipe, err := i.recipes.Create(ctx, userID, &req)
		if err != nil {
			return created, fmt.Errorf("line %d: %w", rec.Line, err)
		}
		created++

		i.logger.Debug().
			Int("line", rec.Line).
			Int64("recipe_id", recipe.ID).
			Msg("fixture recipe imported")
	}

	i.logger.Info().
		Int64("user_id", userID).
		Int("recipes_imported", created).
		Msg("fixture import completed")

	return created, nil
}
