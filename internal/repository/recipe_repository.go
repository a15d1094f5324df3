package repository

import (
	"context"
	"errors"
	"fmt"

	"recipe-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Prices travel as text so NUMERIC(5,2) values keep their exact scale.
const recipeColumns = `id, user_id, title, time_minutes, price::text, description, link, created_at, updated_at`

// recipeRepository implements the RecipeRepository interface using PostgreSQL.
type recipeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRecipeRepository creates a new PostgreSQL-backed recipe repository.
func NewRecipeRepository(pool *pgxpool.Pool, logger zerolog.Logger) RecipeRepository {
	return &recipeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "recipe").Logger(),
	}
}

// Create inserts a new recipe. The ID comes from the table's sequence.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	query := `
		INSERT INTO recipes (user_id, title, time_minutes, price, description, link)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		recipe.UserID,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price.String(),
		recipe.Description,
		recipe.Link,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", recipe.UserID).
			Msg("failed to create recipe")
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	r.logger.Debug().
		Int64("recipe_id", recipe.ID).
		Int64("user_id", recipe.UserID).
		Msg("recipe created successfully")

	return nil
}

// ListByOwner retrieves all recipes of a user, newest ID first.
func (r *recipeRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE user_id = $1
		ORDER BY id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recipe row")
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recipe rows")
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// GetByOwner retrieves one recipe of a user.
func (r *recipeRepository) GetByOwner(ctx context.Context, userID, id int64) (*model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`

	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().
				Int64("recipe_id", id).
				Int64("user_id", userID).
				Msg("recipe not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("recipe_id", id).Msg("failed to query recipe")
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	return recipe, nil
}

// Update overwrites the mutable fields of an owned recipe.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	query := `
		UPDATE recipes
		SET title = $3, time_minutes = $4, price = $5::numeric,
			description = $6, link = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		recipe.ID,
		recipe.UserID,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price.String(),
		recipe.Description,
		recipe.Link,
	).Scan(&recipe.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrRecipeNotFound
		}
		r.logger.Error().Err(err).Int64("recipe_id", recipe.ID).Msg("failed to update recipe")
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	r.logger.Debug().Int64("recipe_id", recipe.ID).Msg("recipe updated successfully")

	return nil
}

// Delete removes an owned recipe.
func (r *recipeRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("recipe_id", id).Msg("failed to delete recipe")
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrRecipeNotFound
	}

	r.logger.Debug().Int64("recipe_id", id).Msg("recipe deleted successfully")

	return nil
}

func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var (
		recipe model.Recipe
		price  string
	)

	err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&price,
		&recipe.Description,
		&recipe.Link,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	recipe.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}

	return &recipe, nil
}
