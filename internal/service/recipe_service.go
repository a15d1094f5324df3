package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"recipe-api/internal/model"
	"recipe-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// recipeService implements RecipeService.
type recipeService struct {
	recipeRepo repository.RecipeRepository
	logger     zerolog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipeRepo repository.RecipeRepository, logger zerolog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		logger:     logger.With().Str("service", "recipe").Logger(),
	}
}

// List retrieves the user's recipes, newest first.
func (s *recipeService) List(ctx context.Context, userID int64) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list recipes")
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Int("count", len(recipes)).
		Msg("retrieved recipes")

	return recipes, nil
}

// Get retrieves one of the user's recipes.
func (s *recipeService) Get(ctx context.Context, userID, id int64) (*model.Recipe, error) {
	if id <= 0 {
		return nil, model.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepo.GetByOwner(ctx, userID, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("recipe_id", id).Msg("failed to get recipe")
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe == nil {
		s.logger.Debug().Int64("recipe_id", id).Int64("user_id", userID).Msg("recipe not found")
		return nil, model.ErrRecipeNotFound
	}

	return recipe, nil
}

// Create validates and stores a new recipe owned by the user.
func (s *recipeService) Create(ctx context.Context, userID int64, req *model.RecipeRequest) (*model.Recipe, error) {
	if err := validateFullRequest(req); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{UserID: userID}
	applyRequest(recipe, req)
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create recipe")
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info().
		Int64("recipe_id", recipe.ID).
		Int64("user_id", userID).
		Msg("recipe created")

	return recipe, nil
}

// Update replaces all writable fields of a recipe. Omitted optional fields
// are reset to empty.
func (s *recipeService) Update(ctx context.Context, userID, id int64, req *model.RecipeRequest) (*model.Recipe, error) {
	if err := validateFullRequest(req); err != nil {
		return nil, err
	}

	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	recipe.Description = ""
	recipe.Link = ""
	applyRequest(recipe, req)

	return s.save(ctx, recipe)
}

// Patch changes only the fields present in req.
func (s *recipeService) Patch(ctx context.Context, userID, id int64, req *model.RecipeRequest) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applyRequest(recipe, req)

	return s.save(ctx, recipe)
}

// Delete removes one of the user's recipes.
func (s *recipeService) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return model.ErrRecipeNotFound
	}

	if err := s.recipeRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("recipe_id", id).Msg("failed to delete recipe")
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.logger.Info().Int64("recipe_id", id).Int64("user_id", userID).Msg("recipe deleted")

	return nil
}

func (s *recipeService) save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("recipe_id", recipe.ID).Msg("failed to update recipe")
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.logger.Info().Int64("recipe_id", recipe.ID).Msg("recipe updated")

	return recipe, nil
}

// validateFullRequest checks that the required fields are present.
func validateFullRequest(req *model.RecipeRequest) error {
	switch {
	case req.Title == nil:
		return model.ErrTitleRequired
	case req.TimeMinutes == nil:
		return model.ErrTimeMinutesRequired
	case req.Price == nil:
		return model.ErrPriceRequired
	}
	return nil
}

func applyRequest(recipe *model.Recipe, req *model.RecipeRequest) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
}

// validateRecipe checks field limits against the recipes table.
func validateRecipe(recipe *model.Recipe) error {
	if recipe.Title == "" {
		return model.ErrTitleRequired
	}
	if utf8.RuneCountInString(recipe.Title) > model.MaxTitleLength {
		return model.ErrTitleTooLong
	}
	if utf8.RuneCountInString(recipe.Link) > model.MaxLinkLength {
		return model.ErrLinkTooLong
	}
	if recipe.TimeMinutes < 0 || recipe.TimeMinutes > model.MaxTimeMinutes {
		return model.ErrInvalidTimeMinutes
	}
	if !validPrice(recipe.Price) {
		return model.ErrInvalidPrice
	}
	return nil
}

func validPrice(p decimal.Decimal) bool {
	if p.IsNegative() || p.GreaterThan(model.MaxPrice) {
		return false
	}
	return p.Equal(p.Round(model.PriceScale))
}
