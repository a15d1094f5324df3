package service

import (
	"context"

	"recipe-api/internal/model"
)

// RecipeService defines operations on the caller's own recipes.
// Every method is scoped to userID; recipes of other users behave as missing.
type RecipeService interface {
	// List retrieves the user's recipes, newest first.
	List(ctx context.Context, userID int64) ([]model.Recipe, error)

	// Get retrieves one of the user's recipes.
	Get(ctx context.Context, userID, id int64) (*model.Recipe, error)

	// Create validates and stores a new recipe owned by the user.
	Create(ctx context.Context, userID int64, req *model.RecipeRequest) (*model.Recipe, error)

	// Update replaces all writable fields of a recipe.
	Update(ctx context.Context, userID, id int64, req *model.RecipeRequest) (*model.Recipe, error)

	// Patch changes only the fields present in req.
	Patch(ctx context.Context, userID, id int64, req *model.RecipeRequest) (*model.Recipe, error)

	// Delete removes one of the user's recipes.
	Delete(ctx context.Context, userID, id int64) error
}

// UserService defines operations for user accounts and credentials.
type UserService interface {
	// Register creates a new active user.
	Register(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)

	// IssueToken exchanges email and password for a bearer token.
	IssueToken(ctx context.Context, req *model.TokenRequest) (string, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
