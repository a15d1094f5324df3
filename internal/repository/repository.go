package repository

import (
	"context"

	"recipe-api/internal/model"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user and sets its ID and CreatedAt.
	// Returns model.ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil, nil if not found.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil, nil if not found.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// RecipeRepository defines the interface for recipe data access operations.
// Every read and write is scoped to the owning user.
type RecipeRepository interface {
	// Create inserts a new recipe and sets its ID and timestamps.
	Create(ctx context.Context, recipe *model.Recipe) error

	// ListByOwner retrieves all recipes of a user, newest ID first.
	// Returns an empty slice when the user owns none.
	ListByOwner(ctx context.Context, userID int64) ([]model.Recipe, error)

	// GetByOwner retrieves one recipe of a user. Returns nil, nil if the
	// recipe does not exist or belongs to someone else.
	GetByOwner(ctx context.Context, userID, id int64) (*model.Recipe, error)

	// Update overwrites the mutable fields of an owned recipe and refreshes UpdatedAt.
	// Returns model.ErrRecipeNotFound if no owned recipe matched.
	Update(ctx context.Context, recipe *model.Recipe) error

	// Delete removes an owned recipe.
	// Returns model.ErrRecipeNotFound if no owned recipe matched.
	Delete(ctx context.Context, userID, id int64) error
}
