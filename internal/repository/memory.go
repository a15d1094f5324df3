package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"recipe-api/internal/model"

	"github.com/rs/zerolog"
)

// memoryUserRepository implements UserRepository in process memory.
type memoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]model.User
	byEmail map[string]int64
	logger  zerolog.Logger
}

// NewMemoryUserRepository creates a user repository that keeps data in memory.
func NewMemoryUserRepository(logger zerolog.Logger) UserRepository {
	return &memoryUserRepository{
		users:   make(map[int64]model.User),
		byEmail: make(map[string]int64),
		logger:  logger.With().Str("repository", "memory-user").Logger(),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return model.ErrEmailTaken
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()

	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID

	r.logger.Debug().Int64("user_id", user.ID).Msg("user created successfully")

	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.users[id]
	return &u, nil
}

// memoryRecipeRepository implements RecipeRepository in process memory.
// IDs are allocated under the write lock so they never interleave.
type memoryRecipeRepository struct {
	mu      sync.RWMutex
	nextID  int64
	recipes map[int64]model.Recipe
	logger  zerolog.Logger
}

// NewMemoryRecipeRepository creates a recipe repository that keeps data in memory.
func NewMemoryRecipeRepository(logger zerolog.Logger) RecipeRepository {
	return &memoryRecipeRepository{
		recipes: make(map[int64]model.Recipe),
		logger:  logger.With().Str("repository", "memory-recipe").Logger(),
	}
}

func (r *memoryRecipeRepository) Create(_ context.Context, recipe *model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	recipe.ID = r.nextID
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	r.recipes[recipe.ID] = *recipe

	r.logger.Debug().
		Int64("recipe_id", recipe.ID).
		Int64("user_id", recipe.UserID).
		Msg("recipe created successfully")

	return nil
}

func (r *memoryRecipeRepository) ListByOwner(_ context.Context, userID int64) ([]model.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := []model.Recipe{}
	for _, recipe := range r.recipes {
		if recipe.UserID == userID {
			recipes = append(recipes, recipe)
		}
	}

	slices.SortFunc(recipes, func(a, b model.Recipe) int {
		return cmp.Compare(b.ID, a.ID)
	})

	return recipes, nil
}

func (r *memoryRecipeRepository) GetByOwner(_ context.Context, userID, id int64) (*model.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.recipes[id]
	if !ok || recipe.UserID != userID {
		return nil, nil
	}
	return &recipe, nil
}

func (r *memoryRecipeRepository) Update(_ context.Context, recipe *model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.recipes[recipe.ID]
	if !ok || stored.UserID != recipe.UserID {
		return model.ErrRecipeNotFound
	}

	recipe.CreatedAt = stored.CreatedAt
	recipe.UpdatedAt = time.Now().UTC()
	r.recipes[recipe.ID] = *recipe

	return nil
}

func (r *memoryRecipeRepository) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.recipes[id]
	if !ok || stored.UserID != userID {
		return model.ErrRecipeNotFound
	}

	delete(r.recipes, id)

	return nil
}
