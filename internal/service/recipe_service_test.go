package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recipe-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecipeRepository is a mock implementation of RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByOwner(ctx context.Context, userID, id int64) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func ptr[T any](v T) *T {
	return &v
}

func validRequest() *model.RecipeRequest {
	return &model.RecipeRequest{
		Title:       ptr("Sample recipe"),
		TimeMinutes: ptr(10),
		Price:       ptr(decimal.RequireFromString("5.00")),
		Description: ptr("Sample description"),
		Link:        ptr("http://sample.com"),
	}
}

func storedRecipe() *model.Recipe {
	return &model.Recipe{
		ID:          1,
		UserID:      7,
		Title:       "Sample recipe",
		TimeMinutes: 10,
		Price:       decimal.RequireFromString("5.00"),
		Description: "Sample description",
		Link:        "http://sample.com",
	}
}

func TestRecipeService_List(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	recipes := []model.Recipe{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}}

	tests := []struct {
		name        string
		mockReturn  []model.Recipe
		mockError   error
		expectError bool
	}{
		{name: "Success", mockReturn: recipes},
		{name: "Empty", mockReturn: []model.Recipe{}},
		{name: "Repository error", mockError: errors.New("database error"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRecipeRepository)
			service := NewRecipeService(mockRepo, logger)

			var ret interface{}
			if tt.mockReturn != nil {
				ret = tt.mockReturn
			}
			mockRepo.On("ListByOwner", ctx, int64(7)).Return(ret, tt.mockError)

			got, err := service.List(ctx, 7)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to list recipes")
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, got)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_Get(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(1)).Return(storedRecipe(), nil)

		got, err := NewRecipeService(mockRepo, logger).Get(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(5)).Return(nil, nil)

		_, err := NewRecipeService(mockRepo, logger).Get(ctx, 7, 5)
		assert.ErrorIs(t, err, model.ErrRecipeNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-positive ID skips repository", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)

		_, err := NewRecipeService(mockRepo, logger).Get(ctx, 7, 0)
		assert.ErrorIs(t, err, model.ErrRecipeNotFound)
		mockRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(1)).Return(nil, errors.New("database error"))

		_, err := NewRecipeService(mockRepo, logger).Get(ctx, 7, 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrRecipeNotFound)
	})
}

func TestRecipeService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		mutate      func(req *model.RecipeRequest)
		mockError   error
		expectedErr error
		expectError bool
		callsRepo   bool
	}{
		{name: "Success", callsRepo: true},
		{
			name:      "Success without optional fields",
			mutate:    func(req *model.RecipeRequest) { req.Description = nil; req.Link = nil },
			callsRepo: true,
		},
		{
			name:        "Missing title",
			mutate:      func(req *model.RecipeRequest) { req.Title = nil },
			expectedErr: model.ErrTitleRequired,
		},
		{
			name:        "Blank title",
			mutate:      func(req *model.RecipeRequest) { req.Title = ptr("") },
			expectedErr: model.ErrTitleRequired,
		},
		{
			name:        "Missing time",
			mutate:      func(req *model.RecipeRequest) { req.TimeMinutes = nil },
			expectedErr: model.ErrTimeMinutesRequired,
		},
		{
			name:        "Missing price",
			mutate:      func(req *model.RecipeRequest) { req.Price = nil },
			expectedErr: model.ErrPriceRequired,
		},
		{
			name:        "Title too long",
			mutate:      func(req *model.RecipeRequest) { req.Title = ptr(strings.Repeat("a", 256)) },
			expectedErr: model.ErrTitleTooLong,
		},
		{
			name:        "Link too long",
			mutate:      func(req *model.RecipeRequest) { req.Link = ptr(strings.Repeat("a", 256)) },
			expectedErr: model.ErrLinkTooLong,
		},
		{
			name:        "Negative time",
			mutate:      func(req *model.RecipeRequest) { req.TimeMinutes = ptr(-1) },
			expectedErr: model.ErrInvalidTimeMinutes,
		},
		{
			name:        "Time beyond integer column",
			mutate:      func(req *model.RecipeRequest) { req.TimeMinutes = ptr(model.MaxTimeMinutes + 1) },
			expectedErr: model.ErrInvalidTimeMinutes,
		},
		{
			name:      "Time at integer column limit",
			mutate:    func(req *model.RecipeRequest) { req.TimeMinutes = ptr(model.MaxTimeMinutes) },
			callsRepo: true,
		},
		{
			name:        "Negative price",
			mutate:      func(req *model.RecipeRequest) { req.Price = ptr(decimal.RequireFromString("-0.01")) },
			expectedErr: model.ErrInvalidPrice,
		},
		{
			name:        "Price too large",
			mutate:      func(req *model.RecipeRequest) { req.Price = ptr(decimal.RequireFromString("1000")) },
			expectedErr: model.ErrInvalidPrice,
		},
		{
			name:        "Price with three decimals",
			mutate:      func(req *model.RecipeRequest) { req.Price = ptr(decimal.RequireFromString("1.005")) },
			expectedErr: model.ErrInvalidPrice,
		},
		{
			name:        "Repository error",
			mockError:   errors.New("database error"),
			expectError: true,
			callsRepo:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRecipeRepository)
			service := NewRecipeService(mockRepo, logger)

			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			if tt.callsRepo {
				mockRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Recipe) bool {
					return r.UserID == 7 && r.Title == *req.Title
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Recipe).ID = 11
				}).Return(tt.mockError)
			}

			got, err := service.Create(ctx, 7, req)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			case tt.expectError:
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to create recipe")
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(11), got.ID)
				assert.Equal(t, int64(7), got.UserID)
			}

			if !tt.callsRepo {
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Full update resets omitted optional fields", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(1)).Return(storedRecipe(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil)

		req := &model.RecipeRequest{
			Title:       ptr("New title"),
			TimeMinutes: ptr(25),
			Price:       ptr(decimal.RequireFromString("9.99")),
		}

		got, err := NewRecipeService(mockRepo, logger).Update(ctx, 7, 1, req)
		require.NoError(t, err)
		assert.Equal(t, "New title", got.Title)
		assert.Equal(t, 25, got.TimeMinutes)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, "", got.Link)
		assert.Equal(t, int64(7), got.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing required field", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)

		_, err := NewRecipeService(mockRepo, logger).Update(ctx, 7, 1, &model.RecipeRequest{Title: ptr("x")})
		assert.ErrorIs(t, err, model.ErrTimeMinutesRequired)
		mockRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Other user's recipe", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(8), int64(1)).Return(nil, nil)

		_, err := NewRecipeService(mockRepo, logger).Update(ctx, 8, 1, validRequest())
		assert.ErrorIs(t, err, model.ErrRecipeNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Recipe deleted concurrently", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(1)).Return(storedRecipe(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(model.ErrRecipeNotFound)

		_, err := NewRecipeService(mockRepo, logger).Update(ctx, 7, 1, validRequest())
		assert.ErrorIs(t, err, model.ErrRecipeNotFound)
	})
}

func TestRecipeService_Patch(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Changes only supplied fields", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(1)).Return(storedRecipe(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil)

		got, err := NewRecipeService(mockRepo, logger).Patch(ctx, 7, 1, &model.RecipeRequest{Title: ptr("Patched")})
		require.NoError(t, err)
		assert.Equal(t, "Patched", got.Title)
		assert.Equal(t, 10, got.TimeMinutes)
		assert.Equal(t, "Sample description", got.Description)
		assert.Equal(t, "http://sample.com", got.Link)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid patched value", func(t *testing.T) {
		mockRepo := new(MockRecipeRepository)
		mockRepo.On("GetByOwner", ctx, int64(7), int64(1)).Return(storedRecipe(), nil)

		_, err := NewRecipeService(mockRepo, logger).Patch(ctx, 7, 1, &model.RecipeRequest{Title: ptr("")})
		assert.ErrorIs(t, err, model.ErrTitleRequired)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		id          int64
		mockError   error
		expectedErr error
		expectError bool
		callsRepo   bool
	}{
		{name: "Success", id: 1, callsRepo: true},
		{name: "Not found", id: 2, mockError: model.ErrRecipeNotFound, expectedErr: model.ErrRecipeNotFound, callsRepo: true},
		{name: "Invalid ID", id: -1, expectedErr: model.ErrRecipeNotFound},
		{name: "Repository error", id: 1, mockError: errors.New("database error"), expectError: true, callsRepo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRecipeRepository)
			if tt.callsRepo {
				mockRepo.On("Delete", ctx, int64(7), tt.id).Return(tt.mockError)
			}

			err := NewRecipeService(mockRepo, logger).Delete(ctx, 7, tt.id)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.expectError:
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to delete recipe")
			default:
				require.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
