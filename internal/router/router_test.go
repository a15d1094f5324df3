package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-api/internal/auth"
	"recipe-api/internal/handler"
	"recipe-api/internal/model"
	"recipe-api/internal/repository"
	"recipe-api/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

type testApp struct {
	handler http.Handler
	users   repository.UserRepository
	recipes repository.RecipeRepository
	tokens  *auth.TokenManager
}

func newTestApp(t *testing.T, limit RateLimit) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	users := repository.NewMemoryUserRepository(logger)
	recipes := repository.NewMemoryRecipeRepository(logger)
	tokens := auth.NewTokenManager(testSecret, "recipe-api", time.Hour)

	h := New(
		handler.NewRecipeHandler(service.NewRecipeService(recipes, logger), logger),
		handler.NewUserHandler(service.NewUserService(users, tokens, logger), logger),
		auth.NewAuthenticator(tokens, users, logger),
		limit,
		logger,
	)

	return &testApp{handler: h, users: users, recipes: recipes, tokens: tokens}
}

// createUser stores an active user and returns it with a bearer token.
func (a *testApp) createUser(t *testing.T, email string) (*model.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("testpass123")
	require.NoError(t, err)
	user := &model.User{Email: email, Name: "Test Name", PasswordHash: hash, IsActive: true}
	require.NoError(t, a.users.Create(context.Background(), user))

	token, err := a.tokens.Issue(user)
	require.NoError(t, err)

	return user, token
}

// createRecipe stores a recipe with sample defaults, applying overrides.
func (a *testApp) createRecipe(t *testing.T, userID int64, override func(*model.Recipe)) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		UserID:      userID,
		Title:       "Sample recipe",
		TimeMinutes: 10,
		Price:       decimal.RequireFromString("5.00"),
		Description: "Sample description",
		Link:        "http://sample.com",
	}
	if override != nil {
		override(recipe)
	}
	require.NoError(t, a.recipes.Create(context.Background(), recipe))

	return recipe
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []model.RecipeResponse {
	t.Helper()

	var out []model.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRecipeList_RequiresAuth(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	user, _ := app.createUser(t, "user@example.com")
	app.createRecipe(t, user.ID, nil)

	tests := []struct {
		name  string
		token string
	}{
		{name: "No credentials"},
		{name: "Invalid token", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodGet, RecipeListPath, tt.token, nil)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, w.Body.String())
			assert.NotContains(t, w.Body.String(), "Sample recipe")
		})
	}
}

func TestRecipeList_ReturnsOwnRecipesNewestFirst(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	user, token := app.createUser(t, "user@example.com")
	other, _ := app.createUser(t, "other@example.com")

	first := app.createRecipe(t, user.ID, nil)
	app.createRecipe(t, other.ID, func(r *model.Recipe) { r.Title = "Other recipe" })
	second := app.createRecipe(t, user.ID, nil)

	w := app.do(t, http.MethodGet, RecipeListPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	got := decodeList(t, w)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	expected := model.NewRecipeResponses([]model.Recipe{*second, *first})
	assert.Equal(t, expected, got)
}

func TestRecipeList_SerializedFields(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	user, token := app.createUser(t, "user@example.com")
	recipe := app.createRecipe(t, user.ID, nil)

	w := app.do(t, http.MethodGet, RecipeListPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 1)

	assert.Equal(t, map[string]interface{}{
		"id":           float64(recipe.ID),
		"title":        "Sample recipe",
		"time_minutes": float64(10),
		"price":        "5.00",
		"description":  "Sample description",
		"link":         "http://sample.com",
	}, raw[0])
}

func TestRecipeList_EmptyAndIdempotent(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	user, token := app.createUser(t, "user@example.com")

	w := app.do(t, http.MethodGet, RecipeListPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	app.createRecipe(t, user.ID, nil)
	app.createRecipe(t, user.ID, func(r *model.Recipe) { r.Title = "Second" })

	firstCall := app.do(t, http.MethodGet, RecipeListPath, token, nil)
	secondCall := app.do(t, http.MethodGet, "/recipes", token, nil)
	require.Equal(t, http.StatusOK, secondCall.Code)
	assert.JSONEq(t, firstCall.Body.String(), secondCall.Body.String())
}

func TestRecipeList_ExcludesOtherUsers(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	other, _ := app.createUser(t, "other@example.com")
	_, token := app.createUser(t, "user@example.com")
	app.createRecipe(t, other.ID, nil)

	w := app.do(t, http.MethodGet, RecipeListPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestRecipeDetail_Lifecycle(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	_, token := app.createUser(t, "user@example.com")
	_, otherToken := app.createUser(t, "other@example.com")

	create := app.do(t, http.MethodPost, RecipeListPath, token, map[string]interface{}{
		"title":        "Chocolate cheesecake",
		"time_minutes": 30,
		"price":        "5.99",
	})
	require.Equal(t, http.StatusCreated, create.Code)

	var created model.RecipeResponse
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))
	assert.Equal(t, "5.99", created.Price)
	assert.Equal(t, "", created.Link)
	path := RecipeDetailPath(created.ID)

	get := app.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, get.Code)
	assert.JSONEq(t, create.Body.String(), get.Body.String())

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, path, otherToken, nil).Code)

	patch := app.do(t, http.MethodPatch, path, token, map[string]interface{}{"title": "New title"})
	require.Equal(t, http.StatusOK, patch.Code)
	var patched model.RecipeResponse
	require.NoError(t, json.Unmarshal(patch.Body.Bytes(), &patched))
	assert.Equal(t, "New title", patched.Title)
	assert.Equal(t, "5.99", patched.Price)

	put := app.do(t, http.MethodPut, path, token, map[string]interface{}{
		"title":        "Spaghetti carbonara",
		"time_minutes": 25,
		"price":        5,
		"link":         "https://example.com/recipe.pdf",
	})
	require.Equal(t, http.StatusOK, put.Code)
	var replaced model.RecipeResponse
	require.NoError(t, json.Unmarshal(put.Body.Bytes(), &replaced))
	assert.Equal(t, "5.00", replaced.Price)
	assert.Equal(t, 25, replaced.TimeMinutes)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, path, otherToken, nil).Code)

	del := app.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, del.Code)
	assert.Empty(t, del.Body.String())

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, path, token, nil).Code)
}

func TestRecipeDetail_Errors(t *testing.T) {
	app := newTestApp(t, RateLimit{})
	user, token := app.createUser(t, "user@example.com")
	recipe := app.createRecipe(t, user.ID, nil)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{name: "Non-numeric ID", method: http.MethodGet, path: "/recipes/abc/", token: token, expectedStatus: http.StatusNotFound, expectedCode: model.ErrCodeRecipeNotFound},
		{name: "Unknown ID", method: http.MethodGet, path: RecipeDetailPath(9999), token: token, expectedStatus: http.StatusNotFound, expectedCode: model.ErrCodeRecipeNotFound},
		{name: "Missing title", method: http.MethodPost, path: RecipeListPath, token: token, body: map[string]interface{}{"time_minutes": 5, "price": "1.00"}, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeMissingField},
		{name: "Bad price", method: http.MethodPatch, path: RecipeDetailPath(recipe.ID), token: token, body: map[string]interface{}{"price": "1000.00"}, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidRecipe},
		{name: "Empty body", method: http.MethodPost, path: RecipeListPath, token: token, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidJSON},
		{name: "Unauthenticated detail", method: http.MethodGet, path: RecipeDetailPath(recipe.ID), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode == "" {
				assert.Empty(t, w.Body.String())
				return
			}

			var body model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error)
			assert.NotEmpty(t, body.CorrelationID)
			assert.Equal(t, w.Header().Get("X-Request-Id"), body.CorrelationID)
		})
	}
}

func TestUserEndpoints(t *testing.T) {
	app := newTestApp(t, RateLimit{})

	create := app.do(t, http.MethodPost, UserCreatePath, "", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
		"name":     "Test Name",
	})
	require.Equal(t, http.StatusCreated, create.Code)
	assert.JSONEq(t, `{"email":"test@example.com","name":"Test Name"}`, create.Body.String())

	dup := app.do(t, http.MethodPost, UserCreatePath, "", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	short := app.do(t, http.MethodPost, "/users", "", map[string]string{
		"email":    "short@example.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, short.Code)

	badCreds := app.do(t, http.MethodPost, UserTokenPath, "", map[string]string{
		"email":    "test@example.com",
		"password": "badpass",
	})
	assert.Equal(t, http.StatusBadRequest, badCreds.Code)

	tokenResp := app.do(t, http.MethodPost, UserTokenPath, "", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, tokenResp.Code)
	var token model.TokenResponse
	require.NoError(t, json.Unmarshal(tokenResp.Body.Bytes(), &token))
	require.NotEmpty(t, token.Token)

	me := app.do(t, http.MethodGet, UserMePath, token.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.JSONEq(t, `{"email":"test@example.com","name":"Test Name"}`, me.Body.String())

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, UserMePath, "", nil).Code)

	// The issued token reaches the recipe list.
	list := app.do(t, http.MethodGet, RecipeListPath, token.Token, nil)
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, RateLimit{})

	health := app.do(t, http.MethodGet, HealthPath, "", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, health.Body.String())

	app.do(t, http.MethodGet, RecipeListPath, "", nil)

	metrics := app.do(t, http.MethodGet, MetricsPath, "", nil)
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `route="recipe-list",status="401"`)
}

func TestRateLimitedRoutes(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	app := newTestApp(t, RateLimit{Client: rdb, Requests: 2, Window: time.Minute})
	_, token := app.createUser(t, "user@example.com")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, app.do(t, http.MethodGet, RecipeListPath, token, nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Unauthenticated requests are rejected before they are counted.
	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, RecipeListPath, "", nil).Code)
}

func TestRecipeDetailPath(t *testing.T) {
	assert.Equal(t, "/recipes/12/", RecipeDetailPath(12))
}
