package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"recipe-api/internal/handler"
	"recipe-api/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Route paths.
const (
	HealthPath     = "/health"
	MetricsPath    = "/metrics"
	RecipeListPath = "/recipes/"
	UserCreatePath = "/users/"
	UserTokenPath  = "/users/token/"
	UserMePath     = "/users/me/"
)

// RecipeDetailPath returns the path of a single recipe.
func RecipeDetailPath(id int64) string {
	return RecipeListPath + strconv.FormatInt(id, 10) + "/"
}

// RateLimit configures per-client request throttling. A nil Client disables it.
type RateLimit struct {
	Client   redis.Cmdable
	Requests int
	Window   time.Duration
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	recipeHandler *handler.RecipeHandler,
	userHandler *handler.UserHandler,
	authn middleware.Authenticator,
	limit RateLimit,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	throttle := func(resource string) func(http.Handler) http.Handler {
		if limit.Client == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RateLimit(limit.Client, resource, limit.Requests, limit.Window, middleware.FailOpen, logger)
	}
	public := func(name string, h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Metrics(name), throttle(name))
	}
	protected := func(name string, h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Metrics(name), middleware.RequireAuth(authn, logger), throttle(name))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET "+HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET "+MetricsPath, promhttp.Handler())

	// Users
	handleBoth(mux, http.MethodPost, UserCreatePath, public("user-create", userHandler.Create))
	handleBoth(mux, http.MethodPost, UserTokenPath, public("user-token", userHandler.Token))
	handleBoth(mux, http.MethodGet, UserMePath, protected("user-me", userHandler.Me))

	// Recipes
	handleBoth(mux, http.MethodGet, RecipeListPath, protected("recipe-list", recipeHandler.List))
	handleBoth(mux, http.MethodPost, RecipeListPath, protected("recipe-create", recipeHandler.Create))

	detail := RecipeListPath + "{id}/"
	handleBoth(mux, http.MethodGet, detail, protected("recipe-detail", recipeHandler.Get))
	handleBoth(mux, http.MethodPut, detail, protected("recipe-update", recipeHandler.Update))
	handleBoth(mux, http.MethodPatch, detail, protected("recipe-patch", recipeHandler.Patch))
	handleBoth(mux, http.MethodDelete, detail, protected("recipe-delete", recipeHandler.Delete))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	return middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.CORS,
	)
}

// handleBoth registers path both with and without its trailing slash.
// The slash form matches exactly, not as a subtree.
func handleBoth(mux *http.ServeMux, method, path string, h http.Handler) {
	mux.Handle(method+" "+path+"{$}", h)
	mux.Handle(method+" "+strings.TrimSuffix(path, "/"), h)
}
