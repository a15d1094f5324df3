package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Recipe limits mirrored by the recipes table.
const (
	MaxTitleLength = 255
	MaxLinkLength  = 255
	MaxTimeMinutes = math.MaxInt32
	PriceScale     = 2
)

// MaxPrice is the largest price a NUMERIC(5,2) column holds.
var MaxPrice = decimal.RequireFromString("999.99")

// Recipe represents a recipe owned by a user.
type Recipe struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Title       string          `db:"title"`
	TimeMinutes int             `db:"time_minutes"`
	Price       decimal.Decimal `db:"price"`
	Description string          `db:"description"`
	Link        string          `db:"link"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// RecipeRequest represents the request payload for creating or updating a recipe.
// Nil fields were omitted by the client.
type RecipeRequest struct {
	Title       *string          `json:"title"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Link        *string          `json:"link"`
}

// RecipeResponse is the public representation of a recipe.
// The owner and timestamps are never exposed.
type RecipeResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// NewRecipeResponse maps a stored recipe to its public representation.
func NewRecipeResponse(r Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(PriceScale),
		Description: r.Description,
		Link:        r.Link,
	}
}

// NewRecipeResponses maps recipes in order. The result is never nil so it
// encodes as an empty JSON array.
func NewRecipeResponses(recipes []Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeResponse(r))
	}
	return out
}
