//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"recipe-api/internal/model"

	"github.com/shopspring/decimal"
)

// Writes data/fixtures/recipes.jsonl.gz for the seed command.
// The last line has a negative time and is rejected on import, which
// shows where an import stops.
func main() {
	dataDir := "data/fixtures"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	recipes := []model.RecipeRequest{
		sample("Pancakes", 20, "4.50", "Fluffy breakfast pancakes", "https://example.com/pancakes"),
		sample("Tomato soup", 35, "3.25", "", ""),
		sample("Green salad", 10, "2", "Leaves and dressing", ""),
		sample("Lasagne", 90, "12.99", "Layered pasta bake", "https://example.com/lasagne"),
		sample("Broken entry", -5, "1.00", "", ""),
	}

	filePath := filepath.Join(dataDir, "recipes.jsonl.gz")
	if err := createFixtureFile(filePath, recipes); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d recipes (the last one is invalid)\n", filePath, len(recipes))
}

func sample(title string, minutes int, price, description, link string) model.RecipeRequest {
	p := decimal.RequireFromString(price)
	return model.RecipeRequest{
		Title:       &title,
		TimeMinutes: &minutes,
		Price:       &p,
		Description: &description,
		Link:        &link,
	}
}

func createFixtureFile(filePath string, recipes []model.RecipeRequest) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, recipe := range recipes {
		if err := encoder.Encode(recipe); err != nil {
			return fmt.Errorf("failed to write recipe: %w", err)
		}
	}

	return nil
}
