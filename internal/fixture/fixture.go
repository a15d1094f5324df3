// Package fixture reads recipe fixtures and imports them through the recipe service.
//
// A fixture is a gzipped JSON-lines file: one recipe object per line, using the
// same fields as the recipe API. Blank lines are skipped.
package fixture

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"recipe-api/internal/model"
)

// Record is one recipe read from a fixture, with its line number.
type Record struct {
	Line   int
	Recipe model.RecipeRequest
}

// Loader defines the interface for loading fixture files.
type Loader interface {
	// Load reads a gzipped fixture and returns its records in file order.
	Load(ctx context.Context, path string) ([]Record, error)
}

// maxLineBytes bounds a single fixture line.
const maxLineBytes = 1024 * 1024

// Decode reads gzipped JSON lines from r. Context cancellation is checked
// between lines.
func Decode(ctx context.Context, r io.Reader) ([]Record, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	records := []Record{}
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec model.RecipeRequest
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: invalid recipe: %w", line, err)
		}
		records = append(records, Record{Line: line, Recipe: rec})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: read failed: %w", line+1, err)
	}

	return records, nil
}
