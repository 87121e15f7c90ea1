package store

import (
	"context"
	"strings"

	"github.com/rcliao/ghost/internal/model"
)

// SearchResult wraps a matching item with its current 1-based index.
type SearchResult[T any] struct {
	Index int
	Item  T
}

// Search finds items of kind whose text contains query, case-insensitively.
// Results keep list order.
func Search[T any](ctx context.Context, r *Records, kind model.Kind, query string, text func(T) string) ([]SearchResult[T], error) {
	items, err := Load[T](ctx, r, kind)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var results []SearchResult[T]
	for i, it := range items {
		if q == "" || strings.Contains(strings.ToLower(text(it)), q) {
			results = append(results, SearchResult[T]{Index: i + 1, Item: it})
		}
	}
	return results, nil
}
