package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fittrack/internal/domain"
	"fittrack/internal/metrics"
)

var (
	// ErrEmptyQuery indicates a blank food search.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrFoodSearchDisabled indicates that no food database is configured.
	ErrFoodSearchDisabled = errors.New("food search is not configured")

	// ErrInvalidUnit indicates a unit other than kg or lb.
	ErrInvalidUnit = errors.New(`unit must be "kg" or "lb"`)
)

const autocompleteLimit = 10

// FoodService looks up nutrition facts to prefill meal entries.
type FoodService struct {
	searcher domain.FoodSearcher
}

// NewFoodService creates a FoodService. A nil searcher disables search.
func NewFoodService(searcher domain.FoodSearcher) *FoodService {
	return &FoodService{searcher: searcher}
}

// Search returns the best match for query.
func (s *FoodService) Search(ctx context.Context, query string) (*domain.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	items, err := s.search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// Autocomplete returns up to ten food names matching query. A blank query
// yields no suggestions.
func (s *FoodService) Autocomplete(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	items, err := s.search(ctx, query, autocompleteLimit)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names, nil
}

func (s *FoodService) search(ctx context.Context, query string, max int) ([]domain.FoodItem, error) {
	if s.searcher == nil {
		return nil, ErrFoodSearchDisabled
	}
	items, err := s.searcher.SearchFoods(ctx, query, max)
	if err != nil {
		metrics.FoodSearchErrors.Inc()
		return nil, fmt.Errorf("food search: %w", err)
	}
	return items, nil
}
