package infra_yelp

import (
	"context"

	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
)

// Synthetic serves a fixed candidate set so the voting flow works without
// provider credentials or network. Selected by USE_MOCK_YELP.
type Synthetic struct{}

func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

func (s *Synthetic) Search(_ context.Context, q usecase_session.SearchQuery) ([]map[string]any, error) {
	return []map[string]any{
		{
			"id":     "mock-yelp-1",
			"name":   "Mock Sushi Garden",
			"price":  "$$",
			"rating": 4.5,
			"location": map[string]any{
				"display_address": []any{"1 Mock St", q.Location},
			},
			"review_count": 120.0,
		},
		{
			"id":     "mock-yelp-2",
			"name":   "Mock Taqueria",
			"price":  "$",
			"rating": 4.2,
			"location": map[string]any{
				"display_address": []any{"2 Mock St", q.Location},
			},
			"review_count": 89.0,
		},
		{
			"id":     "mock-yelp-3",
			"name":   "Mock Trattoria",
			"price":  "$$$",
			"rating": 4.8,
			"location": map[string]any{
				"display_address": []any{"3 Mock St", q.Location},
			},
			"review_count": 431.0,
		},
	}, nil
}
