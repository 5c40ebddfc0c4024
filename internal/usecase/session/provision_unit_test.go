package usecase_session

import (
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type ProvisionUnitSuite struct {
	suite.Suite
}

func TestProvisionUnitSuite(t *testing.T) {
	t.Parallel()
	suite.RunSuite(t, new(ProvisionUnitSuite))
}

func (s *ProvisionUnitSuite) TestBuildQueryKey(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		query    SearchQuery
		expected string
	}{
		{
			name:     "Should lower-case and trim every field",
			query:    SearchQuery{Term: "  Sushi ", Location: " San Francisco, CA", Price: "1,2", RadiusMeters: 3000},
			expected: "sushi|san francisco, ca|1,2|3000",
		},
		{
			name:     "Should leave absent fields empty",
			query:    SearchQuery{Term: "ramen", Location: "Oakland"},
			expected: "ramen|oakland||",
		},
		{
			name:     "Should produce identical keys for equivalent queries",
			query:    SearchQuery{Term: "RAMEN", Location: "oakland "},
			expected: "ramen|oakland||",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			assert.Equal(t, tc.expected, BuildQueryKey(tc.query))
		})
	}
}

func (s *ProvisionUnitSuite) TestNormalizeBusiness(t provider.T) {
	t.Parallel()

	t.Run("Should map a fully populated business", func(t provider.T) {
		raw := map[string]any{
			"id":           "abc-123",
			"name":         "A Place",
			"image_url":    "https://img.example/a.jpg",
			"price":        "$$",
			"rating":       4.5,
			"review_count": 120.0,
			"location": map[string]any{
				"display_address": []any{"1 Main St", "San Francisco, CA"},
			},
			"coordinates": map[string]any{
				"latitude":  37.77,
				"longitude": -122.42,
			},
		}

		r := normalizeBusiness(raw, 0)

		assert.Equal(t, "abc-123", r.ExternalID)
		assert.Equal(t, "A Place", r.Name)
		assert.Equal(t, "https://img.example/a.jpg", *r.ImageURL)
		assert.Equal(t, "1 Main St, San Francisco, CA", *r.Address)
		assert.Equal(t, 37.77, *r.Lat)
		assert.Equal(t, -122.42, *r.Lng)
		assert.Equal(t, "$$", *r.Price)
		assert.Equal(t, 4.5, *r.Rating)
		assert.Equal(t, 120, *r.ReviewCount)
		assert.NotEmpty(t, r.SourcePayload)
	})

	t.Run("Should fall back through external id variants", func(t provider.T) {
		assert.Equal(t, "via-alias", normalizeBusiness(map[string]any{"alias": "via-alias"}, 3).ExternalID)
		assert.Equal(t, "via-bid", normalizeBusiness(map[string]any{"business_id": "via-bid"}, 3).ExternalID)
		assert.Equal(t, "generated-3", normalizeBusiness(map[string]any{}, 3).ExternalID)
	})

	t.Run("Should default the name", func(t provider.T) {
		r := normalizeBusiness(map[string]any{"id": "x"}, 0)
		assert.Equal(t, "Unknown restaurant", r.Name)
	})

	t.Run("Should use single address field when display_address missing", func(t provider.T) {
		r := normalizeBusiness(map[string]any{
			"id":      "x",
			"address": "5 Side St",
		}, 0)
		assert.Equal(t, "5 Side St", *r.Address)
	})

	t.Run("Should use address1 inside location", func(t provider.T) {
		r := normalizeBusiness(map[string]any{
			"id":       "x",
			"location": map[string]any{"address1": "9 Corner Ave"},
		}, 0)
		assert.Equal(t, "9 Corner Ave", *r.Address)
	})

	t.Run("Should read top-level coordinates", func(t provider.T) {
		r := normalizeBusiness(map[string]any{
			"id":        "x",
			"latitude":  1.5,
			"longitude": 2.5,
		}, 0)
		assert.Equal(t, 1.5, *r.Lat)
		assert.Equal(t, 2.5, *r.Lng)
	})
}
