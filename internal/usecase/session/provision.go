package usecase_session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/justinhuang159/Grubble/internal/model"
)

const defaultSearchTerm = "restaurants"

func (u *Usecase) provisionCandidates(ctx context.Context, session model.Session) ([]model.Restaurant, error) {
	if session.LocationText == nil || strings.TrimSpace(*session.LocationText) == "" {
		return nil, fmt.Errorf("%w: location_text must be set before starting", ErrValidation)
	}

	q := SearchQuery{
		Term:     defaultSearchTerm,
		Location: strings.TrimSpace(*session.LocationText),
	}
	if session.Cuisine != nil && strings.TrimSpace(*session.Cuisine) != "" {
		q.Term = strings.TrimSpace(*session.Cuisine)
	}
	if session.Price != nil {
		q.Price = *session.Price
	}
	if session.RadiusMeters != nil {
		q.RadiusMeters = *session.RadiusMeters
	}

	results, err := u.searchWithCache(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no restaurants found for the given criteria", ErrResourceNotFound)
	}

	candidates := make([]model.Restaurant, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for i, raw := range results {
		candidate := normalizeBusiness(raw, i)
		if _, ok := seen[candidate.ExternalID]; ok {
			continue
		}
		seen[candidate.ExternalID] = struct{}{}
		candidate.SessionID = session.ID
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (u *Usecase) searchWithCache(ctx context.Context, q SearchQuery) ([]map[string]any, error) {
	key := BuildQueryKey(q)

	cached, err := u.cache.Get(ctx, key)
	if err == nil && time.Since(cached.CreatedAt) <= u.cacheTTL {
		return cached.Results, nil
	}
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		return nil, errors.Join(ErrInternal, err)
	}

	results, err := u.source.Search(ctx, q)
	if err != nil {
		if errors.Is(err, ErrSourceNotConfigured) || errors.Is(err, ErrUpstream) {
			return nil, err
		}
		return nil, errors.Join(ErrUpstream, err)
	}

	if err := u.cache.Put(ctx, key, q, results); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return results, nil
}

// BuildQueryKey normalizes the search criteria into the cache key:
// lower-cased, trimmed, empty for absent fields.
func BuildQueryKey(q SearchQuery) string {
	radius := ""
	if q.RadiusMeters > 0 {
		radius = strconv.Itoa(q.RadiusMeters)
	}
	parts := []string{
		strings.ToLower(strings.TrimSpace(q.Term)),
		strings.ToLower(strings.TrimSpace(q.Location)),
		strings.ToLower(strings.TrimSpace(q.Price)),
		radius,
	}
	return strings.Join(parts, "|")
}

// Providers behind the RapidAPI gateway disagree on field names, so the
// mapping falls back through the variants seen in the wild.
func normalizeBusiness(raw map[string]any, position int) model.Restaurant {
	r := model.Restaurant{
		ExternalID: externalID(raw, position),
		Name:       "Unknown restaurant",
	}
	if name, ok := stringField(raw, "name"); ok {
		r.Name = name
	}
	if img, ok := stringField(raw, "image_url"); ok {
		r.ImageURL = &img
	}
	if addr, ok := displayAddress(raw); ok {
		r.Address = &addr
	}
	if lat, lng, ok := coordinates(raw); ok {
		r.Lat, r.Lng = &lat, &lng
	}
	if price, ok := stringField(raw, "price"); ok {
		r.Price = &price
	}
	if rating, ok := floatField(raw, "rating"); ok {
		r.Rating = &rating
	}
	if rc, ok := floatField(raw, "review_count"); ok {
		n := int(rc)
		r.ReviewCount = &n
	}
	if payload, err := json.Marshal(raw); err == nil {
		r.SourcePayload = payload
	}
	return r
}

func externalID(raw map[string]any, position int) string {
	for _, field := range []string{"id", "alias", "business_id"} {
		if v, ok := stringField(raw, field); ok {
			return v
		}
	}
	return fmt.Sprintf("generated-%d", position)
}

func displayAddress(raw map[string]any) (string, bool) {
	if loc, ok := raw["location"].(map[string]any); ok {
		if lines, ok := loc["display_address"].([]any); ok {
			parts := make([]string, 0, len(lines))
			for _, line := range lines {
				if s, ok := line.(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", "), true
			}
		}
		if s, ok := stringField(loc, "address1"); ok {
			return s, true
		}
	}
	return stringField(raw, "address")
}

func coordinates(raw map[string]any) (float64, float64, bool) {
	if c, ok := raw["coordinates"].(map[string]any); ok {
		lat, okLat := floatField(c, "latitude")
		lng, okLng := floatField(c, "longitude")
		if okLat && okLng {
			return lat, lng, true
		}
	}
	lat, okLat := floatField(raw, "latitude")
	lng, okLng := floatField(raw, "longitude")
	if okLat && okLng {
		return lat, lng, true
	}
	return 0, 0, false
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
